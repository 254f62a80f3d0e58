package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/postal"
	"github.com/supreme-labs/storefront/internal/services"
)

func postalRouter(resolver PostalResolver, carts services.CartService) chi.Router {
	handler := NewPostalHandlers(resolver, carts)
	router := chi.NewRouter()
	router.Route("/postal", handler.Routes)
	return router
}

func TestPostalHandlersLookupWithShippingQuote(t *testing.T) {
	resolver := &stubPostalResolver{
		lookupFunc: func(_ context.Context, rawCEP string) (domain.Address, error) {
			if rawCEP != "01310-100" {
				t.Fatalf("unexpected cep %q", rawCEP)
			}
			return domain.Address{CEP: "01310-100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"}, nil
		},
	}
	carts := &stubCartService{
		getFunc: func(_ context.Context, _ string) (services.CartView, error) {
			return services.CartView{Subtotal: 19400, TotalCount: 2}, nil
		},
	}

	req := withClientKey(httptest.NewRequest(http.MethodGet, "/postal/01310-100", nil), "client-1")
	rr := performRequest(t, postalRouter(resolver, carts), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Address struct {
			Street string `json:"street"`
			City   string `json:"city"`
		} `json:"address"`
		Shipping struct {
			Subtotal int64 `json:"subtotal"`
			Fee      int64 `json:"fee"`
			Free     bool  `json:"free"`
		} `json:"shipping"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Address.Street != "Avenida Paulista" {
		t.Fatalf("unexpected address: %+v", payload.Address)
	}
	// 19400 is below the free threshold, so the flat rate must be quoted.
	if payload.Shipping.Fee != 1990 || payload.Shipping.Free {
		t.Fatalf("unexpected quote: %+v", payload.Shipping)
	}
}

func TestPostalHandlersLookupWithoutClientKeySkipsQuote(t *testing.T) {
	resolver := &stubPostalResolver{
		lookupFunc: func(_ context.Context, _ string) (domain.Address, error) {
			return domain.Address{CEP: "01310-100"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/postal/01310100", nil)
	rr := performRequest(t, postalRouter(resolver, &stubCartService{}), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := payload["shipping"]; ok {
		t.Fatal("quote must be omitted when the caller has no client key")
	}
}

func TestPostalHandlersInvalidCEP(t *testing.T) {
	resolver := &stubPostalResolver{
		lookupFunc: func(_ context.Context, _ string) (domain.Address, error) {
			return domain.Address{}, postal.ErrInvalidCEP
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/postal/1234", nil)
	rr := performRequest(t, postalRouter(resolver, nil), req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestPostalHandlersNotFound(t *testing.T) {
	resolver := &stubPostalResolver{
		lookupFunc: func(_ context.Context, _ string) (domain.Address, error) {
			return domain.Address{}, postal.ErrAddressNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/postal/99999999", nil)
	rr := performRequest(t, postalRouter(resolver, nil), req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rr.Code, rr.Body.String())
	}
}
