package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/services"
)

func checkoutRouter(service services.CheckoutService) chi.Router {
	handler := NewCheckoutHandlers(service)
	router := chi.NewRouter()
	router.Route("/checkout", handler.Routes)
	return router
}

func TestCheckoutHandlersSubmit(t *testing.T) {
	var got services.SubmitCheckoutCommand
	service := &stubCheckoutService{
		submitFunc: func(_ context.Context, cmd services.SubmitCheckoutCommand) (services.CheckoutResult, error) {
			got = cmd
			return services.CheckoutResult{
				Order: domain.Order{
					ID:        "GS-20260314-K7X2QD",
					CreatedAt: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
					Status:    domain.OrderStatusConfirmed,
					Lines:     []domain.OrderLine{{ProductID: "maxx", Quantity: 2}},
					Subtotal:  19400,
					Shipping:  1990,
					Total:     21390,
					Address:   cmd.Address,
				},
				AttributionQuery: "?utm_source=instagram",
			}, nil
		},
	}

	body := strings.NewReader(`{
		"address": {"cep": "01310-100", "street": "Avenida Paulista", "city": "São Paulo", "state": "SP"},
		"utmSource": "instagram"
	}`)
	req := withClientKey(httptest.NewRequest(http.MethodPost, "/checkout", body), "client-1")
	rr := performRequest(t, checkoutRouter(service), req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if got.ClientKey != "client-1" {
		t.Fatalf("client key = %q", got.ClientKey)
	}
	if got.Address == nil || got.Address.CEP != "01310-100" {
		t.Fatalf("address not forwarded: %+v", got.Address)
	}
	if got.Attribution.Source != "instagram" {
		t.Fatalf("attribution not forwarded: %+v", got.Attribution)
	}

	var payload struct {
		Order struct {
			ID             string `json:"id"`
			Status         string `json:"status"`
			Total          int64  `json:"total"`
			TotalFormatted string `json:"totalFormatted"`
		} `json:"order"`
		AttributionQuery string `json:"attributionQuery"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Order.ID != "GS-20260314-K7X2QD" || payload.Order.Status != "confirmed" {
		t.Fatalf("unexpected order payload: %+v", payload.Order)
	}
	if payload.Order.Total != 21390 {
		t.Fatalf("total = %d, want 21390", payload.Order.Total)
	}
	if payload.AttributionQuery != "?utm_source=instagram" {
		t.Fatalf("attributionQuery = %q", payload.AttributionQuery)
	}
}

func TestCheckoutHandlersSubmitWithoutBody(t *testing.T) {
	var got services.SubmitCheckoutCommand
	service := &stubCheckoutService{
		submitFunc: func(_ context.Context, cmd services.SubmitCheckoutCommand) (services.CheckoutResult, error) {
			got = cmd
			return services.CheckoutResult{Order: domain.Order{ID: "GS-20260314-AAAAAA"}}, nil
		},
	}

	req := withClientKey(httptest.NewRequest(http.MethodPost, "/checkout", nil), "client-1")
	rr := performRequest(t, checkoutRouter(service), req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if got.Address != nil {
		t.Fatalf("bare submissions must carry no address, got %+v", got.Address)
	}
}

func TestCheckoutHandlersEmptyCartConflict(t *testing.T) {
	service := &stubCheckoutService{
		submitFunc: func(_ context.Context, _ services.SubmitCheckoutCommand) (services.CheckoutResult, error) {
			return services.CheckoutResult{}, services.ErrCheckoutEmptyCart
		},
	}

	req := withClientKey(httptest.NewRequest(http.MethodPost, "/checkout", nil), "client-1")
	rr := performRequest(t, checkoutRouter(service), req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "empty_cart") {
		t.Fatalf("body = %s, want empty_cart envelope", rr.Body.String())
	}
}

func TestCheckoutHandlersRequireClientKey(t *testing.T) {
	router := checkoutRouter(&stubCheckoutService{})
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rr := performRequest(t, router, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
