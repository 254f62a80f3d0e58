package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/platform/money"
	"github.com/supreme-labs/storefront/internal/platform/requestctx"
	"github.com/supreme-labs/storefront/internal/postal"
	"github.com/supreme-labs/storefront/internal/services"
)

// PostalResolver narrows the postal client surface to what the handler uses.
type PostalResolver interface {
	Lookup(ctx context.Context, rawCEP string) (domain.Address, error)
}

// PostalHandlers resolves CEPs and quotes shipping for the caller's cart.
type PostalHandlers struct {
	resolver PostalResolver
	carts    services.CartService
}

// NewPostalHandlers constructs handlers over the postal resolver. The cart
// service is optional; without it responses omit the shipping quote.
func NewPostalHandlers(resolver PostalResolver, carts services.CartService) *PostalHandlers {
	return &PostalHandlers{resolver: resolver, carts: carts}
}

// Routes wires the /postal endpoints onto the provided router.
func (h *PostalHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/{cep}", h.lookup)
}

type addressPayload struct {
	CEP        string `json:"cep"`
	Street     string `json:"street"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	IBGE       string `json:"ibge,omitempty"`
	DDD        string `json:"ddd,omitempty"`
}

type shippingQuotePayload struct {
	Subtotal     int64  `json:"subtotal"`
	Fee          int64  `json:"fee"`
	FeeFormatted string `json:"feeFormatted"`
	Free         bool   `json:"free"`
}

func buildAddressPayload(a domain.Address) addressPayload {
	return addressPayload{
		CEP:        a.CEP,
		Street:     a.Street,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		IBGE:       a.IBGE,
		DDD:        a.DDD,
	}
}

func (h *PostalHandlers) lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.resolver == nil {
		httpx.WriteError(ctx, w, httpx.NewError("postal_service_unavailable", "postal lookup is unavailable", http.StatusServiceUnavailable))
		return
	}

	address, err := h.resolver.Lookup(ctx, chi.URLParam(r, "cep"))
	if err != nil {
		switch {
		case errors.Is(err, postal.ErrInvalidCEP):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_cep", "cep must have exactly 8 digits", http.StatusBadRequest))
		case errors.Is(err, postal.ErrAddressNotFound):
			httpx.WriteError(ctx, w, httpx.NewError("cep_not_found", "no address for that cep", http.StatusNotFound))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("postal_error", "failed to resolve cep", http.StatusInternalServerError))
		}
		return
	}

	payload := map[string]any{"address": buildAddressPayload(address)}

	// With the address known the shipping fee becomes quotable against the
	// caller's current cart.
	if h.carts != nil {
		if key, ok := requestctx.ClientKey(ctx); ok {
			if view, err := h.carts.Get(ctx, key); err == nil {
				fee := services.EstimateShipping(view.Subtotal, true)
				payload["shipping"] = shippingQuotePayload{
					Subtotal:     view.Subtotal,
					Fee:          fee,
					FeeFormatted: money.FormatBRL(fee),
					Free:         fee == 0,
				}
			}
		}
	}

	writeJSONResponse(w, http.StatusOK, payload)
}
