package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/platform/money"
	"github.com/supreme-labs/storefront/internal/services"
)

const maxCheckoutBodySize = 32 * 1024

// CheckoutHandlers exposes the order submission endpoint.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

// NewCheckoutHandlers constructs handlers over the checkout service.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes wires the /checkout endpoint onto the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.submit)
}

type checkoutAddressRequest struct {
	CEP        string `json:"cep"`
	Street     string `json:"street"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	IBGE       string `json:"ibge"`
	DDD        string `json:"ddd"`
}

type checkoutRequest struct {
	Address     *checkoutAddressRequest `json:"address"`
	UTMSource   string                  `json:"utmSource"`
	UTMMedium   string                  `json:"utmMedium"`
	UTMCampaign string                  `json:"utmCampaign"`
	UTMTerm     string                  `json:"utmTerm"`
	UTMContent  string                  `json:"utmContent"`
}

type orderLinePayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderPayload struct {
	ID                string             `json:"id"`
	CreatedAt         string             `json:"createdAt"`
	Status            string             `json:"status"`
	StatusLabel       string             `json:"statusLabel,omitempty"`
	Lines             []orderLinePayload `json:"items"`
	Subtotal          int64              `json:"subtotal"`
	Shipping          int64              `json:"shipping"`
	ShippingFormatted string             `json:"shippingFormatted"`
	Total             int64              `json:"total"`
	TotalFormatted    string             `json:"totalFormatted"`
	Address           *addressPayload    `json:"address,omitempty"`
}

func buildOrderPayload(order domain.Order, statusLabel string) orderPayload {
	payload := orderPayload{
		ID:                order.ID,
		CreatedAt:         order.CreatedAt.UTC().Format(time.RFC3339),
		Status:            string(order.Status),
		StatusLabel:       statusLabel,
		Lines:             make([]orderLinePayload, 0, len(order.Lines)),
		Subtotal:          order.Subtotal,
		Shipping:          order.Shipping,
		ShippingFormatted: money.FormatBRL(order.Shipping),
		Total:             order.Total,
		TotalFormatted:    money.FormatBRL(order.Total),
	}
	for _, line := range order.Lines {
		payload.Lines = append(payload.Lines, orderLinePayload{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if order.Address != nil {
		address := buildAddressPayload(*order.Address)
		payload.Address = &address
	}
	return payload
}

func (h *CheckoutHandlers) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_service_unavailable", "checkout is unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	body, err := readLimitedBody(r, maxCheckoutBodySize)
	switch {
	case err == nil:
		if err := json.Unmarshal(body, &req); err != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest))
			return
		}
	case errors.Is(err, errEmptyBody):
		// A bare submission checks out the cart with no address attached.
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		return
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	cmd := services.SubmitCheckoutCommand{
		ClientKey: key,
		Attribution: domain.Attribution{
			Source:   req.UTMSource,
			Medium:   req.UTMMedium,
			Campaign: req.UTMCampaign,
			Term:     req.UTMTerm,
			Content:  req.UTMContent,
		},
	}
	if req.Address != nil {
		cmd.Address = &domain.Address{
			CEP:        req.Address.CEP,
			Street:     req.Address.Street,
			Complement: req.Address.Complement,
			District:   req.Address.District,
			City:       req.Address.City,
			State:      req.Address.State,
			IBGE:       req.Address.IBGE,
			DDD:        req.Address.DDD,
		}
	}

	result, err := h.checkout.Submit(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCheckoutEmptyCart):
			httpx.WriteError(ctx, w, httpx.NewError("empty_cart", "cannot check out an empty cart", http.StatusConflict))
		case errors.Is(err, services.ErrCheckoutInvalidInput), errors.Is(err, services.ErrCartInvalidInput):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid checkout input", http.StatusBadRequest))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("checkout_error", "failed to submit checkout", http.StatusInternalServerError))
		}
		return
	}

	writeJSONResponse(w, http.StatusCreated, map[string]any{
		"order":            buildOrderPayload(result.Order, ""),
		"attributionQuery": result.AttributionQuery,
	})
}
