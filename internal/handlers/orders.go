package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/i18n"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/services"
)

// OrderHandlers serves the client's order history and the tracking view.
type OrderHandlers struct {
	orders services.OrderService
	bundle *i18n.Bundle
}

// NewOrderHandlers constructs handlers over the order service. The bundle is
// optional; without it status labels fall back to the raw status values.
func NewOrderHandlers(orders services.OrderService, bundle *i18n.Bundle) *OrderHandlers {
	return &OrderHandlers{orders: orders, bundle: bundle}
}

// Routes wires the /orders endpoints onto the provided router.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listOrders)
	r.Get("/{orderId}", h.getOrder)
}

type timelineStepPayload struct {
	Status  string `json:"status"`
	Label   string `json:"label"`
	Reached bool   `json:"reached"`
}

func (h *OrderHandlers) statusLabel(locale string, status domain.OrderStatus) string {
	if h.bundle == nil {
		return string(status)
	}
	return h.bundle.StatusLabel(locale, status)
}

// buildTimeline renders the full fulfilment chain with each milestone marked
// reached or pending relative to the order's status.
func (h *OrderHandlers) buildTimeline(locale string, status domain.OrderStatus) []timelineStepPayload {
	steps := make([]timelineStepPayload, 0, len(domain.OrderStatusChain))
	for _, milestone := range domain.OrderStatusChain {
		steps = append(steps, timelineStepPayload{
			Status:  string(milestone),
			Label:   h.statusLabel(locale, milestone),
			Reached: status.Reached(milestone),
		})
	}
	return steps
}

func (h *OrderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("order_service_unavailable", "orders are unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.List(ctx, key)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	locale := requestLocale(r)
	payload := make([]orderPayload, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, buildOrderPayload(order, h.statusLabel(locale, order.Status)))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"orders": payload})
}

func (h *OrderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("order_service_unavailable", "orders are unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Find(ctx, key, chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	locale := requestLocale(r)
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"order":    buildOrderPayload(order, h.statusLabel(locale, order.Status)),
		"timeline": h.buildTimeline(locale, order.Status),
	})
}

func (h *OrderHandlers) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "no order with that id", http.StatusNotFound))
	case errors.Is(err, services.ErrOrderInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid order query", http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("order_error", "failed to load orders", http.StatusInternalServerError))
	}
}
