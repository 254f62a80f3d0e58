package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/platform/money"
	"github.com/supreme-labs/storefront/internal/services"
)

const maxCartBodySize = 16 * 1024

// CartHandlers exposes the client-scoped cart endpoints.
type CartHandlers struct {
	carts services.CartService
}

// NewCartHandlers constructs handlers over the cart service.
func NewCartHandlers(carts services.CartService) *CartHandlers {
	return &CartHandlers{carts: carts}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Delete("/", h.clearCart)
	r.Post("/items", h.addItem)
	r.Patch("/items/{productId}", h.setQuantity)
	r.Delete("/items/{productId}", h.removeItem)
}

type cartLinePayload struct {
	Product   productPayload `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal int64          `json:"lineTotal"`
}

type cartPayload struct {
	Lines              []cartLinePayload `json:"items"`
	TotalCount         int               `json:"totalCount"`
	Subtotal           int64             `json:"subtotal"`
	SubtotalFormatted  string            `json:"subtotalFormatted"`
	FreeShippingTarget int64             `json:"freeShippingTarget"`
	// Open mirrors the storefront drawer: true right after an item lands in
	// the cart, never persisted.
	Open bool `json:"open"`
}

func buildCartPayload(view services.CartView, open bool) cartPayload {
	payload := cartPayload{
		Lines:              make([]cartLinePayload, 0, len(view.Lines)),
		TotalCount:         view.TotalCount,
		Subtotal:           view.Subtotal,
		SubtotalFormatted:  money.FormatBRL(view.Subtotal),
		FreeShippingTarget: services.FreeShippingThreshold,
		Open:               open,
	}
	for _, line := range view.Lines {
		payload.Lines = append(payload.Lines, cartLinePayload{
			Product:   buildProductPayload(line.Product),
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}
	return payload
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	view, err := h.carts.Get(ctx, key)
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"cart": buildCartPayload(view, false)})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	var req addItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest))
		return
	}

	view, err := h.carts.AddItem(ctx, services.AddItemCommand{
		ClientKey: key,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"cart": buildCartPayload(view, true)})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		h.writeBodyError(w, r, err)
		return
	}
	var req setQuantityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest))
		return
	}

	view, err := h.carts.SetQuantity(ctx, services.SetQuantityCommand{
		ClientKey: key,
		ProductID: chi.URLParam(r, "productId"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"cart": buildCartPayload(view, false)})
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	view, err := h.carts.RemoveItem(ctx, key, chi.URLParam(r, "productId"))
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"cart": buildCartPayload(view, false)})
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(ctx, key); err != nil {
		h.writeCartError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"cart": buildCartPayload(services.CartView{Lines: []services.CartLineView{}}, false)})
}

func (h *CartHandlers) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}

func (h *CartHandlers) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid cart input", http.StatusBadRequest))
	case errors.Is(err, services.ErrCartUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_error", "failed to process cart request", http.StatusInternalServerError))
	}
}
