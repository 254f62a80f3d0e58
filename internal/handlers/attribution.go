package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/services"
)

// AttributionHandlers captures campaign parameters from landing requests.
type AttributionHandlers struct {
	attribution services.AttributionService
}

// NewAttributionHandlers constructs handlers over the attribution service.
func NewAttributionHandlers(attribution services.AttributionService) *AttributionHandlers {
	return &AttributionHandlers{attribution: attribution}
}

// Routes wires the /attribution endpoints onto the provided router.
func (h *AttributionHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.capture)
	r.Get("/", h.load)
}

type attributionPayload struct {
	Source   string `json:"utmSource,omitempty"`
	Medium   string `json:"utmMedium,omitempty"`
	Campaign string `json:"utmCampaign,omitempty"`
	Term     string `json:"utmTerm,omitempty"`
	Content  string `json:"utmContent,omitempty"`
	Query    string `json:"query"`
}

func buildAttributionPayload(a domain.Attribution) attributionPayload {
	return attributionPayload{
		Source:   a.Source,
		Medium:   a.Medium,
		Campaign: a.Campaign,
		Term:     a.Term,
		Content:  a.Content,
		Query:    services.AttributionQuery(a),
	}
}

// capture merges the request's query parameters over the stored attribution.
// The landing page forwards its URL query verbatim.
func (h *AttributionHandlers) capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.attribution == nil {
		httpx.WriteError(ctx, w, httpx.NewError("attribution_unavailable", "attribution is unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	captured, err := h.attribution.Capture(ctx, key, r.URL.Query())
	if err != nil {
		h.writeAttributionError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"attribution": buildAttributionPayload(captured)})
}

func (h *AttributionHandlers) load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.attribution == nil {
		httpx.WriteError(ctx, w, httpx.NewError("attribution_unavailable", "attribution is unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	stored, err := h.attribution.Load(ctx, key)
	if err != nil {
		h.writeAttributionError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"attribution": buildAttributionPayload(stored)})
}

func (h *AttributionHandlers) writeAttributionError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrAttributionInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid attribution input", http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("attribution_error", "failed to process attribution", http.StatusInternalServerError))
	}
}
