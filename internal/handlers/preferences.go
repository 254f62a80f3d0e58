package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/services"
)

const maxPreferenceBodySize = 4 * 1024

// PreferenceHandlers exposes the per-client locale preference.
type PreferenceHandlers struct {
	locales services.LocaleService
}

// NewPreferenceHandlers constructs handlers over the locale service.
func NewPreferenceHandlers(locales services.LocaleService) *PreferenceHandlers {
	return &PreferenceHandlers{locales: locales}
}

// Routes wires the /preferences endpoints onto the provided router.
func (h *PreferenceHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/locale", h.getLocale)
	r.Put("/locale", h.putLocale)
}

func (h *PreferenceHandlers) getLocale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.locales == nil {
		httpx.WriteError(ctx, w, httpx.NewError("preferences_unavailable", "preferences are unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}
	resolved := h.locales.Resolve(ctx, key, r.Header.Get("Accept-Language"))
	writeJSONResponse(w, http.StatusOK, map[string]any{"locale": resolved})
}

type putLocaleRequest struct {
	Locale string `json:"locale"`
}

func (h *PreferenceHandlers) putLocale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.locales == nil {
		httpx.WriteError(ctx, w, httpx.NewError("preferences_unavailable", "preferences are unavailable", http.StatusServiceUnavailable))
		return
	}
	key, ok := requireClientKey(w, r)
	if !ok {
		return
	}

	body, err := readLimitedBody(r, maxPreferenceBodySize)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	var req putLocaleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("invalid JSON payload: %v", err), http.StatusBadRequest))
		return
	}

	if err := h.locales.Set(ctx, key, req.Locale); err != nil {
		switch {
		case errors.Is(err, services.ErrLocaleUnsupported):
			httpx.WriteError(ctx, w, httpx.NewError("unsupported_locale", "that locale is not served", http.StatusUnprocessableEntity))
		case errors.Is(err, services.ErrLocaleInvalidInput):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid locale input", http.StatusBadRequest))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("preferences_error", "failed to store locale", http.StatusInternalServerError))
		}
		return
	}

	resolved := h.locales.Resolve(ctx, key, r.Header.Get("Accept-Language"))
	writeJSONResponse(w, http.StatusOK, map[string]any{"locale": resolved})
}
