package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supreme-labs/storefront/internal/content"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
)

const contentCacheControl = "public, max-age=900"

// ContentHandlers serves the rendered policy and help pages.
type ContentHandlers struct {
	store *content.Store
}

// NewContentHandlers constructs handlers over the rendered document store.
func NewContentHandlers(store *content.Store) *ContentHandlers {
	return &ContentHandlers{store: store}
}

// Routes wires the /content endpoints onto the provided router.
func (h *ContentHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listDocuments)
	r.Get("/{slug}", h.getDocument)
}

type documentPayload struct {
	Slug   string `json:"slug"`
	Locale string `json:"locale"`
	Title  string `json:"title"`
	HTML   string `json:"html"`
}

func (h *ContentHandlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.store == nil {
		httpx.WriteError(ctx, w, httpx.NewError("content_unavailable", "content is unavailable", http.StatusServiceUnavailable))
		return
	}
	w.Header().Set("Cache-Control", contentCacheControl)
	writeJSONResponse(w, http.StatusOK, map[string]any{"slugs": h.store.Slugs()})
}

func (h *ContentHandlers) getDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.store == nil {
		httpx.WriteError(ctx, w, httpx.NewError("content_unavailable", "content is unavailable", http.StatusServiceUnavailable))
		return
	}

	doc, err := h.store.Get(chi.URLParam(r, "slug"), requestLocale(r))
	if err != nil {
		if errors.Is(err, content.ErrDocumentNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("document_not_found", "no document with that slug", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("content_error", "failed to load document", http.StatusInternalServerError))
		return
	}

	w.Header().Set("Cache-Control", contentCacheControl)
	writeJSONResponse(w, http.StatusOK, map[string]any{"document": documentPayload{
		Slug:   doc.Slug,
		Locale: doc.Locale,
		Title:  doc.Title,
		HTML:   doc.HTML,
	}})
}
