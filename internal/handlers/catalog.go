package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supreme-labs/storefront/internal/catalog"
	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/platform/money"
)

const catalogCacheControl = "public, max-age=300"

// CatalogHandlers serves the read-only product catalog.
type CatalogHandlers struct {
	catalog *catalog.Catalog
}

// NewCatalogHandlers constructs handlers over the seeded catalog.
func NewCatalogHandlers(c *catalog.Catalog) *CatalogHandlers {
	return &CatalogHandlers{catalog: c}
}

// Routes wires the /catalog endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/products", h.listProducts)
	r.Get("/products/{productId}", h.getProduct)
}

type productPayload struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Tagline           string   `json:"tagline,omitempty"`
	Description       string   `json:"description,omitempty"`
	Price             int64    `json:"price"`
	PriceFormatted    string   `json:"priceFormatted"`
	OldPrice          int64    `json:"oldPrice,omitempty"`
	OldPriceFormatted string   `json:"oldPriceFormatted,omitempty"`
	Installments      string   `json:"installments,omitempty"`
	Image             string   `json:"image,omitempty"`
	Gallery           []string `json:"gallery,omitempty"`
}

func buildProductPayload(p domain.Product) productPayload {
	payload := productPayload{
		ID:             p.ID,
		Name:           p.Name,
		Tagline:        p.Tagline,
		Description:    p.Description,
		Price:          p.Price,
		PriceFormatted: money.FormatBRL(p.Price),
		Installments:   p.Installments,
		Image:          p.Image,
	}
	if p.OldPrice > 0 {
		payload.OldPrice = p.OldPrice
		payload.OldPriceFormatted = money.FormatBRL(p.OldPrice)
	}
	if len(p.Gallery) > 0 {
		payload.Gallery = append([]string{}, p.Gallery...)
	}
	return payload
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog is unavailable", http.StatusServiceUnavailable))
		return
	}

	products := h.catalog.List()
	payload := make([]productPayload, 0, len(products))
	for _, p := range products {
		payload = append(payload, buildProductPayload(p))
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSONResponse(w, http.StatusOK, map[string]any{"products": payload})
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog is unavailable", http.StatusServiceUnavailable))
		return
	}

	id := chi.URLParam(r, "productId")
	product, err := h.catalog.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "no product with that id", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to load product", http.StatusInternalServerError))
		return
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSONResponse(w, http.StatusOK, map[string]any{"product": buildProductPayload(product)})
}
