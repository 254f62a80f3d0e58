// Package catalog holds the fixed product list for the storefront. The
// catalog is seeded once from an embedded document and is read-only at
// runtime.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

//go:embed products.yaml
var seedDocument []byte

// ErrProductNotFound indicates the requested product id is not in the catalog.
var ErrProductNotFound = errors.New("catalog: product not found")

// Catalog exposes read-only access to the seeded product list.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

type productDocument struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Tagline      string   `yaml:"tagline"`
	Description  string   `yaml:"description"`
	Price        int64    `yaml:"price"`
	OldPrice     int64    `yaml:"oldPrice"`
	Installments string   `yaml:"installments"`
	Image        string   `yaml:"image"`
	Gallery      []string `yaml:"gallery"`
}

type seedFile struct {
	Products []productDocument `yaml:"products"`
}

// New loads the embedded catalog seed.
func New() (*Catalog, error) {
	return Parse(seedDocument)
}

// Parse builds a catalog from a YAML seed document.
func Parse(raw []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}
	if len(seed.Products) == 0 {
		return nil, errors.New("catalog: seed contains no products")
	}

	products := make([]domain.Product, 0, len(seed.Products))
	byID := make(map[string]domain.Product, len(seed.Products))
	for _, doc := range seed.Products {
		id := strings.TrimSpace(doc.ID)
		if id == "" {
			return nil, errors.New("catalog: product id is required")
		}
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("catalog: duplicate product id %q", id)
		}
		if doc.Price < 0 || doc.OldPrice < 0 {
			return nil, fmt.Errorf("catalog: product %q has a negative price", id)
		}
		product := domain.Product{
			ID:           id,
			Name:         strings.TrimSpace(doc.Name),
			Tagline:      strings.TrimSpace(doc.Tagline),
			Description:  strings.TrimSpace(doc.Description),
			Price:        doc.Price,
			OldPrice:     doc.OldPrice,
			Installments: strings.TrimSpace(doc.Installments),
			Image:        strings.TrimSpace(doc.Image),
			Gallery:      append([]string(nil), doc.Gallery...),
		}
		products = append(products, product)
		byID[id] = product
	}

	return &Catalog{products: products, byID: byID}, nil
}

// List returns the products in seed order.
func (c *Catalog) List() []domain.Product {
	if c == nil {
		return nil
	}
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID looks up a product by id.
func (c *Catalog) FindByID(id string) (domain.Product, error) {
	if c == nil {
		return domain.Product{}, ErrProductNotFound
	}
	product, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return product, nil
}
