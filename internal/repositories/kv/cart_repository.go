package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/kv"
	"github.com/supreme-labs/storefront/internal/repositories"
)

// CartRepository stores the cart line list as one JSON document per client.
type CartRepository struct {
	store kv.Store
}

// NewCartRepository constructs a key/value backed cart repository.
func NewCartRepository(store kv.Store) (*CartRepository, error) {
	if store == nil {
		return nil, errors.New("cart repository requires a store")
	}
	return &CartRepository{store: store}, nil
}

// Load reads the persisted lines for the client. Absence and corruption both
// degrade to an empty list; only backend unavailability is reported.
func (r *CartRepository) Load(ctx context.Context, clientKey string) ([]domain.CartLine, error) {
	if r == nil || r.store == nil {
		return nil, repositories.NewUnavailableError("cart repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return []domain.CartLine{}, nil
	}

	raw, err := r.store.Get(ctx, cartBucket, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []domain.CartLine{}, nil
		}
		return nil, repositories.NewUnavailableError("cart repository: load", err)
	}

	var docs []cartLineDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Corrupt payloads degrade to an empty cart, never an error.
		return []domain.CartLine{}, nil
	}
	return cartLinesFromDocuments(docs), nil
}

// Replace writes the full line list back to storage.
func (r *CartRepository) Replace(ctx context.Context, clientKey string, lines []domain.CartLine) error {
	if r == nil || r.store == nil {
		return repositories.NewUnavailableError("cart repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return repositories.NewUnavailableError("cart repository: client key is required", nil)
	}

	raw, err := json.Marshal(cartLinesToDocuments(lines))
	if err != nil {
		return repositories.NewCorruptedError("cart repository: encode", err)
	}
	if err := r.store.Put(ctx, cartBucket, key, raw); err != nil {
		return repositories.NewUnavailableError("cart repository: replace", err)
	}
	return nil
}

// Clear removes the persisted cart for the client.
func (r *CartRepository) Clear(ctx context.Context, clientKey string) error {
	if r == nil || r.store == nil {
		return repositories.NewUnavailableError("cart repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return nil
	}
	if err := r.store.Delete(ctx, cartBucket, key); err != nil {
		return repositories.NewUnavailableError("cart repository: clear", err)
	}
	return nil
}
