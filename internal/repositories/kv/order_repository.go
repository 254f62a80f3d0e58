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

// OrderRepository stores the most-recent-first order list as one JSON
// document per client. Orders are immutable; every write rewrites the whole
// list, which is how the original client behaved and keeps last-write-wins
// semantics explicit.
type OrderRepository struct {
	store kv.Store
}

// NewOrderRepository constructs a key/value backed order repository.
func NewOrderRepository(store kv.Store) (*OrderRepository, error) {
	if store == nil {
		return nil, errors.New("order repository requires a store")
	}
	return &OrderRepository{store: store}, nil
}

// Prepend inserts the order at the head of the client's list and writes the
// list back in full.
func (r *OrderRepository) Prepend(ctx context.Context, clientKey string, order domain.Order) error {
	if r == nil || r.store == nil {
		return repositories.NewUnavailableError("order repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return repositories.NewUnavailableError("order repository: client key is required", nil)
	}

	existing := r.loadDocuments(ctx, key)
	docs := make([]orderDocument, 0, len(existing)+1)
	docs = append(docs, orderToDocument(order))
	docs = append(docs, existing...)

	raw, err := json.Marshal(docs)
	if err != nil {
		return repositories.NewCorruptedError("order repository: encode", err)
	}
	if err := r.store.Put(ctx, orderBucket, key, raw); err != nil {
		return repositories.NewUnavailableError("order repository: save", err)
	}
	return nil
}

// List returns the client's orders, most recent first. Absence and
// corruption degrade to an empty list.
func (r *OrderRepository) List(ctx context.Context, clientKey string) ([]domain.Order, error) {
	if r == nil || r.store == nil {
		return nil, repositories.NewUnavailableError("order repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return []domain.Order{}, nil
	}

	docs := r.loadDocuments(ctx, key)
	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, orderFromDocument(doc))
	}
	return orders, nil
}

func (r *OrderRepository) loadDocuments(ctx context.Context, key string) []orderDocument {
	raw, err := r.store.Get(ctx, orderBucket, key)
	if err != nil {
		return nil
	}
	var docs []orderDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil
	}
	return docs
}
