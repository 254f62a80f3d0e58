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

// AttributionRepository stores the session's campaign parameters per client.
type AttributionRepository struct {
	store kv.Store
}

// NewAttributionRepository constructs a key/value backed attribution repository.
func NewAttributionRepository(store kv.Store) (*AttributionRepository, error) {
	if store == nil {
		return nil, errors.New("attribution repository requires a store")
	}
	return &AttributionRepository{store: store}, nil
}

// Load returns the stored parameters, degrading to the zero value on absence
// or corruption.
func (r *AttributionRepository) Load(ctx context.Context, clientKey string) (domain.Attribution, error) {
	if r == nil || r.store == nil {
		return domain.Attribution{}, repositories.NewUnavailableError("attribution repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return domain.Attribution{}, nil
	}
	raw, err := r.store.Get(ctx, attributionBucket, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.Attribution{}, nil
		}
		return domain.Attribution{}, repositories.NewUnavailableError("attribution repository: load", err)
	}
	var doc attributionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Attribution{}, nil
	}
	return domain.Attribution{
		Source:   doc.Source,
		Medium:   doc.Medium,
		Campaign: doc.Campaign,
		Term:     doc.Term,
		Content:  doc.Content,
	}, nil
}

// Save persists the parameters for the session.
func (r *AttributionRepository) Save(ctx context.Context, clientKey string, params domain.Attribution) error {
	if r == nil || r.store == nil {
		return repositories.NewUnavailableError("attribution repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return repositories.NewUnavailableError("attribution repository: client key is required", nil)
	}
	raw, err := json.Marshal(attributionDocument{
		Source:   params.Source,
		Medium:   params.Medium,
		Campaign: params.Campaign,
		Term:     params.Term,
		Content:  params.Content,
	})
	if err != nil {
		return repositories.NewCorruptedError("attribution repository: encode", err)
	}
	if err := r.store.Put(ctx, attributionBucket, key, raw); err != nil {
		return repositories.NewUnavailableError("attribution repository: save", err)
	}
	return nil
}
