package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/supreme-labs/storefront/internal/platform/kv"
	"github.com/supreme-labs/storefront/internal/repositories"
)

// PreferenceRepository stores per-client settings such as the UI locale.
type PreferenceRepository struct {
	store kv.Store
}

// NewPreferenceRepository constructs a key/value backed preference repository.
func NewPreferenceRepository(store kv.Store) (*PreferenceRepository, error) {
	if store == nil {
		return nil, errors.New("preference repository requires a store")
	}
	return &PreferenceRepository{store: store}, nil
}

// LoadLocale returns the stored locale, or empty when absent or unreadable.
func (r *PreferenceRepository) LoadLocale(ctx context.Context, clientKey string) (string, error) {
	if r == nil || r.store == nil {
		return "", repositories.NewUnavailableError("preference repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return "", nil
	}
	raw, err := r.store.Get(ctx, preferenceBucket, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", repositories.NewUnavailableError("preference repository: load", err)
	}
	var doc preferenceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", nil
	}
	return strings.TrimSpace(doc.Locale), nil
}

// SaveLocale persists the locale preference.
func (r *PreferenceRepository) SaveLocale(ctx context.Context, clientKey string, locale string) error {
	if r == nil || r.store == nil {
		return repositories.NewUnavailableError("preference repository not initialised", nil)
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return repositories.NewUnavailableError("preference repository: client key is required", nil)
	}
	raw, err := json.Marshal(preferenceDocument{Locale: strings.TrimSpace(locale)})
	if err != nil {
		return repositories.NewCorruptedError("preference repository: encode", err)
	}
	if err := r.store.Put(ctx, preferenceBucket, key, raw); err != nil {
		return repositories.NewUnavailableError("preference repository: save", err)
	}
	return nil
}
