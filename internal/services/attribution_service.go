package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/repositories"
)

var errAttributionRepositoryRequired = errors.New("attribution service: repository is required")

// ErrAttributionInvalidInput indicates the caller supplied invalid input.
var ErrAttributionInvalidInput = errors.New("attribution service: invalid input")

// The campaign parameters the storefront recognises.
const (
	utmSourceKey   = "utm_source"
	utmMediumKey   = "utm_medium"
	utmCampaignKey = "utm_campaign"
	utmTermKey     = "utm_term"
	utmContentKey  = "utm_content"
)

// AttributionServiceDeps wires the persistence dependency for campaign
// parameter capture.
type AttributionServiceDeps struct {
	Repository repositories.AttributionRepository
	Logger     func(context.Context, string, map[string]any)
}

type attributionService struct {
	repo   repositories.AttributionRepository
	logger func(context.Context, string, map[string]any)
}

// NewAttributionService constructs an AttributionService enforcing dependency
// validation.
func NewAttributionService(deps AttributionServiceDeps) (AttributionService, error) {
	if deps.Repository == nil {
		return nil, errAttributionRepositoryRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &attributionService{repo: deps.Repository, logger: logger}, nil
}

// Capture merges the incoming query parameters over whatever was stored
// earlier: a parameter present in the URL wins, an absent one keeps its
// stored value. The merged result is persisted for the session.
func (s *attributionService) Capture(ctx context.Context, clientKey string, query url.Values) (domain.Attribution, error) {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return domain.Attribution{}, ErrAttributionInvalidInput
	}

	merged, err := s.repo.Load(ctx, key)
	if err != nil {
		s.logger(ctx, "attribution.load_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
		merged = domain.Attribution{}
	}

	if v := strings.TrimSpace(query.Get(utmSourceKey)); v != "" {
		merged.Source = v
	}
	if v := strings.TrimSpace(query.Get(utmMediumKey)); v != "" {
		merged.Medium = v
	}
	if v := strings.TrimSpace(query.Get(utmCampaignKey)); v != "" {
		merged.Campaign = v
	}
	if v := strings.TrimSpace(query.Get(utmTermKey)); v != "" {
		merged.Term = v
	}
	if v := strings.TrimSpace(query.Get(utmContentKey)); v != "" {
		merged.Content = v
	}

	if err := s.repo.Save(ctx, key, merged); err != nil {
		s.logger(ctx, "attribution.save_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
	}
	return merged, nil
}

// Load returns the stored campaign parameters, degrading to zero values on
// storage trouble.
func (s *attributionService) Load(ctx context.Context, clientKey string) (domain.Attribution, error) {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return domain.Attribution{}, ErrAttributionInvalidInput
	}
	stored, err := s.repo.Load(ctx, key)
	if err != nil {
		s.logger(ctx, "attribution.load_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
		return domain.Attribution{}, nil
	}
	return stored, nil
}

// AttributionQuery encodes the attribution as a `?`-prefixed query string the
// confirmation redirect appends verbatim. Empty parameters are omitted; a
// fully empty attribution yields the empty string.
func AttributionQuery(a domain.Attribution) string {
	values := url.Values{}
	if a.Source != "" {
		values.Set(utmSourceKey, a.Source)
	}
	if a.Medium != "" {
		values.Set(utmMediumKey, a.Medium)
	}
	if a.Campaign != "" {
		values.Set(utmCampaignKey, a.Campaign)
	}
	if a.Term != "" {
		values.Set(utmTermKey, a.Term)
	}
	if a.Content != "" {
		values.Set(utmContentKey, a.Content)
	}
	encoded := values.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}
