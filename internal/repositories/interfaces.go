package repositories

import (
	"context"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation
// used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsCorrupted() bool
	IsUnavailable() bool
}

// CartRepository persists the line items of one cart per client key.
//
// Load degrades to an empty line list on absence or corruption; only backend
// unavailability surfaces as an error, and even that is swallowed by the
// service layer per the storefront's no-fatal-storage-errors contract.
type CartRepository interface {
	Load(ctx context.Context, clientKey string) ([]domain.CartLine, error)
	Replace(ctx context.Context, clientKey string, lines []domain.CartLine) error
	Clear(ctx context.Context, clientKey string) error
}

// OrderRepository persists the most-recent-first order list per client key.
type OrderRepository interface {
	Prepend(ctx context.Context, clientKey string, order domain.Order) error
	List(ctx context.Context, clientKey string) ([]domain.Order, error)
}

// PreferenceRepository persists small per-client settings such as the locale.
type PreferenceRepository interface {
	LoadLocale(ctx context.Context, clientKey string) (string, error)
	SaveLocale(ctx context.Context, clientKey string, locale string) error
}

// AttributionRepository persists the session-scoped campaign parameters.
type AttributionRepository interface {
	Load(ctx context.Context, clientKey string) (domain.Attribution, error)
	Save(ctx context.Context, clientKey string, params domain.Attribution) error
}
