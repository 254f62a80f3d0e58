package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/repositories"
)

var errOrderRepositoryRequired = errors.New("order service: repository is required")

// ErrOrderInvalidInput indicates the caller supplied invalid input.
var ErrOrderInvalidInput = errors.New("order service: invalid input")

// ErrOrderNotFound indicates no order matches the requested id.
var ErrOrderNotFound = errors.New("order service: order not found")

const orderIDPrefix = "GS"

// NewOrderID builds a human-readable order id: the GS prefix, the creation
// date, and a six character suffix drawn from a ULID so ids stay unique even
// within the same day.
func NewOrderID(now time.Time, entropy func() ulid.ULID) string {
	id := entropy()
	encoded := id.String()
	suffix := encoded[len(encoded)-6:]
	return orderIDPrefix + "-" + now.Format("20060102") + "-" + suffix
}

// DefaultULIDEntropy returns a monotonic ULID source suitable for production
// wiring.
func DefaultULIDEntropy() func() ulid.ULID {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return func() ulid.ULID {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Now(), entropy)
	}
}

// OrderServiceDeps wires the persistence dependency for order reads.
type OrderServiceDeps struct {
	Repository repositories.OrderRepository
	Logger     func(context.Context, string, map[string]any)
}

type orderService struct {
	repo   repositories.OrderRepository
	logger func(context.Context, string, map[string]any)
}

// NewOrderService constructs an OrderService enforcing dependency validation.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Repository == nil {
		return nil, errOrderRepositoryRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &orderService{repo: deps.Repository, logger: logger}, nil
}

// List returns the client's orders, most recent first. Storage trouble
// degrades to an empty list.
func (s *orderService) List(ctx context.Context, clientKey string) ([]domain.Order, error) {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return nil, ErrOrderInvalidInput
	}
	orders, err := s.repo.List(ctx, key)
	if err != nil {
		s.logger(ctx, "orders.list_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
		return []domain.Order{}, nil
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

// Find locates one order by id. Matching ignores surrounding whitespace and
// letter case so ids survive copy-paste.
func (s *orderService) Find(ctx context.Context, clientKey, id string) (domain.Order, error) {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return domain.Order{}, ErrOrderInvalidInput
	}
	needle := strings.TrimSpace(id)
	if needle == "" {
		return domain.Order{}, ErrOrderInvalidInput
	}

	orders, err := s.List(ctx, key)
	if err != nil {
		return domain.Order{}, err
	}
	for _, order := range orders {
		if strings.EqualFold(strings.TrimSpace(order.ID), needle) {
			return order, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}
