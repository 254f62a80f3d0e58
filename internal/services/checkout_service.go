package services

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/repositories"
)

var (
	errCheckoutCartServiceRequired = errors.New("checkout service: cart service is required")
	errCheckoutOrdersRequired      = errors.New("checkout service: order repository is required")
	errCheckoutAttributionRequired = errors.New("checkout service: attribution service is required")
)

// ErrCheckoutInvalidInput indicates the caller supplied invalid input.
var ErrCheckoutInvalidInput = errors.New("checkout service: invalid input")

// ErrCheckoutEmptyCart indicates a submission was attempted with nothing in
// the cart.
var ErrCheckoutEmptyCart = errors.New("checkout service: cart is empty")

// CheckoutServiceDeps wires the collaborators a checkout submission touches.
type CheckoutServiceDeps struct {
	Cart        CartService
	Orders      repositories.OrderRepository
	Attribution AttributionService
	Clock       func() time.Time
	Entropy     func() ulid.ULID
	Logger      func(context.Context, string, map[string]any)
}

type checkoutService struct {
	cart        CartService
	orders      repositories.OrderRepository
	attribution AttributionService
	clock       func() time.Time
	entropy     func() ulid.ULID
	logger      func(context.Context, string, map[string]any)
}

// NewCheckoutService constructs a CheckoutService enforcing dependency
// validation.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Cart == nil {
		return nil, errCheckoutCartServiceRequired
	}
	if deps.Orders == nil {
		return nil, errCheckoutOrdersRequired
	}
	if deps.Attribution == nil {
		return nil, errCheckoutAttributionRequired
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	entropy := deps.Entropy
	if entropy == nil {
		entropy = DefaultULIDEntropy()
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &checkoutService{
		cart:        deps.Cart,
		orders:      deps.Orders,
		attribution: deps.Attribution,
		clock:       clock,
		entropy:     entropy,
		logger:      logger,
	}, nil
}

// Submit freezes the current cart into an order: lines are snapshotted,
// totals are computed once, the order is stored most-recent-first, and the
// cart is cleared. Campaign parameters captured for the session ride along so
// the confirmation page can keep attribution intact.
func (s *checkoutService) Submit(ctx context.Context, cmd SubmitCheckoutCommand) (CheckoutResult, error) {
	key := cmd.ClientKey
	if key == "" {
		return CheckoutResult{}, ErrCheckoutInvalidInput
	}

	view, err := s.cart.Get(ctx, key)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(view.Lines) == 0 {
		return CheckoutResult{}, ErrCheckoutEmptyCart
	}

	now := s.clock()
	shipping := EstimateShipping(view.Subtotal, cmd.Address != nil)

	var address *domain.Address
	if cmd.Address != nil {
		copied := *cmd.Address
		address = &copied
	}

	order := domain.Order{
		ID:        NewOrderID(now, s.entropy),
		CreatedAt: now,
		Status:    domain.OrderStatusConfirmed,
		Lines:     CartSnapshot(view),
		Subtotal:  view.Subtotal,
		Shipping:  shipping,
		Total:     view.Subtotal + shipping,
		Address:   address,
	}

	if err := s.orders.Prepend(ctx, key, order); err != nil {
		s.logger(ctx, "checkout.store_failed", map[string]any{
			"clientKey": key,
			"orderId":   order.ID,
			"error":     err.Error(),
		})
	}

	if err := s.cart.Clear(ctx, key); err != nil {
		s.logger(ctx, "checkout.cart_clear_failed", map[string]any{
			"clientKey": key,
			"orderId":   order.ID,
			"error":     err.Error(),
		})
	}

	attribution := cmd.Attribution
	if attribution.IsZero() {
		stored, loadErr := s.attribution.Load(ctx, key)
		if loadErr == nil {
			attribution = stored
		}
	}

	s.logger(ctx, "checkout.submitted", map[string]any{
		"clientKey": key,
		"orderId":   order.ID,
		"total":     order.Total,
	})

	return CheckoutResult{
		Order:            order,
		AttributionQuery: AttributionQuery(attribution),
	}, nil
}
