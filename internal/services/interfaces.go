package services

import (
	"context"
	"net/url"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

// CartLineView pairs a resolved catalog product with its cart quantity.
type CartLineView struct {
	Product   domain.Product
	Quantity  int
	LineTotal int64
}

// CartView is the derived read model for one client's cart. Totals are
// recomputed from the line list against the catalog on every read; lines
// whose product id no longer resolves are dropped from the view entirely.
type CartView struct {
	Lines      []CartLineView
	TotalCount int
	Subtotal   int64
}

// AddItemCommand adds (or merges) a product into the cart.
type AddItemCommand struct {
	ClientKey string
	ProductID string
	Quantity  int
}

// SetQuantityCommand replaces the quantity of an existing line. A quantity
// below one removes the line.
type SetQuantityCommand struct {
	ClientKey string
	ProductID string
	Quantity  int
}

// CartService owns the client-scoped cart state.
type CartService interface {
	Get(ctx context.Context, clientKey string) (CartView, error)
	AddItem(ctx context.Context, cmd AddItemCommand) (CartView, error)
	SetQuantity(ctx context.Context, cmd SetQuantityCommand) (CartView, error)
	RemoveItem(ctx context.Context, clientKey, productID string) (CartView, error)
	Clear(ctx context.Context, clientKey string) error
}

// SubmitCheckoutCommand carries everything a checkout submission needs. The
// address, when present, is the snapshot the client resolved earlier via the
// postal lookup; the checkout never re-resolves it.
type SubmitCheckoutCommand struct {
	ClientKey   string
	Address     *domain.Address
	Attribution domain.Attribution
}

// CheckoutResult is returned after a successful submission.
type CheckoutResult struct {
	Order            domain.Order
	AttributionQuery string
}

// CheckoutService turns the current cart into an immutable order.
type CheckoutService interface {
	Submit(ctx context.Context, cmd SubmitCheckoutCommand) (CheckoutResult, error)
}

// OrderService reads back the client's persisted orders.
type OrderService interface {
	List(ctx context.Context, clientKey string) ([]domain.Order, error)
	Find(ctx context.Context, clientKey, id string) (domain.Order, error)
}

// AttributionService captures and propagates campaign parameters.
type AttributionService interface {
	Capture(ctx context.Context, clientKey string, query url.Values) (domain.Attribution, error)
	Load(ctx context.Context, clientKey string) (domain.Attribution, error)
}

// LocaleService resolves and persists the per-client UI locale.
type LocaleService interface {
	Resolve(ctx context.Context, clientKey, acceptLanguage string) string
	Set(ctx context.Context, clientKey, locale string) error
}
