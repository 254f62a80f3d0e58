package services

import (
	"context"
	"errors"
	"strings"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/repositories"
)

var (
	errCartRepositoryRequired = errors.New("cart service: repository is required")
	errCartCatalogRequired    = errors.New("cart service: catalog is required")
)

// ErrCartInvalidInput indicates the caller supplied invalid input.
var ErrCartInvalidInput = errors.New("cart service: invalid input")

// ErrCartUnavailable indicates the cart service cannot fulfil the request due
// to missing dependencies.
var ErrCartUnavailable = errors.New("cart service: unavailable")

// ProductCatalog is the read-only product source the cart derives its totals
// from.
type ProductCatalog interface {
	List() []domain.Product
	FindByID(id string) (domain.Product, error)
}

// CartServiceDeps wires the repository and catalog dependencies for cart
// operations.
type CartServiceDeps struct {
	Repository repositories.CartRepository
	Catalog    ProductCatalog
	Logger     func(context.Context, string, map[string]any)
}

type cartService struct {
	repo    repositories.CartRepository
	catalog ProductCatalog
	logger  func(context.Context, string, map[string]any)
}

// NewCartService constructs a CartService enforcing dependency validation.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Repository == nil {
		return nil, errCartRepositoryRequired
	}
	if deps.Catalog == nil {
		return nil, errCartCatalogRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &cartService{
		repo:    deps.Repository,
		catalog: deps.Catalog,
		logger:  logger,
	}, nil
}

// Get loads the persisted cart and derives its view. Storage trouble of any
// kind degrades to an empty cart.
func (s *cartService) Get(ctx context.Context, clientKey string) (CartView, error) {
	if s == nil || s.repo == nil {
		return CartView{}, ErrCartUnavailable
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return CartView{}, ErrCartInvalidInput
	}
	lines := s.loadLines(ctx, key)
	return s.buildView(lines), nil
}

// AddItem merges the product into the cart, incrementing the quantity when a
// line for the product already exists.
func (s *cartService) AddItem(ctx context.Context, cmd AddItemCommand) (CartView, error) {
	if s == nil || s.repo == nil {
		return CartView{}, ErrCartUnavailable
	}
	key := strings.TrimSpace(cmd.ClientKey)
	if key == "" {
		return CartView{}, ErrCartInvalidInput
	}
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return CartView{}, ErrCartInvalidInput
	}

	// Defensive clamp; callers sending zero or negative quantities mean "one".
	quantity := cmd.Quantity
	if quantity < 1 {
		quantity = 1
	}

	lines := s.loadLines(ctx, key)
	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	}

	s.persist(ctx, key, lines)
	return s.buildView(lines), nil
}

// SetQuantity replaces the quantity of the product's line. Quantities below
// one remove the line; an absent product is a no-op.
func (s *cartService) SetQuantity(ctx context.Context, cmd SetQuantityCommand) (CartView, error) {
	if s == nil || s.repo == nil {
		return CartView{}, ErrCartUnavailable
	}
	key := strings.TrimSpace(cmd.ClientKey)
	if key == "" {
		return CartView{}, ErrCartInvalidInput
	}
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return CartView{}, ErrCartInvalidInput
	}

	if cmd.Quantity < 1 {
		return s.RemoveItem(ctx, key, productID)
	}

	lines := s.loadLines(ctx, key)
	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = cmd.Quantity
			changed = true
			break
		}
	}
	if changed {
		s.persist(ctx, key, lines)
	}
	return s.buildView(lines), nil
}

// RemoveItem deletes the product's line when present; removing an absent
// product is not an error.
func (s *cartService) RemoveItem(ctx context.Context, clientKey, productID string) (CartView, error) {
	if s == nil || s.repo == nil {
		return CartView{}, ErrCartUnavailable
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return CartView{}, ErrCartInvalidInput
	}
	target := strings.TrimSpace(productID)
	if target == "" {
		return CartView{}, ErrCartInvalidInput
	}

	lines := s.loadLines(ctx, key)
	filtered := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == target {
			removed = true
			continue
		}
		filtered = append(filtered, line)
	}
	if removed {
		s.persist(ctx, key, filtered)
	}
	return s.buildView(filtered), nil
}

// Clear empties the cart. Invoked once per successful checkout.
func (s *cartService) Clear(ctx context.Context, clientKey string) error {
	if s == nil || s.repo == nil {
		return ErrCartUnavailable
	}
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return ErrCartInvalidInput
	}
	if err := s.repo.Clear(ctx, key); err != nil {
		s.logger(ctx, "cart.clear_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
	}
	return nil
}

func (s *cartService) loadLines(ctx context.Context, key string) []domain.CartLine {
	lines, err := s.repo.Load(ctx, key)
	if err != nil {
		s.logger(ctx, "cart.load_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
		return []domain.CartLine{}
	}
	if lines == nil {
		return []domain.CartLine{}
	}
	return lines
}

// persist writes the full line list back. Failures are logged and swallowed:
// a storage fault never surfaces from a cart mutation.
func (s *cartService) persist(ctx context.Context, key string, lines []domain.CartLine) {
	if err := s.repo.Replace(ctx, key, lines); err != nil {
		s.logger(ctx, "cart.persist_failed", map[string]any{
			"clientKey": key,
			"error":     err.Error(),
		})
	}
}

// buildView derives totals against the catalog, skipping lines whose product
// id no longer resolves.
func (s *cartService) buildView(lines []domain.CartLine) CartView {
	view := CartView{Lines: []CartLineView{}}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		product, err := s.catalog.FindByID(line.ProductID)
		if err != nil {
			continue
		}
		lineTotal := product.Price * int64(line.Quantity)
		view.Lines = append(view.Lines, CartLineView{
			Product:   product,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		view.TotalCount += line.Quantity
		view.Subtotal += lineTotal
	}
	return view
}

// CartSnapshot converts the view's lines into immutable order lines. The
// result never aliases cart state.
func CartSnapshot(view CartView) []domain.OrderLine {
	snapshot := make([]domain.OrderLine, 0, len(view.Lines))
	for _, line := range view.Lines {
		snapshot = append(snapshot, domain.OrderLine{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}
	return snapshot
}
