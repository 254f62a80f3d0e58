package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: map[string]domain.Product{
		"maxx":   {ID: "maxx", Name: "Supreme Maxx", Price: 9700, OldPrice: 14700},
		"thermo": {ID: "thermo", Name: "Supreme Thermo", Price: 9700, OldPrice: 14700},
		"gold":   {ID: "gold", Name: "Supreme Gold", Price: 11700, OldPrice: 16700},
	}}
}

func (c *stubCatalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

func (c *stubCatalog) FindByID(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, errors.New("stub catalog: product not found")
	}
	return p, nil
}

type stubCartRepository struct {
	lines       map[string][]domain.CartLine
	loadErr     error
	replaceErr  error
	clearErr    error
	replaceLog  [][]domain.CartLine
	clearCalled int
}

func newStubCartRepository() *stubCartRepository {
	return &stubCartRepository{lines: map[string][]domain.CartLine{}}
}

func (r *stubCartRepository) Load(_ context.Context, clientKey string) ([]domain.CartLine, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	stored := r.lines[clientKey]
	dup := make([]domain.CartLine, len(stored))
	copy(dup, stored)
	return dup, nil
}

func (r *stubCartRepository) Replace(_ context.Context, clientKey string, lines []domain.CartLine) error {
	dup := make([]domain.CartLine, len(lines))
	copy(dup, lines)
	r.replaceLog = append(r.replaceLog, dup)
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.lines[clientKey] = dup
	return nil
}

func (r *stubCartRepository) Clear(_ context.Context, clientKey string) error {
	r.clearCalled++
	if r.clearErr != nil {
		return r.clearErr
	}
	delete(r.lines, clientKey)
	return nil
}

func newTestCartService(t *testing.T, repo *stubCartRepository) CartService {
	t.Helper()
	svc, err := NewCartService(CartServiceDeps{Repository: repo, Catalog: newStubCatalog()})
	if err != nil {
		t.Fatalf("NewCartService returned error: %v", err)
	}
	return svc
}

func TestNewCartServiceValidatesDeps(t *testing.T) {
	if _, err := NewCartService(CartServiceDeps{Catalog: newStubCatalog()}); err == nil {
		t.Fatal("expected error when repository is missing")
	}
	if _, err := NewCartService(CartServiceDeps{Repository: newStubCartRepository()}); err == nil {
		t.Fatal("expected error when catalog is missing")
	}
}

func TestCartAddItemMergesByProduct(t *testing.T) {
	repo := newStubCartRepository()
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	view, err := svc.AddItem(ctx, AddItemCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	view, err = svc.AddItem(ctx, AddItemCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", view.Lines[0].Quantity)
	}
	if view.TotalCount != 3 {
		t.Fatalf("TotalCount = %d, want 3", view.TotalCount)
	}
	if view.Subtotal != 3*9700 {
		t.Fatalf("Subtotal = %d, want %d", view.Subtotal, 3*9700)
	}
}

func TestCartAddItemClampsQuantityToOne(t *testing.T) {
	repo := newStubCartRepository()
	svc := newTestCartService(t, repo)

	view, err := svc.AddItem(context.Background(), AddItemCommand{ClientKey: "c1", ProductID: "gold", Quantity: 0})
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 1 {
		t.Fatalf("expected one line with quantity 1, got %+v", view.Lines)
	}
}

func TestCartSetQuantityBelowOneRemovesLine(t *testing.T) {
	repo := newStubCartRepository()
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 2}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	view, err := svc.SetQuantity(ctx, SetQuantityCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 0})
	if err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart after zero-quantity update, got %d lines", len(view.Lines))
	}
}

func TestCartSetQuantityReplacesValue(t *testing.T) {
	repo := newStubCartRepository()
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{ClientKey: "c1", ProductID: "thermo", Quantity: 1}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	view, err := svc.SetQuantity(ctx, SetQuantityCommand{ClientKey: "c1", ProductID: "thermo", Quantity: 5})
	if err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if view.Lines[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", view.Lines[0].Quantity)
	}
}

func TestCartRemoveAbsentProductIsNoop(t *testing.T) {
	repo := newStubCartRepository()
	svc := newTestCartService(t, repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 1}); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	writes := len(repo.replaceLog)

	view, err := svc.RemoveItem(ctx, "c1", "nonexistent")
	if err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("cart should be untouched, got %d lines", len(view.Lines))
	}
	if len(repo.replaceLog) != writes {
		t.Fatal("removing an absent product should not persist anything")
	}
}

func TestCartViewSkipsUnknownProductLines(t *testing.T) {
	repo := newStubCartRepository()
	repo.lines["c1"] = []domain.CartLine{
		{ProductID: "maxx", Quantity: 1},
		{ProductID: "discontinued", Quantity: 4},
	}
	svc := newTestCartService(t, repo)

	view, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected unknown product line to be skipped, got %d lines", len(view.Lines))
	}
	if view.TotalCount != 1 || view.Subtotal != 9700 {
		t.Fatalf("totals must ignore the unknown line, got count=%d subtotal=%d", view.TotalCount, view.Subtotal)
	}
}

func TestCartMutationsSwallowStorageFailures(t *testing.T) {
	repo := newStubCartRepository()
	repo.replaceErr = errors.New("disk on fire")
	var events []string
	svc, err := NewCartService(CartServiceDeps{
		Repository: repo,
		Catalog:    newStubCatalog(),
		Logger: func(_ context.Context, event string, _ map[string]any) {
			events = append(events, event)
		},
	})
	if err != nil {
		t.Fatalf("NewCartService returned error: %v", err)
	}

	view, err := svc.AddItem(context.Background(), AddItemCommand{ClientKey: "c1", ProductID: "maxx", Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem must not surface storage failures, got: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("view must reflect the in-memory mutation, got %d lines", len(view.Lines))
	}
	if len(events) == 0 {
		t.Fatal("expected the persist failure to be logged")
	}
}

func TestCartGetDegradesLoadFailureToEmpty(t *testing.T) {
	repo := newStubCartRepository()
	repo.loadErr = errors.New("backend unavailable")
	svc := newTestCartService(t, repo)

	view, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Get must degrade, got: %v", err)
	}
	if len(view.Lines) != 0 || view.Subtotal != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestCartRequiresClientKey(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepository())
	if _, err := svc.Get(context.Background(), "  "); !errors.Is(err, ErrCartInvalidInput) {
		t.Fatalf("expected ErrCartInvalidInput, got %v", err)
	}
}
