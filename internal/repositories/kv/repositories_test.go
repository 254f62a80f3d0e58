package kv

import (
	"context"
	"testing"
	"time"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/kv"
)

func TestCartRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCartRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := []domain.CartLine{
		{ProductID: "maxx", Quantity: 2},
		{ProductID: "gold", Quantity: 1},
	}
	if err := repo.Replace(ctx, "client-1", lines); err != nil {
		t.Fatalf("unexpected replace error: %v", err)
	}

	loaded, err := repo.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(loaded))
	}
	if loaded[0] != lines[0] || loaded[1] != lines[1] {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestCartRepositoryLoadAbsentIsEmpty(t *testing.T) {
	repo, err := NewCartRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := repo.Load(context.Background(), "fresh-client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}

func TestCartRepositoryCorruptionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Put(ctx, "carts", "client-1", []byte("{not json")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo, err := NewCartRepository(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := repo.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("corruption must not surface an error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart on corruption, got %d lines", len(lines))
	}
}

func TestCartRepositoryClear(t *testing.T) {
	ctx := context.Background()
	repo, err := NewCartRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Replace(ctx, "client-1", []domain.CartLine{{ProductID: "maxx", Quantity: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Clear(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, err := repo.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestOrderRepositoryPrependKeepsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo, err := NewOrderRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := domain.Order{
		ID:        "GS-20250101-AAAAAA",
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:    domain.OrderStatusConfirmed,
		Lines:     []domain.OrderLine{{ProductID: "maxx", Quantity: 2}},
		Subtotal:  19400,
		Total:     19400,
	}
	second := domain.Order{
		ID:        "GS-20250102-BBBBBB",
		CreatedAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		Status:    domain.OrderStatusConfirmed,
		Lines:     []domain.OrderLine{{ProductID: "gold", Quantity: 1}},
		Subtotal:  11700,
		Shipping:  1990,
		Total:     13690,
	}

	if err := repo.Prepend(ctx, "client-1", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Prepend(ctx, "client-1", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders, err := repo.List(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("expected most-recent-first ordering, got %s then %s", orders[0].ID, orders[1].ID)
	}
	if orders[0].Total != 13690 || orders[0].Shipping != 1990 {
		t.Fatalf("monetary snapshot not preserved: %+v", orders[0])
	}
	if orders[1].Lines[0].ProductID != "maxx" || orders[1].Lines[0].Quantity != 2 {
		t.Fatalf("line snapshot not preserved: %+v", orders[1].Lines)
	}
}

func TestOrderRepositoryListDegradesOnCorruption(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Put(ctx, "orders", "client-1", []byte("???")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo, err := NewOrderRepository(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, err := repo.List(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty list on corruption")
	}
}

func TestOrderRepositoryPrependOverCorruptListStartsFresh(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Put(ctx, "orders", "client-1", []byte("not-a-list")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo, err := NewOrderRepository(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := domain.Order{ID: "GS-20250103-CCCCCC", Status: domain.OrderStatusConfirmed}
	if err := repo.Prepend(ctx, "client-1", order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, err := repo.List(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Fatalf("expected fresh list with one order, got %+v", orders)
	}
}

func TestOrderRepositoryAddressSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewOrderRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := domain.Order{
		ID:     "GS-20250104-DDDDDD",
		Status: domain.OrderStatusConfirmed,
		Address: &domain.Address{
			CEP:      "01001-000",
			Street:   "Praça da Sé",
			District: "Sé",
			City:     "São Paulo",
			State:    "SP",
		},
	}
	if err := repo.Prepend(ctx, "client-1", order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, err := repo.List(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders[0].Address == nil || orders[0].Address.City != "São Paulo" {
		t.Fatalf("address snapshot lost: %+v", orders[0].Address)
	}
}

func TestPreferenceRepositoryLocaleRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPreferenceRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	locale, err := repo.LoadLocale(ctx, "client-1")
	if err != nil || locale != "" {
		t.Fatalf("expected empty locale, got %q err=%v", locale, err)
	}
	if err := repo.SaveLocale(ctx, "client-1", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	locale, err = repo.LoadLocale(ctx, "client-1")
	if err != nil || locale != "en" {
		t.Fatalf("expected en, got %q err=%v", locale, err)
	}
}

func TestAttributionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewAttributionRepository(kv.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := domain.Attribution{Source: "instagram", Campaign: "verao"}
	if err := repo.Save(ctx, "client-1", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := repo.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded != params {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
