package domain

import "testing"

func TestOrderStatusOrdinalFollowsChain(t *testing.T) {
	for i, status := range OrderStatusChain {
		if status.Ordinal() != i {
			t.Fatalf("expected ordinal %d for %q, got %d", i, status, status.Ordinal())
		}
	}
	if OrderStatus("canceled").Ordinal() != -1 {
		t.Fatalf("expected -1 for unknown status")
	}
}

func TestOrderStatusReached(t *testing.T) {
	if !OrderStatusShipped.Reached(OrderStatusConfirmed) {
		t.Fatalf("shipped should have reached confirmed")
	}
	if !OrderStatusShipped.Reached(OrderStatusShipped) {
		t.Fatalf("shipped should have reached itself")
	}
	if OrderStatusShipped.Reached(OrderStatusDelivered) {
		t.Fatalf("shipped must not have reached delivered")
	}
	if OrderStatusConfirmed.Reached(OrderStatus("bogus")) {
		t.Fatalf("unknown milestone must never be reached")
	}
}

func TestOrderCloneLinesDoesNotAlias(t *testing.T) {
	order := Order{Lines: []OrderLine{{ProductID: "maxx", Quantity: 2}}}
	dup := order.CloneLines()
	dup[0].Quantity = 99
	if order.Lines[0].Quantity != 2 {
		t.Fatalf("mutating the clone leaked into the order")
	}
}
