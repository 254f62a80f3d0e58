package services

import "testing"

func TestEstimateShippingWithoutAddress(t *testing.T) {
	for _, subtotal := range []int64{0, 1990, 19699, 19700, 50000} {
		if got := EstimateShipping(subtotal, false); got != 0 {
			t.Fatalf("EstimateShipping(%d, false) = %d, want 0", subtotal, got)
		}
	}
}

func TestEstimateShippingThresholdBoundary(t *testing.T) {
	if got := EstimateShipping(FreeShippingThreshold-1, true); got != FlatShippingRate {
		t.Fatalf("EstimateShipping(%d, true) = %d, want %d", FreeShippingThreshold-1, got, FlatShippingRate)
	}
	if got := EstimateShipping(FreeShippingThreshold, true); got != 0 {
		t.Fatalf("EstimateShipping(%d, true) = %d, want 0", FreeShippingThreshold, got)
	}
	if got := EstimateShipping(FreeShippingThreshold+1, true); got != 0 {
		t.Fatalf("EstimateShipping(%d, true) = %d, want 0", FreeShippingThreshold+1, got)
	}
}

func TestEstimateShippingFlatRateBelowThreshold(t *testing.T) {
	if got := EstimateShipping(9700, true); got != 1990 {
		t.Fatalf("EstimateShipping(9700, true) = %d, want 1990", got)
	}
	if got := EstimateShipping(0, true); got != 1990 {
		t.Fatalf("EstimateShipping(0, true) = %d, want 1990", got)
	}
}
