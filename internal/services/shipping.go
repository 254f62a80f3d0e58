package services

// Shipping constants in centavos. Orders at or above the threshold ship free;
// below it a flat rate applies once a delivery address is known.
const (
	FreeShippingThreshold int64 = 19700
	FlatShippingRate      int64 = 1990
)

// EstimateShipping maps a cart subtotal and address knowledge to a shipping
// fee. No fee is shown before an address has been resolved. Deterministic and
// side-effect free.
func EstimateShipping(subtotal int64, addressKnown bool) int64 {
	if !addressKnown {
		return 0
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingRate
}
