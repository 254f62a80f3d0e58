package domain

// OrderStatus enumerates the fulfilment states of an order. The progression
// is linear and forward-only; no component in this system advances it — every
// order is created in OrderStatusConfirmed and a future fulfilment backend is
// expected to be the sole writer.
type OrderStatus string

const (
	// OrderStatusConfirmed indicates the order was accepted at checkout.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPicking indicates the order is being picked and packed.
	OrderStatusPicking OrderStatus = "picking"
	// OrderStatusShipped indicates the order was handed to the carrier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatusChain lists all statuses in fulfilment order.
var OrderStatusChain = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusPicking,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Ordinal returns the position of the status within the chain, or -1 when the
// status is unknown.
func (s OrderStatus) Ordinal() int {
	for i, status := range OrderStatusChain {
		if status == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether the status belongs to the chain.
func (s OrderStatus) IsValid() bool {
	return s.Ordinal() >= 0
}

// Reached reports whether the given milestone is at or before the current
// status, which is what a fulfilment timeline renders as "complete".
func (s OrderStatus) Reached(milestone OrderStatus) bool {
	current := s.Ordinal()
	target := milestone.Ordinal()
	if current < 0 || target < 0 {
		return false
	}
	return target <= current
}
