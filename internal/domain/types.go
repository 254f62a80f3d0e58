package domain

import (
	"time"
)

// Product describes a catalog entry. Prices are stored in centavos so that
// repeated additions never accumulate floating point drift.
type Product struct {
	ID           string
	Name         string
	Tagline      string
	Description  string
	Price        int64
	OldPrice     int64
	Installments string
	Image        string
	Gallery      []string
}

// CartLine stores a single product entry within a cart. The cart holds at
// most one line per product id.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Cart aggregates the mutable shopping state for one client.
type Cart struct {
	ClientKey string
	Lines     []CartLine
	UpdatedAt time.Time
}

// Address is the normalised result of a postal-code lookup. It is treated as
// opaque pass-through data once obtained.
type Address struct {
	CEP        string
	Street     string
	Complement string
	District   string
	City       string
	State      string
	IBGE       string
	DDD        string
}

// Attribution carries the campaign parameters captured from the first page
// load and propagated through the session.
type Attribution struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

// IsZero reports whether no attribution parameter is set.
func (a Attribution) IsZero() bool {
	return a == Attribution{}
}

// OrderLine is an immutable snapshot of a cart line at checkout time.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// Order is the frozen record created at checkout submission. It is never
// mutated or deleted after creation.
type Order struct {
	ID        string
	CreatedAt time.Time
	Status    OrderStatus
	Lines     []OrderLine
	Subtotal  int64
	Shipping  int64
	Total     int64
	Address   *Address
}

// CloneLines returns a deep copy of the order lines so callers can hand out
// snapshots without aliasing stored state.
func (o Order) CloneLines() []OrderLine {
	if len(o.Lines) == 0 {
		return []OrderLine{}
	}
	dup := make([]OrderLine, len(o.Lines))
	copy(dup, o.Lines)
	return dup
}
