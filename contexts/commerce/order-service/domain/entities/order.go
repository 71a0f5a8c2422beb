package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle. PENDING marks the open cart.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPlaced    Status = "PLACED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus maps a raw string to a known Status.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusPending, StatusPlaced, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// LineItem is one product position inside an order. UnitPrice is the
// catalog price captured when the item first entered the cart and never
// changes afterwards.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is a cart while Status is PENDING and an immutable record of a
// purchase afterwards.
type Order struct {
	OrderID     string          `json:"order_id"`
	Owner       string          `json:"owner"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []LineItem      `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Active reports whether the order is still an open cart.
func (o Order) Active() bool {
	return o.Status == StatusPending
}

// FindItem returns the index of the line item for productID.
func (o Order) FindItem(productID string) (int, bool) {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return i, true
		}
	}
	return -1, false
}

// RecomputeTotal derives TotalAmount from the current line items. The
// total is never stored independently of the items that produced it.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalAmount = total
}

// Clone returns a deep copy so callers cannot alias the items slice.
func (o Order) Clone() Order {
	clone := o
	clone.Items = make([]LineItem, len(o.Items))
	copy(clone.Items, o.Items)
	return clone
}
