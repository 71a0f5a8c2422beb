package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is the current list price; carts snapshot
// it at add time and never read it back afterwards.
type Product struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
