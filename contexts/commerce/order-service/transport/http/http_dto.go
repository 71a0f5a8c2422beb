package httptransport

import "time"

// AddItemRequest is the body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest replaces the quantity of one cart line.
type UpdateItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateStatusRequest is the administrative status override body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// LineItemResponse carries one order line; the unit price is the
// snapshot taken when the item entered the cart.
type LineItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type OrderResponse struct {
	OrderID     string             `json:"order_id"`
	Owner       string             `json:"owner"`
	Status      string             `json:"status"`
	TotalAmount string             `json:"total_amount"`
	Items       []LineItemResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
