package httptransport

import "time"

// ProductRequest is the body for create/update. Price travels as a decimal
// string to avoid float rounding on the wire.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

type ProductResponse struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
