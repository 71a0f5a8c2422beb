package errors

import "errors"

var (
	// ErrInvalidQuantity is returned when an add or update carries a
	// non-positive quantity where a positive one is required.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidProductRef is returned when a product identifier is empty.
	ErrInvalidProductRef = errors.New("product id is required")

	// ErrProductNotFound is returned when the referenced product does not
	// exist in the catalog at the time of the add.
	ErrProductNotFound = errors.New("product not found")

	// ErrCartNotFound is returned by cart mutations that require an
	// existing open cart for the owner.
	ErrCartNotFound = errors.New("active cart not found")

	// ErrItemNotFound is returned when a cart mutation targets a product
	// that is not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrEmptyCart is returned when checkout is attempted on a cart with
	// no line items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderNotFound is returned when an order lookup or status update
	// references an unknown order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned when a status update carries a value
	// outside the known lifecycle set.
	ErrInvalidStatus = errors.New("invalid order status")
)
