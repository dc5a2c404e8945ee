package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidItem     = errors.New("cart item id is required")

	// -- Session --
	ErrNoSession = errors.New("cart session id is required")
)
