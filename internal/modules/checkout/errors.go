package checkout

import "errors"

var (
	// ErrCartEmpty is returned when checkout is attempted on an empty cart.
	// Callers are expected to catch it and render the validation message.
	ErrCartEmpty = errors.New("cart is empty")
)
