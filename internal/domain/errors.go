package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidQuantity rejects quantity values below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidStatus rejects unknown order status values.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition rejects illegal order status transitions.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)
