package domain

import "errors"

// Sentinel errors for the sweet domain. Use errors.Is() to check these.
var (
	// ErrSweetNotFound indicates the requested sweet does not exist.
	ErrSweetNotFound = errors.New("sweet not found")

	// ErrSweetAlreadyExists indicates a sweet with the same unique constraint already exists.
	ErrSweetAlreadyExists = errors.New("sweet already exists")

	// ErrInvalidSweetName indicates the sweet name violates domain constraints.
	ErrInvalidSweetName = errors.New("invalid sweet name")

	// ErrInvalidSweet indicates the sweet fields violate domain constraints.
	ErrInvalidSweet = errors.New("invalid sweet")

	// ErrInvalidQuantity indicates a purchase or restock amount that is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInsufficientStock indicates a purchase amount exceeding the quantity on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)
