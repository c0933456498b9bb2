package book

import "errors"

// Caller-visible precondition failures. None of these leave the book in a
// partially mutated state: validation runs before any state change.
var (
	ErrInvalidPrice    = errors.New("price outside book range")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownOrder    = errors.New("unknown order id")
	ErrDuplicateOrder  = errors.New("duplicate order id")
	ErrUnknownBackend  = errors.New("unknown index backend")
)
