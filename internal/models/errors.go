package models

import "errors"

// Domain errors. Services wrap these with %w and context; handlers translate
// them to HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("account not found")
	ErrConflict          = errors.New("already exists")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStore             = errors.New("store error")
)
