package order

import "errors"

var (
	ErrNotFound         = errors.New("order not found")
	ErrUnauthorized     = errors.New("authentication required")
	ErrForbidden        = errors.New("forbidden")
	ErrBusinessNotFound = errors.New("business user not found")
	ErrInvalidDetail    = errors.New("offer detail not found")
	ErrInvalidStatus    = errors.New("invalid order status")
)
