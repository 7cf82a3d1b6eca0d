package review

import "errors"

var (
	ErrNotFound     = errors.New("review not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError carries field-level messages for a rejected review payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid review data"
}
