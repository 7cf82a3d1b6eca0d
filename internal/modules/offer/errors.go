package offer

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("offer not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
)

// DetailValidationError carries per-index field errors for a nested details
// payload, e.g. {"1": {"offer_type": "This field is required."}}.
type DetailValidationError struct {
	Details map[string]map[string]string
}

func (e *DetailValidationError) Error() string {
	return fmt.Sprintf("invalid offer details (%d bad entries)", len(e.Details))
}
