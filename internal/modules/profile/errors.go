package profile

import "errors"

var (
	ErrNotFound    = errors.New("profile not found")
	ErrForbidden   = errors.New("not the profile owner")
	ErrInvalidType = errors.New("invalid profile type")
)
