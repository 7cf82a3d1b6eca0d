package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidUserType    = errors.New("invalid user type")
)
