package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username, password or role")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidToken       = errors.New("invalid token")
)
