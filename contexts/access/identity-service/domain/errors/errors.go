package errors

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUserNotFound    = errors.New("user not found")
)
