package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrLocationNotFound = errors.New("location not found")
)
