package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrTrainingNotFound = errors.New("training not found")
)
