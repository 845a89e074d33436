package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoteNotFound   = errors.New("note not found")
)
