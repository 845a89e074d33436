package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrMotdNotFound    = errors.New("motd not found")
	ErrTargetNotMember = errors.New("target user not in project")
)
