package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrProjectNotFound = errors.New("project not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrInviteNotFound  = errors.New("invite not found")
	ErrNotMember       = errors.New("not a project member")
	ErrAdminRequired   = errors.New("admin role required")
	ErrAuthorOrAdmin   = errors.New("author or admin required")
	ErrEmailMismatch   = errors.New("invite email mismatch")
	ErrLastAdmin       = errors.New("project must keep at least one admin")
	ErrConflict        = errors.New("conflict")
	ErrCodeCollision   = errors.New("invite code already in use")
)
