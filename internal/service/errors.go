package service

import "errors"

// Authorization errors are raised before any repository write so a denied
// operation leaves no rows behind.
var (
	ErrAdminOnly           = errors.New("only admins can perform this action")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrNotFound            = errors.New("not found")
	ErrCannotDeleteFounder = errors.New("cannot delete founder account")
	ErrFounderRoleFixed    = errors.New("founder role cannot be reassigned")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrNoMembers           = errors.New("no members to split among")
)
