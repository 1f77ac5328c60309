package app

import "errors"

var (
	// repository errors
	ErrNotFound = errors.New("not found")

	// access errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// request errors
	ErrValidation = errors.New("validation error")

	// external collaborator errors
	ErrUpstream = errors.New("upstream failure")
)
