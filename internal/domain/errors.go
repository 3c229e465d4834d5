package domain

import "errors"

// Error taxonomy surfaced by every operation. Handlers map these onto HTTP
// status codes; nothing below this layer retries or swallows them.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
)
