package apperrors

import "errors"

// Sentinel errors for the typed failure modes surfaced to callers.
// Delivery failures are never represented here: they are absorbed into the
// message status and only persistence problems propagate as plain errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("version conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)
