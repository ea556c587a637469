package models

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the booking error taxonomy. Handlers map these to HTTP
// statuses; use errors.Is against the sentinels.
var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor not permitted")
	ErrDataUnavailable   = errors.New("data store unavailable")
	ErrNotFound          = errors.New("not found")
)

// ValidationErrorf wraps ErrValidation with detail.
func ValidationErrorf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, a...)...)
}

// ConflictErrorf wraps ErrConflict with detail.
func ConflictErrorf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, a...)...)
}

// TransitionError reports a transition not present in the lifecycle table.
func TransitionError(from, to BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// DataError wraps a store failure so callers can distinguish it from domain
// rejections. A missing record is not an outage; ErrNotFound passes through
// so handlers keep the 404 mapping.
func DataError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrDataUnavailable, op, err)
}
