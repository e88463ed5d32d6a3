package models

import "errors"

// Sentinel errors shared by repositories, services and handlers.
// Wrap with fmt.Errorf("...: %w", Err...) and match with errors.Is.
var (
	// ErrNotAuthenticated indicates the request carries no owner identity.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound indicates a missing service or booking record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAmount indicates a non-positive or non-numeric base amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRating indicates a rating outside the 0-5 integer range.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidState indicates an operation not allowed in the booking's
	// current status, e.g. reviewing a booking that is not completed.
	ErrInvalidState = errors.New("invalid state")

	// ErrForbidden indicates the requester does not own the booking.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a booking id collision on create.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable indicates the backing store could not be reached.
	// Callers must surface it distinctly from an empty result.
	ErrStoreUnavailable = errors.New("store unavailable")
)
