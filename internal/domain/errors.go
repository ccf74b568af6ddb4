package domain

import "errors"

// Validation failures surfaced to the API layer as-is. None of these are
// retried; unexpected storage errors propagate separately.
var (
	ErrInvalidInterval  = errors.New("start time must be before end time")
	ErrCourtUnavailable = errors.New("court is not available for booking")
	ErrPastDate         = errors.New("booking date cannot be in the past")
	ErrSlotConflict     = errors.New("time slot is already booked")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated     = errors.New("booking already has a rating")
	ErrNotFound         = errors.New("not found")
)
