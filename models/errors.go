package models

import "errors"

var (
	// ErrSlotFull is returned when a (date, slot) pair is at capacity.
	ErrSlotFull = errors.New("slot is fully booked")
	// ErrInvalidTransition is returned for a disallowed lifecycle move.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrValidation is returned for malformed booking input.
	ErrValidation = errors.New("invalid booking request")
)
