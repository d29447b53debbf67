package domain

import "errors"

// Validation errors: malformed user input, always recoverable by re-prompting.
var (
	ErrTitleEmpty      = errors.New("title must not be empty")
	ErrDateTimeInPast  = errors.New("date and time must be in the future")
	ErrInvalidCapacity = errors.New("capacity must be zero or a positive number")
)

// Business-rule conflicts and lookups: surfaced to the user, never logged as errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrAlreadyJoined = errors.New("already booked on this event")
	ErrEventFull     = errors.New("no free seats left")
	ErrNotJoined     = errors.New("not booked on this event")
	ErrNotCreator    = errors.New("only the creator can do this")
)
