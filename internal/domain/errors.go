package domain

import "errors"

var (
	// ErrDataUnavailable wraps I/O failures of the question or preference stores.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrEmptySelection is returned when no valid question matches a chapter/id filter.
	ErrEmptySelection = errors.New("no questions for the selected chapter")
	// ErrNoSelection is returned when advancing before an option was chosen.
	ErrNoSelection = errors.New("no option selected for the current question")
	// ErrSessionNotStarted is returned when a tracker is used before Start.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionCompleted is returned when a finished tracker receives more input.
	ErrSessionCompleted = errors.New("quiz session already completed")
	// ErrOptionOutOfRange indicates a selected index outside A..E.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrInvalidPayload indicates a handoff string could not be decoded.
	ErrInvalidPayload = errors.New("invalid payload")
)
