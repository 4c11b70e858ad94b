package domain

import "errors"

// Session error types

var (
	// ErrSessionNotFound indicates the session id is unknown or already expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionInactive indicates the presenter has deactivated the session
	ErrSessionInactive = errors.New("session is no longer active")

	// ErrContentKindMismatch indicates the requested kind differs from the session's kind
	ErrContentKindMismatch = errors.New("session content kind mismatch")

	// ErrInvalidContentKind indicates a kind outside of flashcards/quiz
	ErrInvalidContentKind = errors.New("invalid content kind")

	// ErrMissingSessionID indicates an empty session id
	ErrMissingSessionID = errors.New("missing session id")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
