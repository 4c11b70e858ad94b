package output

import (
	"context"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
)

// SessionStore interface - Output port
// Defines the session registry: the sole owner of every StudySession.
// Implementations must be thread-safe for concurrent access, must derive
// AccessURL on every read, and must return detached copies.
// Errors are returned only for storage access failures; an unknown id is
// reported through the zero value (nil, false, empty slice).
type SessionStore interface {
	// Create stores a new active session, replacing any session with the same id.
	// The returned bool reports whether an existing session was overwritten.
	Create(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error)

	// CreateIfAbsent stores a new session only when the id is free.
	// The returned bool reports whether the session was created; when false the
	// existing session is returned untouched.
	CreateIfAbsent(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error)

	// Get retrieves a session by id, or nil if it does not exist.
	Get(ctx context.Context, sessionID string) (*domain.StudySession, error)

	// AddParticipant records a participant once. Returns false for an unknown session.
	// Adding the same participant twice is a no-op that still returns true.
	AddParticipant(ctx context.Context, sessionID, participantID string) (bool, error)

	// ListParticipants returns the roster in join order, empty for an unknown session.
	ListParticipants(ctx context.Context, sessionID string) ([]string, error)

	// Activate marks a session active. Returns false for an unknown session.
	Activate(ctx context.Context, sessionID string) (bool, error)

	// Deactivate marks a session inactive. Returns false for an unknown session.
	Deactivate(ctx context.Context, sessionID string) (bool, error)

	// Delete removes a session permanently. Returns false for an unknown session.
	Delete(ctx context.Context, sessionID string) (bool, error)

	// ListActive returns active sessions ordered by CreatedAt, then SessionID.
	ListActive(ctx context.Context) ([]*domain.StudySession, error)

	// ListAll returns every session ordered by CreatedAt, then SessionID.
	ListAll(ctx context.Context) ([]*domain.StudySession, error)

	// SweepExpired removes sessions created strictly before cutoff and
	// returns how many were removed.
	SweepExpired(ctx context.Context, cutoff time.Time) (int, error)

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
