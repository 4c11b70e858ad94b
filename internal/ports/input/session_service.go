package input

import (
	"context"

	"github.com/GityImran/ideation-lab/internal/domain"
)

// SessionService interface - Input port (use case)
// Defines what the application can do with study sessions
type SessionService interface {
	// CreateSession mints (or replaces) a session and reports its access URL
	CreateSession(ctx context.Context, request domain.CreateSessionRequest) (*domain.CreateSessionResponse, error)

	// JoinSession registers a new participant and hands back the session content.
	// Returns ErrSessionNotFound, ErrSessionInactive or ErrContentKindMismatch.
	JoinSession(ctx context.Context, sessionID string, kind domain.ContentKind) (*domain.JoinSessionResult, error)

	// GetSession returns one session with its roster
	GetSession(ctx context.Context, sessionID string) (*domain.SessionDetail, error)

	// ListSessions returns sessions for the presenter dashboard
	ListSessions(ctx context.Context, query domain.QuerySessionsRequest) ([]domain.SessionDetail, error)

	// GroupSessionsByDeck groups sessions by the slide deck they were generated from
	GroupSessionsByDeck(ctx context.Context, query domain.QuerySessionsRequest) ([]domain.DeckGroup, error)

	// ListParticipants returns the roster of a session, empty for unknown ids
	ListParticipants(ctx context.Context, sessionID string) ([]string, error)

	// ReactivateSession re-opens a session
	ReactivateSession(ctx context.Context, sessionID string) error

	// DeactivateSession closes a session while keeping it listed
	DeactivateSession(ctx context.Context, sessionID string) error

	// DeleteSession removes a session permanently
	DeleteSession(ctx context.Context, sessionID string) error

	// AccessLink derives the student URL without touching the registry
	AccessLink(sessionID string, kind domain.ContentKind) (string, error)

	// HealthCheck verifies the session store is reachable
	HealthCheck(ctx context.Context) error
}
