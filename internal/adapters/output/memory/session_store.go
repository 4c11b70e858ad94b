package memory

import (
	"context"
	"sync"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// A single RWMutex linearizes every mutation, so participant joins are atomic
// read-modify-writes and a sweep never races a lookup.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.StudySession
	baseURL  string
	now      func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store.
// baseURL: public address students use to reach the app
func NewMemorySessionStore(baseURL string) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*domain.StudySession),
		baseURL:  baseURL,
		now:      time.Now,
	}
}

// Create stores a new session, overwriting any session with the same id.
func (m *MemorySessionStore) Create(_ context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	session := domain.NewStudySession(req, m.baseURL, m.now())

	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.sessions[req.SessionID]
	m.sessions[req.SessionID] = session
	return session.Snapshot(m.baseURL), existed, nil
}

// CreateIfAbsent stores a new session only if the id is not taken.
func (m *MemorySessionStore) CreateIfAbsent(_ context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[req.SessionID]; ok {
		return existing.Snapshot(m.baseURL), false, nil
	}

	session := domain.NewStudySession(req, m.baseURL, m.now())
	m.sessions[req.SessionID] = session
	return session.Snapshot(m.baseURL), true, nil
}

// Get retrieves a session by id. Returns nil if the session does not exist.
func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*domain.StudySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return session.Snapshot(m.baseURL), nil
}

// AddParticipant appends participantID to the roster unless already present.
func (m *MemorySessionStore) AddParticipant(_ context.Context, sessionID, participantID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if !session.HasParticipant(participantID) {
		session.Participants = append(session.Participants, participantID)
	}
	return true, nil
}

// ListParticipants returns a copy of the roster in join order.
func (m *MemorySessionStore) ListParticipants(_ context.Context, sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return []string{}, nil
	}
	participants := make([]string, len(session.Participants))
	copy(participants, session.Participants)
	return participants, nil
}

// Activate marks a session active.
func (m *MemorySessionStore) Activate(_ context.Context, sessionID string) (bool, error) {
	return m.setActive(sessionID, true), nil
}

// Deactivate marks a session inactive.
func (m *MemorySessionStore) Deactivate(_ context.Context, sessionID string) (bool, error) {
	return m.setActive(sessionID, false), nil
}

func (m *MemorySessionStore) setActive(sessionID string, active bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return false
	}
	session.IsActive = active
	return true
}

// Delete removes a session permanently.
func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(m.sessions, sessionID)
	return true, nil
}

// ListActive returns snapshots of every active session.
func (m *MemorySessionStore) ListActive(_ context.Context) ([]*domain.StudySession, error) {
	return m.list(true), nil
}

// ListAll returns snapshots of every session.
func (m *MemorySessionStore) ListAll(_ context.Context) ([]*domain.StudySession, error) {
	return m.list(false), nil
}

func (m *MemorySessionStore) list(activeOnly bool) []*domain.StudySession {
	m.mu.RLock()
	result := make([]*domain.StudySession, 0, len(m.sessions))
	for _, session := range m.sessions {
		if activeOnly && !session.IsActive {
			continue
		}
		result = append(result, session.Snapshot(m.baseURL))
	}
	m.mu.RUnlock()

	domain.SortSessions(result)
	return result
}

// SweepExpired removes sessions created before cutoff.
func (m *MemorySessionStore) SweepExpired(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.CreatedBefore(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Ping always succeeds for the in-memory store.
func (m *MemorySessionStore) Ping(_ context.Context) error {
	return nil
}

// Close drops every session.
func (m *MemorySessionStore) Close() error {
	m.mu.Lock()
	m.sessions = make(map[string]*domain.StudySession)
	m.mu.Unlock()
	return nil
}
