package application

import (
	"context"
	"sort"
	"strings"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	unknownDeckKey  = "unknown"
	unknownDeckName = "Unknown Presentation"
)

// SessionService struct - Application service implementing session use cases
type SessionService struct {
	store            output.SessionStore
	baseURL          string
	newParticipantID func() string
}

// NewSessionService func - Creates new session service
func NewSessionService(store output.SessionStore, baseURL string) *SessionService {
	return &SessionService{
		store:            store,
		baseURL:          baseURL,
		newParticipantID: newParticipantID,
	}
}

func newParticipantID() string {
	return "participant_" + uuid.NewString()
}

// CreateSession func - Use case: mint a shareable session
func (s *SessionService) CreateSession(ctx context.Context, request domain.CreateSessionRequest) (*domain.CreateSessionResponse, error) {
	if strings.TrimSpace(request.SessionID) == "" {
		return nil, domain.ErrMissingSessionID
	}
	if !request.ContentKind.IsValid() {
		return nil, domain.ErrInvalidContentKind
	}

	req := domain.NewSession{
		SessionID:           request.SessionID,
		ContentKind:         request.ContentKind,
		Payload:             request.Payload,
		SourceDeckName:      request.SourceDeckName,
		SourceDeckSessionID: request.SourceDeckSessionID,
	}
	if request.IfAbsent {
		return s.createIfAbsent(ctx, req)
	}

	session, overwritten, err := s.store.Create(ctx, req)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	if overwritten {
		logrus.WithFields(logrus.Fields{
			"sessionId":   session.SessionID,
			"contentKind": session.ContentKind,
		}).Warn("Session id reused, previous session was replaced")
	} else {
		logrus.WithFields(logrus.Fields{
			"sessionId":   session.SessionID,
			"contentKind": session.ContentKind,
		}).Info("Session created")
	}

	return &domain.CreateSessionResponse{
		AccessURL:   session.AccessURL,
		Session:     domain.Summarize(session),
		Overwritten: overwritten,
	}, nil
}

// createIfAbsent returns the stored session untouched when the id is already taken.
func (s *SessionService) createIfAbsent(ctx context.Context, req domain.NewSession) (*domain.CreateSessionResponse, error) {
	session, created, err := s.store.CreateIfAbsent(ctx, req)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if created {
		logrus.WithFields(logrus.Fields{
			"sessionId":   session.SessionID,
			"contentKind": session.ContentKind,
		}).Info("Session created")
	}
	return &domain.CreateSessionResponse{
		AccessURL: session.AccessURL,
		Session:   domain.Summarize(session),
		Existing:  !created,
	}, nil
}

// JoinSession func - Use case: a student opens the shared link
func (s *SessionService) JoinSession(ctx context.Context, sessionID string, kind domain.ContentKind) (*domain.JoinSessionResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !session.IsActive {
		return nil, domain.ErrSessionInactive
	}
	if session.ContentKind != kind {
		return nil, domain.ErrContentKindMismatch
	}

	participantID := s.newParticipantID()
	added, err := s.store.AddParticipant(ctx, sessionID, participantID)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if !added {
		// deleted or swept between the lookup and the join
		return nil, domain.ErrSessionNotFound
	}

	participants, err := s.store.ListParticipants(ctx, sessionID)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	logrus.Debugf("Participant %s joined session %s", participantID, sessionID)
	return &domain.JoinSessionResult{
		SessionID:        session.SessionID,
		ContentKind:      session.ContentKind,
		Payload:          session.Payload,
		ParticipantID:    participantID,
		ParticipantCount: len(participants),
	}, nil
}

// GetSession func - Use case: inspect one session
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domain.SessionDetail, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	detail := domain.Detail(session)
	return &detail, nil
}

// ListSessions func - Use case: dashboard listing with optional search
func (s *SessionService) ListSessions(ctx context.Context, query domain.QuerySessionsRequest) ([]domain.SessionDetail, error) {
	var (
		sessions []*domain.StudySession
		err      error
	)
	if query.ActiveOnly {
		sessions, err = s.store.ListActive(ctx)
	} else {
		sessions, err = s.store.ListAll(ctx)
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	result := make([]domain.SessionDetail, 0, len(sessions))
	for _, session := range sessions {
		if search != "" && !matchesSearch(session, search) {
			continue
		}
		result = append(result, domain.Detail(session))
	}
	return result, nil
}

func matchesSearch(session *domain.StudySession, search string) bool {
	return strings.Contains(strings.ToLower(session.SessionID), search) ||
		strings.Contains(strings.ToLower(string(session.ContentKind)), search) ||
		strings.Contains(strings.ToLower(session.SourceDeckName), search)
}

// GroupSessionsByDeck func - Use case: dashboard view grouped by source deck
func (s *SessionService) GroupSessionsByDeck(ctx context.Context, query domain.QuerySessionsRequest) ([]domain.DeckGroup, error) {
	sessions, err := s.ListSessions(ctx, query)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*domain.DeckGroup)
	for _, session := range sessions {
		key := session.SourceDeckSessionID
		if key == "" {
			key = unknownDeckKey
		}
		group, ok := groups[key]
		if !ok {
			group = &domain.DeckGroup{
				SourceDeckSessionID: key,
				SourceDeckName:      unknownDeckName,
				Sessions:            make([]domain.SessionDetail, 0),
			}
			groups[key] = group
		}
		if group.SourceDeckName == unknownDeckName && session.SourceDeckName != "" {
			group.SourceDeckName = session.SourceDeckName
		}
		if session.IsActive {
			group.ActiveCount++
		}
		group.Sessions = append(group.Sessions, session)
	}

	result := make([]domain.DeckGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SourceDeckSessionID < result[j].SourceDeckSessionID
	})
	return result, nil
}

// ListParticipants func - Use case: roster of a session
func (s *SessionService) ListParticipants(ctx context.Context, sessionID string) ([]string, error) {
	participants, err := s.store.ListParticipants(ctx, sessionID)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return participants, nil
}

// ReactivateSession func - Use case: re-open a session
func (s *SessionService) ReactivateSession(ctx context.Context, sessionID string) error {
	return s.toggle(ctx, sessionID, s.store.Activate, "reactivated")
}

// DeactivateSession func - Use case: close a session but keep it listed
func (s *SessionService) DeactivateSession(ctx context.Context, sessionID string) error {
	return s.toggle(ctx, sessionID, s.store.Deactivate, "deactivated")
}

// DeleteSession func - Use case: discard a session for good
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.toggle(ctx, sessionID, s.store.Delete, "deleted")
}

func (s *SessionService) toggle(ctx context.Context, sessionID string, op func(context.Context, string) (bool, error), action string) error {
	ok, err := op(ctx, sessionID)
	if err != nil {
		logrus.Errorln(err)
		return err
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	logrus.Infof("Session %s %s", sessionID, action)
	return nil
}

// AccessLink func - Use case: derive the student link for a session id and kind
func (s *SessionService) AccessLink(sessionID string, kind domain.ContentKind) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", domain.ErrMissingSessionID
	}
	if !kind.IsValid() {
		return "", domain.ErrInvalidContentKind
	}
	return domain.BuildAccessURL(s.baseURL, sessionID, kind), nil
}

// HealthCheck func - Use case: readiness check
func (s *SessionService) HealthCheck(ctx context.Context) error {
	return s.store.Ping(ctx)
}
