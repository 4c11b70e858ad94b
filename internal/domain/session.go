package domain

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// ContentKind type
type ContentKind string

const (
	// ContentKindFlashcards const
	ContentKindFlashcards ContentKind = "flashcards"
	// ContentKindQuiz const
	ContentKindQuiz ContentKind = "quiz"
)

// IsValid reports whether the kind is one of the supported study formats
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentKindFlashcards, ContentKindQuiz:
		return true
	}
	return false
}

// ParseContentKind converts raw input into a ContentKind
func ParseContentKind(raw string) (ContentKind, error) {
	kind := ContentKind(strings.TrimSpace(raw))
	if !kind.IsValid() {
		return "", ErrInvalidContentKind
	}
	return kind, nil
}

const (
	// DefaultBaseURL is used when no public base address is configured
	DefaultBaseURL = "http://localhost:3000"
	// DefaultRetention is how long a session lives before the sweep removes it
	DefaultRetention = 24 * time.Hour
	// DefaultSweepSchedule runs the expiry sweep once an hour
	DefaultSweepSchedule = "@hourly"
)

// StudySession represents a shareable flashcards/quiz session handed out to students
type StudySession struct {
	SessionID           string          // caller supplied key
	ContentKind         ContentKind     // immutable after creation
	Payload             json.RawMessage // opaque generated content
	CreatedAt           time.Time       // drives expiry
	AccessURL           string          // derived from base URL, id and kind
	IsActive            bool            // toggled by the presenter dashboard
	Participants        []string        // join order, no duplicates
	SourceDeckName      string          // optional deck metadata
	SourceDeckSessionID string          // optional deck grouping key
}

// NewSession carries the caller supplied fields for creating a StudySession
type NewSession struct {
	SessionID           string
	ContentKind         ContentKind
	Payload             json.RawMessage
	SourceDeckName      string
	SourceDeckSessionID string
}

// NewStudySession builds a fresh active session with an empty roster
func NewStudySession(req NewSession, baseURL string, createdAt time.Time) *StudySession {
	return &StudySession{
		SessionID:           req.SessionID,
		ContentKind:         req.ContentKind,
		Payload:             cloneRaw(req.Payload),
		CreatedAt:           createdAt,
		AccessURL:           BuildAccessURL(baseURL, req.SessionID, req.ContentKind),
		IsActive:            true,
		Participants:        make([]string, 0),
		SourceDeckName:      req.SourceDeckName,
		SourceDeckSessionID: req.SourceDeckSessionID,
	}
}

// BuildAccessURL derives the student link: <base>/student/<sessionId>/<kind>
func BuildAccessURL(baseURL, sessionID string, kind ContentKind) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/student/" + sessionID + "/" + string(kind)
}

// HasConsistentAccessURL checks the URL still ends with /<sessionId>/<kind>
func (s *StudySession) HasConsistentAccessURL() bool {
	return strings.HasSuffix(s.AccessURL, "/"+s.SessionID+"/"+string(s.ContentKind))
}

// CreatedBefore reports whether the session was created strictly before cutoff
func (s *StudySession) CreatedBefore(cutoff time.Time) bool {
	return s.CreatedAt.Before(cutoff)
}

// HasParticipant reports whether participantID already joined
func (s *StudySession) HasParticipant(participantID string) bool {
	for _, p := range s.Participants {
		if p == participantID {
			return true
		}
	}
	return false
}

// ParticipantCount returns the roster size
func (s *StudySession) ParticipantCount() int {
	return len(s.Participants)
}

// Snapshot returns a deep copy whose AccessURL is re-derived from baseURL.
// Callers may freely mutate the copy.
func (s *StudySession) Snapshot(baseURL string) *StudySession {
	participants := make([]string, len(s.Participants))
	copy(participants, s.Participants)

	return &StudySession{
		SessionID:           s.SessionID,
		ContentKind:         s.ContentKind,
		Payload:             cloneRaw(s.Payload),
		CreatedAt:           s.CreatedAt,
		AccessURL:           BuildAccessURL(baseURL, s.SessionID, s.ContentKind),
		IsActive:            s.IsActive,
		Participants:        participants,
		SourceDeckName:      s.SourceDeckName,
		SourceDeckSessionID: s.SourceDeckSessionID,
	}
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

// SortSessions orders sessions by CreatedAt, then SessionID.
func SortSessions(sessions []*StudySession) {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
		}
		return sessions[i].SessionID < sessions[j].SessionID
	})
}
