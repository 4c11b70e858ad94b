package domain

import (
	"encoding/json"
	"time"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// CreateSessionRequest struct - Domain request DTO
	CreateSessionRequest struct {
		SessionID           string
		ContentKind         ContentKind
		Payload             json.RawMessage
		SourceDeckName      string
		SourceDeckSessionID string
		// IfAbsent keeps an existing session with the same id instead of replacing it
		IfAbsent bool
	}

	// QuerySessionsRequest struct - Domain query request DTO
	QuerySessionsRequest struct {
		ActiveOnly bool
		Search     string
	}

	// SessionSummary struct - what the creation endpoint reports back
	SessionSummary struct {
		SessionID           string
		ContentKind         ContentKind
		CreatedAt           time.Time
		AccessURL           string
		IsActive            bool
		ParticipantCount    int
		SourceDeckName      string
		SourceDeckSessionID string
	}

	// SessionDetail struct - summary plus content and roster, used by listings
	SessionDetail struct {
		SessionSummary
		Payload      json.RawMessage
		Participants []string
	}

	// CreateSessionResponse struct - Domain response DTO
	CreateSessionResponse struct {
		AccessURL   string
		Session     SessionSummary
		Overwritten bool
		Existing    bool
	}

	// JoinSessionResult struct - content handed to a joining student
	JoinSessionResult struct {
		SessionID        string
		ContentKind      ContentKind
		Payload          json.RawMessage
		ParticipantID    string
		ParticipantCount int
	}

	// DeckGroup struct - sessions minted from the same slide deck
	DeckGroup struct {
		SourceDeckSessionID string
		SourceDeckName      string
		ActiveCount         int
		Sessions            []SessionDetail
	}
)

// Summarize converts a session into its summary view
func Summarize(s *StudySession) SessionSummary {
	return SessionSummary{
		SessionID:           s.SessionID,
		ContentKind:         s.ContentKind,
		CreatedAt:           s.CreatedAt,
		AccessURL:           s.AccessURL,
		IsActive:            s.IsActive,
		ParticipantCount:    s.ParticipantCount(),
		SourceDeckName:      s.SourceDeckName,
		SourceDeckSessionID: s.SourceDeckSessionID,
	}
}

// Detail converts a session into its detailed view
func Detail(s *StudySession) SessionDetail {
	participants := s.Participants
	if participants == nil {
		participants = []string{}
	}
	return SessionDetail{
		SessionSummary: Summarize(s),
		Payload:        s.Payload,
		Participants:   participants,
	}
}
