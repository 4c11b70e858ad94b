package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Session not found"}}
	// Gone response
	Gone = Status{Code: http.StatusGone, Message: []string{"Sorry, Session is no longer active"}}
	// KindMismatch response
	KindMismatch = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Session type mismatch"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	TotalItem *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// SessionResponse struct - HTTP response DTO for a single session
	SessionResponse struct {
		SessionID           string          `json:"sessionId"`
		ContentKind         string          `json:"contentKind"`
		CreatedAt           time.Time       `json:"createdAt"`
		AccessURL           string          `json:"accessUrl"`
		IsActive            bool            `json:"isActive"`
		ParticipantCount    int             `json:"participantCount"`
		SourceDeckName      string          `json:"sourceDeckName,omitempty"`
		SourceDeckSessionID string          `json:"sourceDeckSessionId,omitempty"`
		Payload             json.RawMessage `json:"payload,omitempty" swaggertype:"array,object"`
		Participants        []string        `json:"participants,omitempty"`
	}

	// CreateSessionResponse struct - HTTP response DTO for session creation
	CreateSessionResponse struct {
		AccessURL   string          `json:"accessUrl"`
		Session     SessionResponse `json:"session"`
		Overwritten bool            `json:"overwritten"`
		Existing    bool            `json:"existing"`
	}

	// AccessLinkResponse struct - HTTP response DTO for link derivation
	AccessLinkResponse struct {
		SessionID   string `json:"sessionId"`
		ContentKind string `json:"contentKind"`
		AccessURL   string `json:"accessUrl"`
	}

	// JoinSessionResponse struct - HTTP response DTO handed to a joining student
	JoinSessionResponse struct {
		SessionID        string          `json:"sessionId"`
		ContentKind      string          `json:"contentKind"`
		Payload          json.RawMessage `json:"payload" swaggertype:"array,object"`
		ParticipantID    string          `json:"participantId"`
		ParticipantCount int             `json:"participantCount"`
	}

	// DeckGroupResponse struct - HTTP response DTO for sessions grouped by deck
	DeckGroupResponse struct {
		SourceDeckSessionID string            `json:"sourceDeckSessionId"`
		SourceDeckName      string            `json:"sourceDeckName"`
		ActiveCount         int               `json:"activeCount"`
		Sessions            []SessionResponse `json:"sessions"`
	}

	// ParticipantsResponse struct - HTTP response DTO for a roster
	ParticipantsResponse struct {
		SessionID        string   `json:"sessionId"`
		Participants     []string `json:"participants"`
		ParticipantCount int      `json:"participantCount"`
	}
)

func newSessionResponse(summary domain.SessionSummary) SessionResponse {
	return SessionResponse{
		SessionID:           summary.SessionID,
		ContentKind:         string(summary.ContentKind),
		CreatedAt:           summary.CreatedAt,
		AccessURL:           summary.AccessURL,
		IsActive:            summary.IsActive,
		ParticipantCount:    summary.ParticipantCount,
		SourceDeckName:      summary.SourceDeckName,
		SourceDeckSessionID: summary.SourceDeckSessionID,
	}
}

func newSessionDetailResponse(detail domain.SessionDetail) SessionResponse {
	response := newSessionResponse(detail.SessionSummary)
	response.Payload = detail.Payload
	response.Participants = detail.Participants
	return response
}

func newSessionListResponse(details []domain.SessionDetail) []SessionResponse {
	data := make([]SessionResponse, 0, len(details))
	for _, detail := range details {
		data = append(data, newSessionDetailResponse(detail))
	}
	return data
}
