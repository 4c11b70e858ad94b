package http

import "encoding/json"

type (
	// CreateSessionRequest struct - HTTP request DTO
	CreateSessionRequest struct {
		SessionID           string          `json:"sessionId" validate:"required,max=255" form:"sessionId"`
		ContentKind         string          `json:"contentKind" validate:"required,contentkind" form:"contentKind"`
		Payload             json.RawMessage `json:"payload" swaggertype:"array,object"`
		SourceDeckName      string          `json:"sourceDeckName" validate:"omitempty,max=255" form:"sourceDeckName"`
		SourceDeckSessionID string          `json:"sourceDeckSessionId" validate:"omitempty,max=255" form:"sourceDeckSessionId"`
		IfAbsent            bool            `json:"ifAbsent" form:"ifAbsent"`
	}

	// SessionLinkRequest struct - HTTP query DTO identifying a session and the kind the caller expects
	SessionLinkRequest struct {
		SessionID   string `json:"sessionId" validate:"required,max=255" query:"sessionId"`
		ContentKind string `json:"contentKind" validate:"required,contentkind" query:"contentKind"`
	}

	// QuerySessionsRequest struct - HTTP query request DTO
	QuerySessionsRequest struct {
		Active *bool   `json:"active,omitempty" query:"active"`
		Search *string `json:"q,omitempty" validate:"omitempty,max=100" query:"q"`
	}
)
