package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudySessionRecord struct - persistence model for a StudySession
type StudySessionRecord struct {
	SessionID           string         `gorm:"type:varchar(255);primaryKey"`
	ContentKind         string         `gorm:"type:varchar(16);not null"`
	Payload             datatypes.JSON `gorm:"column:payload"`
	CreatedAt           time.Time      `gorm:"not null;index"`
	IsActive            bool           `gorm:"not null"`
	SourceDeckName      string         `gorm:"type:varchar(255)"`
	SourceDeckSessionID string         `gorm:"type:varchar(255);index"`
}

// TableName func
func (r *StudySessionRecord) TableName() string {
	return "study_sessions"
}

// SessionParticipantRecord struct - one join event; the autoincrement id keeps join order
type SessionParticipantRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	SessionID     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_session_participant"`
	ParticipantID string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_session_participant"`
	JoinedAt      time.Time `gorm:"not null"`
}

// TableName func
func (r *SessionParticipantRecord) TableName() string {
	return "study_session_participants"
}

// ToStudySession converts a stored row plus its roster into a StudySession
func (r *StudySessionRecord) ToStudySession(baseURL string, participants []string) *StudySession {
	if participants == nil {
		participants = []string{}
	}
	var payload []byte
	if len(r.Payload) > 0 {
		payload = []byte(r.Payload)
	}
	return &StudySession{
		SessionID:           r.SessionID,
		ContentKind:         ContentKind(r.ContentKind),
		Payload:             payload,
		CreatedAt:           r.CreatedAt,
		AccessURL:           BuildAccessURL(baseURL, r.SessionID, ContentKind(r.ContentKind)),
		IsActive:            r.IsActive,
		Participants:        participants,
		SourceDeckName:      r.SourceDeckName,
		SourceDeckSessionID: r.SourceDeckSessionID,
	}
}

// NewStudySessionRecord converts a StudySession into its persistence model
func NewStudySessionRecord(s *StudySession) *StudySessionRecord {
	var payload datatypes.JSON
	if len(s.Payload) > 0 {
		payload = datatypes.JSON(s.Payload)
	}
	return &StudySessionRecord{
		SessionID:           s.SessionID,
		ContentKind:         string(s.ContentKind),
		Payload:             payload,
		CreatedAt:           s.CreatedAt.UTC(),
		IsActive:            s.IsActive,
		SourceDeckName:      s.SourceDeckName,
		SourceDeckSessionID: s.SourceDeckSessionID,
	}
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return ErrInvalidRequest
	}
	return db.AutoMigrate(&StudySessionRecord{}, &SessionParticipantRecord{})
}
