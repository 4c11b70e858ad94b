package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure SessionRepository implements SessionStore interface
var _ output.SessionStore = (*SessionRepository)(nil)

// upsertColumns are replaced when Create reuses a session id
var upsertColumns = []string{
	"content_kind",
	"payload",
	"created_at",
	"is_active",
	"source_deck_name",
	"source_deck_session_id",
}

// SessionRepository struct - Secondary/Driven adapter for SQL databases via gorm
type SessionRepository struct {
	dbGorm  *gorm.DB
	baseURL string
	now     func() time.Time
}

// NewSessionRepository func - Creates new gorm-backed session repository
func NewSessionRepository(dbGorm *gorm.DB, baseURL string) (*SessionRepository, error) {
	logrus.Info("Migrate database ...")
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		return nil, fmt.Errorf("migrate session tables: %w", err)
	}
	return &SessionRepository{
		dbGorm:  dbGorm,
		baseURL: baseURL,
		now:     time.Now,
	}, nil
}

// Create stores a new session, overwriting any session with the same id.
func (p *SessionRepository) Create(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	session := domain.NewStudySession(req, p.baseURL, p.now())
	record := domain.NewStudySessionRecord(session)

	var existed bool
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.StudySessionRecord{}).Where("session_id = ?", req.SessionID).Count(&count).Error; err != nil {
			return err
		}
		existed = count > 0

		if err := tx.Where("session_id = ?", req.SessionID).Delete(&domain.SessionParticipantRecord{}).Error; err != nil {
			return err
		}
		// created_at is listed explicitly: UpdateAll skips auto-create-time columns
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(record).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return nil, false, fmt.Errorf("create session %s: %w", req.SessionID, err)
	}
	return session, existed, nil
}

// CreateIfAbsent stores a new session only if the id is not taken.
func (p *SessionRepository) CreateIfAbsent(ctx context.Context, req domain.NewSession) (*domain.StudySession, bool, error) {
	session := domain.NewStudySession(req, p.baseURL, p.now())
	record := domain.NewStudySessionRecord(session)

	result := p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if result.Error != nil {
		logrus.Errorln(result.Error)
		return nil, false, fmt.Errorf("create session %s: %w", req.SessionID, result.Error)
	}
	if result.RowsAffected == 0 {
		existing, err := p.Get(ctx, req.SessionID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return session, true, nil
}

// Get retrieves a session by id. Returns nil if the session does not exist.
func (p *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.StudySession, error) {
	var record domain.StudySessionRecord
	err := p.dbGorm.WithContext(ctx).Where("session_id = ?", sessionID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	participants, err := p.ListParticipants(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return record.ToStudySession(p.baseURL, participants), nil
}

// AddParticipant records participantID once per session.
func (p *SessionRepository) AddParticipant(ctx context.Context, sessionID, participantID string) (bool, error) {
	var found bool
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record domain.StudySessionRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		participant := domain.SessionParticipantRecord{
			SessionID:     sessionID,
			ParticipantID: participantID,
			JoinedAt:      p.now().UTC(),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return false, fmt.Errorf("add participant to %s: %w", sessionID, err)
	}
	return found, nil
}

// ListParticipants returns the roster in join order.
func (p *SessionRepository) ListParticipants(ctx context.Context, sessionID string) ([]string, error) {
	participants := make([]string, 0)
	err := p.dbGorm.WithContext(ctx).
		Model(&domain.SessionParticipantRecord{}).
		Where("session_id = ?", sessionID).
		Order("id").
		Pluck("participant_id", &participants).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("list participants of %s: %w", sessionID, err)
	}
	return participants, nil
}

// Activate marks a session active.
func (p *SessionRepository) Activate(ctx context.Context, sessionID string) (bool, error) {
	return p.setActive(ctx, sessionID, true)
}

// Deactivate marks a session inactive.
func (p *SessionRepository) Deactivate(ctx context.Context, sessionID string) (bool, error) {
	return p.setActive(ctx, sessionID, false)
}

func (p *SessionRepository) setActive(ctx context.Context, sessionID string, active bool) (bool, error) {
	result := p.dbGorm.WithContext(ctx).
		Model(&domain.StudySessionRecord{}).
		Where("session_id = ?", sessionID).
		Update("is_active", active)
	if result.Error != nil {
		logrus.Errorln(result.Error)
		return false, fmt.Errorf("update session %s: %w", sessionID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a session and its roster permanently.
func (p *SessionRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	var removed int64
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&domain.SessionParticipantRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("session_id = ?", sessionID).Delete(&domain.StudySessionRecord{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logrus.Errorln(err)
		return false, fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return removed > 0, nil
}

// ListActive returns every active session.
func (p *SessionRepository) ListActive(ctx context.Context) ([]*domain.StudySession, error) {
	return p.list(ctx, true)
}

// ListAll returns every session.
func (p *SessionRepository) ListAll(ctx context.Context) ([]*domain.StudySession, error) {
	return p.list(ctx, false)
}

func (p *SessionRepository) list(ctx context.Context, activeOnly bool) ([]*domain.StudySession, error) {
	var records []domain.StudySessionRecord
	query := p.dbGorm.WithContext(ctx).Order("created_at").Order("session_id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	result := make([]*domain.StudySession, 0, len(records))
	if len(records) == 0 {
		return result, nil
	}

	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].SessionID
	}

	var joins []domain.SessionParticipantRecord
	if err := p.dbGorm.WithContext(ctx).Where("session_id IN ?", ids).Order("id").Find(&joins).Error; err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("list participants: %w", err)
	}
	rosters := make(map[string][]string, len(records))
	for _, join := range joins {
		rosters[join.SessionID] = append(rosters[join.SessionID], join.ParticipantID)
	}

	for i := range records {
		result = append(result, records[i].ToStudySession(p.baseURL, rosters[records[i].SessionID]))
	}
	domain.SortSessions(result)
	return result, nil
}

// SweepExpired removes sessions created before cutoff.
func (p *SessionRepository) SweepExpired(ctx context.Context, cutoff time.Time) (int, error) {
	var removed int64
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&domain.StudySessionRecord{}).
			Where("created_at < ?", cutoff.UTC()).
			Pluck("session_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("session_id IN ?", ids).Delete(&domain.SessionParticipantRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("session_id IN ?", ids).Delete(&domain.StudySessionRecord{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logrus.Errorln(err)
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return int(removed), nil
}

// Ping checks the database connection.
func (p *SessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (p *SessionRepository) Close() error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
