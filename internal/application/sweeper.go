package application

import (
	"context"
	"fmt"
	"time"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"

	"github.com/adhocore/gronx"
	"github.com/sirupsen/logrus"
)

// Sweeper struct - removes sessions older than the retention window on a cron schedule
type Sweeper struct {
	store     output.SessionStore
	schedule  string
	retention time.Duration
	now       func() time.Time
}

// NewSweeper func - Creates new sweeper, empty schedule and zero retention fall back to defaults
func NewSweeper(store output.SessionStore, schedule string, retention time.Duration) (*Sweeper, error) {
	if schedule == "" {
		schedule = domain.DefaultSweepSchedule
	}
	if !gronx.New().IsValid(schedule) {
		return nil, fmt.Errorf("invalid sweep schedule %q", schedule)
	}
	if retention <= 0 {
		retention = domain.DefaultRetention
	}
	return &Sweeper{
		store:     store,
		schedule:  schedule,
		retention: retention,
		now:       time.Now,
	}, nil
}

// SweepNow func - Use case: remove expired sessions immediately
func (s *Sweeper) SweepNow(ctx context.Context) (int, error) {
	cutoff := domain.RetentionCutoff(s.now(), s.retention)
	removed, err := s.store.SweepExpired(ctx, cutoff)
	if err != nil {
		logrus.Errorln(err)
		return 0, err
	}
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed": removed,
			"cutoff":  domain.FormatTimestamp(cutoff),
		}).Info("Expired sessions swept")
	}
	return removed, nil
}

// Run sweeps on every schedule tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	logrus.Infof("Session sweeper started, schedule %q, retention %s", s.schedule, s.retention)
	for {
		next, err := gronx.NextTickAfter(s.schedule, s.now(), false)
		if err != nil {
			return fmt.Errorf("next sweep tick: %w", err)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Info("Session sweeper stopped")
			return nil
		case <-timer.C:
		}

		s.tick(ctx)
	}
}

// tick runs one scheduled sweep; a failure is retried on the next tick.
func (s *Sweeper) tick(ctx context.Context) {
	if _, err := s.SweepNow(ctx); err != nil {
		logrus.Warnf("Scheduled sweep failed, retrying at next tick: %v", err)
	}
}
