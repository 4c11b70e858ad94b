package protocal

import (
	"fmt"
	"strings"

	"github.com/GityImran/ideation-lab/configs"
	"github.com/GityImran/ideation-lab/internal/adapters/output/memory"
	"github.com/GityImran/ideation-lab/internal/adapters/output/postgres"
	"github.com/GityImran/ideation-lab/internal/adapters/output/redis"
	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/output"
	"github.com/GityImran/ideation-lab/pkg/database_driver/gorm"

	"github.com/sirupsen/logrus"
)

// Store drivers accepted in store.driver
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sessionSettings applies defaults to zero config values
func sessionSettings(cfg configs.Session) configs.Session {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Retention <= 0 {
		cfg.Retention = domain.DefaultRetention
	}
	if strings.TrimSpace(cfg.SweepSchedule) == "" {
		cfg.SweepSchedule = domain.DefaultSweepSchedule
	}
	return cfg
}

// newSessionStore selects the session registry backend
func newSessionStore(cfg *configs.Config, session configs.Session) (output.SessionStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if driver == "" {
		driver = DriverMemory
	}
	logrus.Infof("Session store driver: %s", driver)

	switch driver {
	case DriverMemory:
		return memory.NewMemorySessionStore(session.BaseURL), nil
	case DriverRedis:
		return redis.NewRedisFromConfig(redis.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			BaseURL:   session.BaseURL,
			Retention: session.Retention,
		})
	case DriverPostgres:
		db, err := gorm.ConnectToPostgreSQL(gorm.PostgresOptions{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			DbName:   cfg.Postgres.DbName,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewSessionRepository(db.Postgres, session.BaseURL)
	case DriverSQLite:
		db, err := gorm.ConnectToSQLite(cfg.SQLite.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewSessionRepository(db.SQLite, session.BaseURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
