package gorm

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectToSQLite func
// dsn is a file path or a "file:...?mode=memory" URI
func ConnectToSQLite(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("sqlite dsn is empty")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers; one connection avoids "database is locked"
	sqlDB.SetMaxOpenConns(1)

	logrus.Infof("Connected to sqlite at %s", dsn)
	return &DB{SQLite: db}, nil
}
