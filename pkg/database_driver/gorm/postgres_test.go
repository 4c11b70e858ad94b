package gorm

import (
	"strings"
	"testing"
)

// TestPostgresOptionsDSN tests sslmode rendering
func TestPostgresOptionsDSN(t *testing.T) {
	opts := PostgresOptions{Host: "db", Port: "5432", Username: "u", Password: "p", DbName: "ideation"}

	if dsn := opts.DSN(); !strings.Contains(dsn, "sslmode=disable") || !strings.Contains(dsn, "dbname=ideation") {
		t.Errorf("unexpected DSN %s", dsn)
	}

	opts.SSLMode = true
	if dsn := opts.DSN(); !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("expected sslmode=require, got %s", dsn)
	}
}

// TestConnectToPostgreSQLRejectsEmptyOptions tests the guard against missing settings
func TestConnectToPostgreSQLRejectsEmptyOptions(t *testing.T) {
	if _, err := ConnectToPostgreSQL(PostgresOptions{}); err == nil {
		t.Error("expected error for empty options")
	}
}

// TestConnectToSQLite tests opening an in-memory database
func TestConnectToSQLite(t *testing.T) {
	db, err := ConnectToSQLite("file:driver_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer Disconnect(db.SQLite)

	if db.SQLite == nil {
		t.Fatal("expected SQLite handle to be set")
	}
	if err := db.SQLite.Exec("SELECT 1").Error; err != nil {
		t.Errorf("expected query to succeed, got %v", err)
	}

	if _, err := ConnectToSQLite(""); err == nil {
		t.Error("expected error for empty dsn")
	}
}
