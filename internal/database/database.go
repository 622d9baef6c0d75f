// Package database provides database connectivity and the access-request
// repository. Production runs PostgreSQL; sqlite keeps single-host
// deployments and tests dependency-free.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum connection lifetime.
	DefaultConnMaxLifetime = 5 * time.Minute
	// DefaultPingTimeout is the default timeout for ping operations.
	DefaultPingTimeout = 5 * time.Second
)

// Config holds database configuration.
type Config struct {
	// Driver is "postgres" or "sqlite3".
	Driver string
	// DSN is the driver-specific connection string.
	DSN string
}

// Schema per driver; the only divergence is the id column.
const (
	schemaPostgres = `
		CREATE TABLE IF NOT EXISTS access_requests (
			id           BIGSERIAL PRIMARY KEY,
			email        TEXT NOT NULL UNIQUE,
			name         TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'pending',
			requested_at TIMESTAMPTZ NOT NULL,
			decided_at   TIMESTAMPTZ,
			decided_by   TEXT NOT NULL DEFAULT ''
		)`
	schemaSQLite = `
		CREATE TABLE IF NOT EXISTS access_requests (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			email        TEXT NOT NULL UNIQUE,
			name         TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'pending',
			requested_at TIMESTAMP NOT NULL,
			decided_at   TIMESTAMP,
			decided_by   TEXT NOT NULL DEFAULT ''
		)`
)

// NewConnection opens a database connection, verifies it, and ensures the
// schema exists.
func NewConnection(cfg Config) (*sqlx.DB, error) {
	if cfg.Driver != "postgres" && cfg.Driver != "sqlite3" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	schema := schemaSQLite
	if cfg.Driver == "postgres" {
		schema = schemaPostgres
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}
