package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"skorpik-value/config"
)

// ErrNotConfigured is returned when neither a URL nor host/user/name are set
var ErrNotConfigured = errors.New("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")

// Schema creates the tables the catalog and view-state store read from
const Schema = `
CREATE TABLE IF NOT EXISTS items (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL DEFAULT 0,
	name       TEXT NOT NULL,
	rarity     TEXT NOT NULL,
	value      BIGINT NOT NULL CHECK (value >= 0),
	demand     DOUBLE PRECISION NOT NULL CHECK (demand >= 0 AND demand <= 10),
	status     TEXT NOT NULL DEFAULT 'stable',
	image      TEXT
);

CREATE TABLE IF NOT EXISTS view_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// ConnString builds the pgx connection string. DATABASE_URL wins; otherwise
// host, user and name are required and port/sslmode default to 5432/disable.
func ConnString(cfg config.DBConfig) (string, error) {
	if cfg.URL != "" {
		return cfg.URL, nil
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
		return "", ErrNotConfigured
	}

	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.User, cfg.Password, cfg.Name, sslmode), nil
}

// Open connects to Postgres through the pgx database/sql driver and pings it
func Open(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (*sql.DB, error) {
	connStr, err := ConnString(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	logger.Info("✓ Database connection established successfully")
	return conn, nil
}

// EnsureSchema creates missing tables
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
