package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// SQLite is a CoordinateStore backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", path, err)
	}

	s := &SQLite{db: db}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema(ctx context.Context) error {
	const createEntries = `
	CREATE TABLE IF NOT EXISTS visitor_entries (
		visitor    TEXT NOT NULL,
		name       TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (visitor, name)
	);
	`
	if _, err := s.db.ExecContext(ctx, createEntries); err != nil {
		return fmt.Errorf("init schema: create visitor_entries: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, visitor string) (domain.Coordinate, bool, error) {
	const query = `SELECT value FROM visitor_entries WHERE visitor = ? AND name = ?;`

	var raw string
	err := s.db.QueryRowContext(ctx, query, visitor, EntryName).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get coordinate: %w", err)
	}

	c, err := decode(raw)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	return c, true, nil
}

func (s *SQLite) Set(ctx context.Context, visitor string, c domain.Coordinate) error {
	const upsert = `
	INSERT INTO visitor_entries (visitor, name, value, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (visitor, name) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at;
	`
	raw, err := encode(c)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsert, visitor, EntryName, raw); err != nil {
		return fmt.Errorf("set coordinate: %w", err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context, visitor string) error {
	const del = `DELETE FROM visitor_entries WHERE visitor = ? AND name = ?;`
	if _, err := s.db.ExecContext(ctx, del, visitor, EntryName); err != nil {
		return fmt.Errorf("clear coordinate: %w", err)
	}
	return nil
}

// CheckReadiness pings the database.
func (s *SQLite) CheckReadiness(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
