// Package store persists datebooks, day entries and day models in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/markup"
)

const currentVersion = 1

const (
	dateFormat     = "2006-01-02"
	datetimeFormat = "2006-01-02T15:04:05Z07:00"
)

type Store struct {
	db        *sql.DB
	validator markup.ContentValidator
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, validator: markup.Noop{}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// SetContentValidator replaces the content validation hook applied to free
// text fields on save. The default accepts anything.
func (s *Store) SetContentValidator(v markup.ContentValidator) {
	if v == nil {
		v = markup.Noop{}
	}
	s.validator = v
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS datebooks (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		author    TEXT NOT NULL,
		period    TEXT NOT NULL,
		created   TEXT NOT NULL,
		modified  TEXT NOT NULL,
		notes     TEXT NOT NULL DEFAULT '',
		UNIQUE(author, period)
	);

	CREATE TABLE IF NOT EXISTS day_entries (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		datebook_id   INTEGER NOT NULL REFERENCES datebooks(id) ON DELETE CASCADE,
		activity_date TEXT NOT NULL,
		content       TEXT NOT NULL DEFAULT '',
		start         TEXT NOT NULL,
		stop          TEXT NOT NULL,
		pause         INTEGER NOT NULL DEFAULT 0,
		overtime      INTEGER NOT NULL DEFAULT 0,
		vacation      INTEGER NOT NULL DEFAULT 0,
		UNIQUE(datebook_id, activity_date)
	);

	CREATE INDEX IF NOT EXISTS idx_day_entries_datebook ON day_entries(datebook_id);

	CREATE TABLE IF NOT EXISTS day_models (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		author    TEXT NOT NULL,
		title     TEXT NOT NULL,
		content   TEXT NOT NULL DEFAULT '',
		start     TEXT NOT NULL,
		stop      TEXT NOT NULL,
		pause     INTEGER NOT NULL DEFAULT 0,
		overtime  INTEGER NOT NULL DEFAULT 0,
		UNIQUE(author, title)
	);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// mapConstraintErr translates SQLite uniqueness failures into the domain
// error taxonomy.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed: day_entries") {
		return fmt.Errorf("%w: %v", datebook.ErrDuplicateEntry, err)
	}
	if strings.Contains(msg, "constraint failed") {
		return fmt.Errorf("%w: %v", datebook.ErrConstraint, err)
	}
	return err
}
