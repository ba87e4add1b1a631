package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
)

// CreateDatebook creates an empty datebook for the author and month. The
// period is normalized to the first day of its month.
func (s *Store) CreateDatebook(author string, period time.Time) (*datebook.Datebook, error) {
	period = datebook.NormalizePeriod(period)
	now := time.Now().UTC().Truncate(time.Second)

	res, err := s.db.Exec(
		`INSERT INTO datebooks (author, period, created, modified) VALUES (?, ?, ?, ?)`,
		author, period.Format(dateFormat), now.Format(datetimeFormat), now.Format(datetimeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("create datebook: %w", mapConstraintErr(err))
	}
	id, _ := res.LastInsertId()
	return s.getDatebookByID(id)
}

// GetDatebook returns the author's datebook for the given month, or nil when
// none exists yet.
func (s *Store) GetDatebook(author string, period time.Time) (*datebook.Datebook, error) {
	period = datebook.NormalizePeriod(period)

	row := s.db.QueryRow(
		`SELECT id, author, period, created, modified, notes FROM datebooks
		 WHERE author = ? AND period = ?`,
		author, period.Format(dateFormat),
	)
	db, err := scanDatebook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get datebook: %w", err)
	}
	return db, nil
}

// GetOrCreateDatebook fetches the author's datebook for the month, creating
// it lazily when missing.
func (s *Store) GetOrCreateDatebook(author string, period time.Time) (*datebook.Datebook, error) {
	db, err := s.GetDatebook(author, period)
	if err != nil || db != nil {
		return db, err
	}
	return s.CreateDatebook(author, period)
}

// SaveDatebookNotes validates and stores the datebook's free-text notes,
// updating its modified timestamp.
func (s *Store) SaveDatebookNotes(db *datebook.Datebook, notes string) error {
	if err := s.validator.Validate(notes); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.Exec(
		`UPDATE datebooks SET notes = ?, modified = ? WHERE id = ?`,
		notes, now.Format(datetimeFormat), db.ID,
	)
	if err != nil {
		return fmt.Errorf("save datebook notes: %w", err)
	}
	db.Notes = notes
	db.Modified = now
	return nil
}

// DeleteDatebook removes the datebook and, through the foreign key cascade,
// all of its day entries.
func (s *Store) DeleteDatebook(id int64) error {
	_, err := s.db.Exec(`DELETE FROM datebooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete datebook %d: %w", id, err)
	}
	return nil
}

// ListDatebooks returns all of the author's datebooks ordered by period.
func (s *Store) ListDatebooks(author string) ([]datebook.Datebook, error) {
	rows, err := s.db.Query(
		`SELECT id, author, period, created, modified, notes FROM datebooks
		 WHERE author = ? ORDER BY period`,
		author,
	)
	if err != nil {
		return nil, fmt.Errorf("list datebooks: %w", err)
	}
	defer rows.Close()

	var books []datebook.Datebook
	for rows.Next() {
		db, err := scanDatebook(rows)
		if err != nil {
			return nil, fmt.Errorf("list datebooks: %w", err)
		}
		books = append(books, *db)
	}
	return books, rows.Err()
}

func (s *Store) getDatebookByID(id int64) (*datebook.Datebook, error) {
	row := s.db.QueryRow(
		`SELECT id, author, period, created, modified, notes FROM datebooks WHERE id = ?`, id)
	db, err := scanDatebook(row)
	if err != nil {
		return nil, fmt.Errorf("get datebook %d: %w", id, err)
	}
	return db, nil
}

// touchDatebook bumps the datebook's modified timestamp inside the caller's
// transaction. Every day entry mutation must end up here, either per save or
// once per batch.
func touchDatebook(tx *sql.Tx, id int64, now time.Time) error {
	_, err := tx.Exec(
		`UPDATE datebooks SET modified = ? WHERE id = ?`,
		now.Format(datetimeFormat), id,
	)
	if err != nil {
		return fmt.Errorf("touch datebook %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDatebook(row rowScanner) (*datebook.Datebook, error) {
	var db datebook.Datebook
	var period, created, modified string

	if err := row.Scan(&db.ID, &db.Author, &period, &created, &modified, &db.Notes); err != nil {
		return nil, err
	}

	var err error
	if db.Period, err = time.Parse(dateFormat, period); err != nil {
		return nil, fmt.Errorf("parse period %q: %w", period, err)
	}
	if db.Created, err = time.Parse(datetimeFormat, created); err != nil {
		return nil, fmt.Errorf("parse created %q: %w", created, err)
	}
	if db.Modified, err = time.Parse(datetimeFormat, modified); err != nil {
		return nil, fmt.Errorf("parse modified %q: %w", modified, err)
	}
	return &db, nil
}
