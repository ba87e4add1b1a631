package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/timeutil"
)

// SaveDayEntry inserts or updates a day entry and touches the parent
// datebook's modified timestamp, both inside one transaction. The entry's
// activity date is forced into the parent's month before writing. Creating
// an entry for a date that already has one fails with ErrDuplicateEntry.
func (s *Store) SaveDayEntry(db *datebook.Datebook, e *datebook.DayEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.validator.Validate(e.Content); err != nil {
		return err
	}

	e.DatebookID = db.ID
	e.Normalize(db.Period)
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if e.ID == 0 {
		res, err := tx.Exec(
			`INSERT INTO day_entries (datebook_id, activity_date, content, start, stop, pause, overtime, vacation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entryArgs(e)...,
		)
		if err != nil {
			return fmt.Errorf("insert day entry: %w", mapConstraintErr(err))
		}
		e.ID, _ = res.LastInsertId()
	} else {
		_, err := tx.Exec(
			`UPDATE day_entries SET datebook_id = ?, activity_date = ?, content = ?, start = ?, stop = ?,
			 pause = ?, overtime = ?, vacation = ? WHERE id = ?`,
			append(entryArgs(e), e.ID)...,
		)
		if err != nil {
			return fmt.Errorf("update day entry %d: %w", e.ID, mapConstraintErr(err))
		}
	}

	if err := touchDatebook(tx, db.ID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.Modified = now
	return nil
}

// BulkInsertDayEntries inserts a batch of new entries and touches the parent
// datebook once, all in a single transaction. Partial application is never
// left behind: any failure rolls back the whole batch.
func (s *Store) BulkInsertDayEntries(db *datebook.Datebook, entries []datebook.DayEntry) error {
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for i := range entries {
		e := &entries[i]
		e.DatebookID = db.ID
		e.Normalize(db.Period)
		res, err := tx.Exec(
			`INSERT INTO day_entries (datebook_id, activity_date, content, start, stop, pause, overtime, vacation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			entryArgs(e)...,
		)
		if err != nil {
			return fmt.Errorf("bulk insert day entry %s: %w",
				e.ActivityDate.Format(dateFormat), mapConstraintErr(err))
		}
		e.ID, _ = res.LastInsertId()
	}

	// Bulk insert bypasses the per-save cascade, so the parent is touched
	// explicitly here, within the same transaction.
	if err := touchDatebook(tx, db.ID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.Modified = now
	return nil
}

// GetDayEntry returns the datebook's entry for the given date, or nil when
// the day has not been filled in.
func (s *Store) GetDayEntry(datebookID int64, date time.Time) (*datebook.DayEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, datebook_id, activity_date, content, start, stop, pause, overtime, vacation
		 FROM day_entries WHERE datebook_id = ? AND activity_date = ?`,
		datebookID, date.Format(dateFormat),
	)
	e, err := scanDayEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day entry: %w", err)
	}
	return e, nil
}

// ListDayEntries returns all entries of a datebook ordered by activity date.
func (s *Store) ListDayEntries(datebookID int64) ([]datebook.DayEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, datebook_id, activity_date, content, start, stop, pause, overtime, vacation
		 FROM day_entries WHERE datebook_id = ? ORDER BY activity_date`,
		datebookID,
	)
	if err != nil {
		return nil, fmt.Errorf("list day entries: %w", err)
	}
	defer rows.Close()

	var entries []datebook.DayEntry
	for rows.Next() {
		e, err := scanDayEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list day entries: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ListDayEntriesBetween returns the datebook's entries in [from, to],
// ordered by activity date. Used by week views.
func (s *Store) ListDayEntriesBetween(datebookID int64, from, to time.Time) ([]datebook.DayEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, datebook_id, activity_date, content, start, stop, pause, overtime, vacation
		 FROM day_entries WHERE datebook_id = ? AND activity_date >= ? AND activity_date <= ?
		 ORDER BY activity_date`,
		datebookID, from.Format(dateFormat), to.Format(dateFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("list day entries: %w", err)
	}
	defer rows.Close()

	var entries []datebook.DayEntry
	for rows.Next() {
		e, err := scanDayEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list day entries: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteDayEntry removes a single entry and touches its parent datebook.
func (s *Store) DeleteDayEntry(db *datebook.Datebook, id int64) error {
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM day_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete day entry %d: %w", id, err)
	}
	if err := touchDatebook(tx, db.ID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.Modified = now
	return nil
}

func entryArgs(e *datebook.DayEntry) []any {
	return []any{
		e.DatebookID,
		e.ActivityDate.Format(dateFormat),
		e.Content,
		e.Start.Format(datetimeFormat),
		e.Stop.Format(datetimeFormat),
		timeutil.DurationSeconds(e.Pause),
		timeutil.DurationSeconds(e.Overtime),
		boolToInt(e.Vacation),
	}
}

func scanDayEntry(row rowScanner) (*datebook.DayEntry, error) {
	var e datebook.DayEntry
	var date, start, stop string
	var pause, overtime, vacation int

	if err := row.Scan(&e.ID, &e.DatebookID, &date, &e.Content, &start, &stop,
		&pause, &overtime, &vacation); err != nil {
		return nil, err
	}

	var err error
	if e.ActivityDate, err = time.Parse(dateFormat, date); err != nil {
		return nil, fmt.Errorf("parse activity date %q: %w", date, err)
	}
	if e.Start, err = time.Parse(datetimeFormat, start); err != nil {
		return nil, fmt.Errorf("parse start %q: %w", start, err)
	}
	if e.Stop, err = time.Parse(datetimeFormat, stop); err != nil {
		return nil, fmt.Errorf("parse stop %q: %w", stop, err)
	}
	e.Pause = time.Duration(pause) * time.Second
	e.Overtime = time.Duration(overtime) * time.Second
	e.Vacation = vacation != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
