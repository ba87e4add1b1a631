package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/timeutil"
)

// SaveDayModel inserts or updates a reusable day model. Titles are unique
// per author.
func (s *Store) SaveDayModel(m *datebook.DayModel) error {
	if err := s.validator.Validate(m.Content); err != nil {
		return err
	}

	if m.ID == 0 {
		res, err := s.db.Exec(
			`INSERT INTO day_models (author, title, content, start, stop, pause, overtime)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.Author, m.Title, m.Content,
			m.Start.Format(datetimeFormat), m.Stop.Format(datetimeFormat),
			timeutil.DurationSeconds(m.Pause), timeutil.DurationSeconds(m.Overtime),
		)
		if err != nil {
			return fmt.Errorf("insert day model: %w", mapConstraintErr(err))
		}
		m.ID, _ = res.LastInsertId()
		return nil
	}

	_, err := s.db.Exec(
		`UPDATE day_models SET author = ?, title = ?, content = ?, start = ?, stop = ?,
		 pause = ?, overtime = ? WHERE id = ?`,
		m.Author, m.Title, m.Content,
		m.Start.Format(datetimeFormat), m.Stop.Format(datetimeFormat),
		timeutil.DurationSeconds(m.Pause), timeutil.DurationSeconds(m.Overtime),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update day model %d: %w", m.ID, mapConstraintErr(err))
	}
	return nil
}

// GetDayModel returns the author's model with the given title, or nil when
// none exists.
func (s *Store) GetDayModel(author, title string) (*datebook.DayModel, error) {
	row := s.db.QueryRow(
		`SELECT id, author, title, content, start, stop, pause, overtime
		 FROM day_models WHERE author = ? AND title = ?`,
		author, title,
	)
	m, err := scanDayModel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day model: %w", err)
	}
	return m, nil
}

// ListDayModels returns all of the author's models ordered by title.
func (s *Store) ListDayModels(author string) ([]datebook.DayModel, error) {
	rows, err := s.db.Query(
		`SELECT id, author, title, content, start, stop, pause, overtime
		 FROM day_models WHERE author = ? ORDER BY title`,
		author,
	)
	if err != nil {
		return nil, fmt.Errorf("list day models: %w", err)
	}
	defer rows.Close()

	var models []datebook.DayModel
	for rows.Next() {
		m, err := scanDayModel(rows)
		if err != nil {
			return nil, fmt.Errorf("list day models: %w", err)
		}
		models = append(models, *m)
	}
	return models, rows.Err()
}

// DeleteDayModel removes the author's model with the given title.
func (s *Store) DeleteDayModel(author, title string) error {
	res, err := s.db.Exec(`DELETE FROM day_models WHERE author = ? AND title = ?`, author, title)
	if err != nil {
		return fmt.Errorf("delete day model: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("day model %q not found", title)
	}
	return nil
}

func scanDayModel(row rowScanner) (*datebook.DayModel, error) {
	var m datebook.DayModel
	var start, stop string
	var pause, overtime int

	if err := row.Scan(&m.ID, &m.Author, &m.Title, &m.Content, &start, &stop,
		&pause, &overtime); err != nil {
		return nil, err
	}

	var err error
	if m.Start, err = time.Parse(datetimeFormat, start); err != nil {
		return nil, fmt.Errorf("parse start %q: %w", start, err)
	}
	if m.Stop, err = time.Parse(datetimeFormat, stop); err != nil {
		return nil, fmt.Errorf("parse stop %q: %w", stop, err)
	}
	m.Pause = time.Duration(pause) * time.Second
	m.Overtime = time.Duration(overtime) * time.Second
	return &m, nil
}
