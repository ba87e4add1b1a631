// Package projector instantiates day entries from reusable day models.
package projector

import (
	"fmt"
	"sort"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/store"
)

// Projector projects a day model's times and content onto a batch of
// calendar days inside one datebook.
type Projector struct {
	Store *store.Store

	// Location is the local timezone used for the seasonal offset
	// correction. Defaults to time.Local.
	Location *time.Location
}

// New creates a Projector bound to the given store, using the process-local
// timezone.
func New(s *store.Store) *Projector {
	return &Projector{Store: s, Location: time.Local}
}

// Project creates or updates one day entry per target day-of-month from the
// model's template values. Existing entries are overwritten (their vacation
// flag is cleared); missing ones are batch-inserted. The parent datebook's
// modified timestamp is bumped exactly once at the end, inside the batch
// transaction, since bulk insert bypasses the per-save cascade.
func (p *Projector) Project(db *datebook.Datebook, model datebook.DayModel, days []int, includeContent bool) error {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}

	delta := model.Stop.Sub(model.Start)
	seasonal := seasonalOffset(model.Start.Year(), loc)

	year := db.Period.Year()
	month := db.Period.Month()
	lastDay := datebook.DaysIn(year, month)

	sorted := append([]int(nil), days...)
	sort.Ints(sorted)

	// Reject invalid day numbers before touching the store.
	for _, day := range sorted {
		if day < 1 || day > lastDay {
			return fmt.Errorf("%w: day %d in %s %d", datebook.ErrInvalidDayOfMonth, day, month, year)
		}
	}

	var created []datebook.DayEntry
	for _, day := range sorted {
		start := p.projectStart(model, year, month, day, seasonal, loc)
		stop := start.Add(delta)
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		existing, err := p.Store.GetDayEntry(db.ID, date)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.Start = start
			existing.Stop = stop
			existing.Pause = model.Pause
			existing.Overtime = model.Overtime
			existing.Vacation = false
			if includeContent {
				existing.Content = model.Content
			}
			if err := p.Store.SaveDayEntry(db, existing); err != nil {
				return err
			}
			continue
		}

		content := ""
		if includeContent {
			content = model.Content
		}
		created = append(created, datebook.DayEntry{
			DatebookID:   db.ID,
			ActivityDate: date,
			Content:      content,
			Start:        start,
			Stop:         stop,
			Pause:        model.Pause,
			Overtime:     model.Overtime,
		})
	}

	// Always run the batch, even when empty, so the parent datebook's
	// modified timestamp is bumped once at the end of the projection.
	return p.Store.BulkInsertDayEntries(db, created)
}

// projectStart combines the target date with the model's start time-of-day,
// treating the combination as UTC, then applies the seasonal offset
// heuristic: the target day's own UTC offset at local midnight minus the
// seasonal delta captured from the model's year. This is deliberately not a
// rigorous timezone conversion; it reproduces the stored-data semantics the
// application has always had.
func (p *Projector) projectStart(model datebook.DayModel, year int, month time.Month, day int, seasonal int, loc *time.Location) time.Time {
	naive := time.Date(year, month, day,
		model.Start.Hour(), model.Start.Minute(), model.Start.Second(), 0, time.UTC)

	_, targetOffset := time.Date(year, month, day, 0, 0, 0, 0, loc).Zone()
	adjustment := targetOffset - seasonal

	return naive.Add(-time.Duration(adjustment) * time.Second)
}

// seasonalOffset returns the difference, in seconds, between the UTC offsets
// observed on January 1st and July 1st of the given year in loc. It is the
// constant DST correction applied across the whole projection.
func seasonalOffset(year int, loc *time.Location) int {
	_, winter := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, summer := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return winter - summer
}
