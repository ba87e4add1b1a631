package datebook

import (
	"errors"
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/timeutil"
)

var (
	// ErrInvalidPeriod is returned when a year/month pair does not form a
	// valid calendar date.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDayOfMonth is returned when a day number does not exist in
	// the target month.
	ErrInvalidDayOfMonth = errors.New("invalid day of month")

	// ErrDuplicateEntry is returned when a day entry already exists for a
	// (datebook, activity date) pair.
	ErrDuplicateEntry = errors.New("duplicate day entry")

	// ErrConstraint is returned for entry-level constraint violations, such
	// as stop not being after start.
	ErrConstraint = errors.New("constraint violation")
)

// Datebook is one author's activity container for a single calendar month.
// It is lazy: day entries are created as the author fills them in, never
// pre-populated for the whole month.
type Datebook struct {
	ID       int64
	Author   string
	Period   time.Time // first day of the month
	Created  time.Time
	Modified time.Time
	Notes    string
}

// NormalizePeriod truncates any date down to the first day of its month.
func NormalizePeriod(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// ValidPeriod reports whether year/month form a usable calendar period.
func ValidPeriod(year int, month time.Month) bool {
	return year >= 1 && year <= 9999 && month >= time.January && month <= time.December
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayEntry is a single recorded activity day inside a datebook.
type DayEntry struct {
	ID           int64
	DatebookID   int64
	ActivityDate time.Time
	Content      string
	Start        time.Time
	Stop         time.Time
	Pause        time.Duration
	Overtime     time.Duration
	Vacation     bool
}

// Normalize forces the entry's activity date into the parent datebook's
// year and month, keeping the day-of-month.
func (e *DayEntry) Normalize(period time.Time) {
	d := e.ActivityDate
	e.ActivityDate = time.Date(period.Year(), period.Month(), d.Day(),
		0, 0, 0, 0, d.Location())
}

// Validate checks entry-level constraints before persistence.
func (e *DayEntry) Validate() error {
	if !e.Stop.After(e.Start) {
		return fmt.Errorf("%w: stop must be after start", ErrConstraint)
	}
	return nil
}

// ElapsedSeconds returns the worked span in seconds: (stop - start) minus
// the pause. May be negative when the pause exceeds the span; this is left
// to entry-level validation at creation time, not checked here.
func (e *DayEntry) ElapsedSeconds() int {
	return timeutil.SecondsBetween(e.Start, e.Stop) - timeutil.DurationSeconds(e.Pause)
}

// ElapsedClock returns the elapsed time formatted as "H:MM".
func (e *DayEntry) ElapsedClock() string {
	return timeutil.SecondsToClock(e.ElapsedSeconds())
}

// OvertimeSeconds returns the overtime in seconds.
func (e *DayEntry) OvertimeSeconds() int {
	return timeutil.DurationSeconds(e.Overtime)
}

// WorkingHours renders the start/stop pair like "09h to 18h30". Minutes are
// omitted when zero.
func (e *DayEntry) WorkingHours() string {
	return fmt.Sprintf("%s to %s", displayHour(e.Start), displayHour(e.Stop))
}

func displayHour(t time.Time) string {
	if t.Minute() > 0 {
		return fmt.Sprintf("%02dh%02d", t.Hour(), t.Minute())
	}
	return fmt.Sprintf("%02dh", t.Hour())
}

// DayModel is a reusable per-author template for filling day entries. Only
// the time-of-day component of Start and Stop is meaningful; their stored
// date is a placeholder.
type DayModel struct {
	ID       int64
	Author   string
	Title    string
	Content  string
	Start    time.Time
	Stop     time.Time
	Pause    time.Duration
	Overtime time.Duration
}

// ModelFromEntry builds a day model out of an existing day entry, keeping
// its times and content under a new title.
func ModelFromEntry(author, title string, e DayEntry) DayModel {
	return DayModel{
		Author:   author,
		Title:    title,
		Content:  e.Content,
		Start:    e.Start,
		Stop:     e.Stop,
		Pause:    e.Pause,
		Overtime: e.Overtime,
	}
}
