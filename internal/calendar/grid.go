// Package calendar builds month calendar grids merged with day entry data
// and aggregates worked time over them.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
)

// ErrDayNotInGrid signals a day entry whose date maps to no cell of its own
// month's grid. It indicates inconsistent caller input, not a user error.
var ErrDayNotInGrid = errors.New("day entry not in grid")

// Cell is a single day slot of a month grid.
type Cell struct {
	Date    time.Time
	Entry   *datebook.DayEntry
	NoDay   bool // date belongs to an adjacent month
	Current bool // date equals the supplied current-day reference
}

// Week is one grid row of seven cells.
type Week [7]Cell

// Grid is a week-structured month calendar.
type Grid struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// GridOptions tune how a month grid is built. The zero value uses Monday as
// first weekday (FirstWeekday zero is Sunday, so set it explicitly) and no
// current-day marking.
type GridOptions struct {
	FirstWeekday time.Weekday
	Today        time.Time // zero means no current-day marking
}

// BuildMonthGrid produces the conventional month calendar grid for
// year/month, one cell per day including the leading and trailing days of
// adjacent months needed to fill whole weeks. Day entries are matched to
// cells by exact date equality.
func BuildMonthGrid(year int, month time.Month, entries []datebook.DayEntry, opts GridOptions) (Grid, error) {
	if !datebook.ValidPeriod(year, month) {
		return Grid{}, fmt.Errorf("%w: %d-%d", datebook.ErrInvalidPeriod, year, int(month))
	}

	byDay := make(map[string]*datebook.DayEntry, len(entries))
	for i := range entries {
		byDay[dateKey(entries[i].ActivityDate)] = &entries[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, datebook.DaysIn(year, month), 0, 0, 0, 0, time.UTC)

	// Walk back from the 1st to the grid's first weekday.
	lead := int(first.Weekday()-opts.FirstWeekday+7) % 7
	cursor := first.AddDate(0, 0, -lead)

	var today time.Time
	if !opts.Today.IsZero() {
		today = truncateToDay(opts.Today)
	}

	g := Grid{Year: year, Month: month}
	for !cursor.After(last) {
		var week Week
		for i := 0; i < 7; i++ {
			cell := Cell{Date: cursor}
			if cursor.Month() != month || cursor.Year() != year {
				cell.NoDay = true
			} else if e, ok := byDay[dateKey(cursor)]; ok {
				cell.Entry = e
			}
			if !today.IsZero() && sameDate(cursor, today) {
				cell.Current = true
			}
			week[i] = cell
			cursor = cursor.AddDate(0, 0, 1)
		}
		g.Weeks = append(g.Weeks, week)
	}

	return g, nil
}

// WeekdayHeader returns the seven weekday labels in grid order, starting
// from the given first weekday.
func WeekdayHeader(first time.Weekday) []string {
	labels := make([]string, 7)
	for i := 0; i < 7; i++ {
		labels[i] = time.Weekday((int(first) + i) % 7).String()[:3]
	}
	return labels
}

// WeekDays returns the in-month dates of the given week (1-indexed), used by
// week views. Fails when the week number falls outside the grid.
func (g Grid) WeekDays(week int) ([]time.Time, error) {
	if week < 1 || week > len(g.Weeks) {
		return nil, fmt.Errorf("week %d out of range for %s %d", week, g.Month, g.Year)
	}

	var days []time.Time
	for _, cell := range g.Weeks[week-1] {
		if !cell.NoDay {
			days = append(days, cell.Date)
		}
	}
	return days, nil
}

// weekIndex returns the in-month day numbers of each week row.
func (g Grid) weekIndex() [][]int {
	index := make([][]int, len(g.Weeks))
	for i, week := range g.Weeks {
		for _, cell := range week {
			if !cell.NoDay {
				index[i] = append(index[i], cell.Date.Day())
			}
		}
	}
	return index
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
