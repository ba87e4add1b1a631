package calendar

import (
	"fmt"
	"time"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/timeutil"
)

// WeekTotals accumulates worked time for one grid week.
type WeekTotals struct {
	ElapsedSeconds  int
	OvertimeSeconds int
	VacationCount   int
	Current         bool // week containing the reference day
	HasActiveDay    bool // at least one non-projected entry
	Elapsed         string
	Overtime        string
}

// MonthTotals is the aggregation result for a whole month grid.
type MonthTotals struct {
	ElapsedSeconds  int
	OvertimeSeconds int
	VacationCount   int
	Elapsed         string
	Overtime        string
	Weeks           []WeekTotals
}

// Aggregate walks the grid's weeks and the day entries to compute per-week
// and month totals. Entries dated on or after referenceDay are "projected":
// they are excluded from every total, vacation count included, but do not
// clear the week's active marker. The comparison is by calendar date,
// ignoring clock and location on both sides. Vacation entries count
// vacations only and contribute no elapsed or overtime seconds.
func Aggregate(grid Grid, entries []datebook.DayEntry, referenceDay time.Time) (MonthTotals, error) {
	index := grid.weekIndex()

	totals := MonthTotals{Weeks: make([]WeekTotals, len(index))}

	// The reference day only marks a current week when it falls inside the
	// grid's own month.
	if referenceDay.Year() == grid.Year && referenceDay.Month() == grid.Month {
		for i, days := range index {
			if containsDay(days, referenceDay.Day()) {
				totals.Weeks[i].Current = true
				break
			}
		}
	}

	ref := dateOrdinal(referenceDay)

	for i := range entries {
		e := &entries[i]
		day := e.ActivityDate.Day()

		week := -1
		for w, days := range index {
			if containsDay(days, day) {
				week = w
				break
			}
		}
		if week == -1 {
			return MonthTotals{}, fmt.Errorf("%w: day %d of %s %d",
				ErrDayNotInGrid, day, grid.Month, grid.Year)
		}

		// Projected days (on or after the reference day) never count.
		if dateOrdinal(e.ActivityDate) >= ref {
			continue
		}

		wt := &totals.Weeks[week]
		wt.HasActiveDay = true

		if e.Vacation {
			wt.VacationCount++
			totals.VacationCount++
			continue
		}

		elapsed := e.ElapsedSeconds()
		overtime := timeutil.DurationSeconds(e.Overtime)
		wt.ElapsedSeconds += elapsed
		wt.OvertimeSeconds += overtime
		totals.ElapsedSeconds += elapsed
		totals.OvertimeSeconds += overtime
	}

	for i := range totals.Weeks {
		totals.Weeks[i].Elapsed = timeutil.SecondsToClock(totals.Weeks[i].ElapsedSeconds)
		totals.Weeks[i].Overtime = timeutil.SecondsToClock(totals.Weeks[i].OvertimeSeconds)
	}
	totals.Elapsed = timeutil.SecondsToClock(totals.ElapsedSeconds)
	totals.Overtime = timeutil.SecondsToClock(totals.OvertimeSeconds)

	return totals, nil
}

// dateOrdinal flattens a time to a comparable calendar-date number so that
// dates in different locations order by their own year/month/day fields, not
// by instant.
func dateOrdinal(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
