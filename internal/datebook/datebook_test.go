package datebook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	d := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), NormalizePeriod(d))

	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first, NormalizePeriod(first))
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod(2024, time.April))
	assert.True(t, ValidPeriod(1, time.January))
	assert.True(t, ValidPeriod(9999, time.December))
	assert.False(t, ValidPeriod(0, time.January))
	assert.False(t, ValidPeriod(10000, time.January))
	assert.False(t, ValidPeriod(2024, time.Month(0)))
	assert.False(t, ValidPeriod(2024, time.Month(13)))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2024, time.March))
	assert.Equal(t, 30, DaysIn(2024, time.April))
	assert.Equal(t, 29, DaysIn(2024, time.February)) // leap year
	assert.Equal(t, 28, DaysIn(2023, time.February))
}

func TestDayEntryNormalize(t *testing.T) {
	e := DayEntry{ActivityDate: time.Date(2023, 11, 12, 0, 0, 0, 0, time.UTC)}
	e.Normalize(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), e.ActivityDate)
}

func TestDayEntryValidate(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	e := DayEntry{Start: start, Stop: start.Add(8 * time.Hour)}
	assert.NoError(t, e.Validate())

	e.Stop = start
	assert.ErrorIs(t, e.Validate(), ErrConstraint)

	e.Stop = start.Add(-time.Hour)
	assert.ErrorIs(t, e.Validate(), ErrConstraint)
}

func TestDayEntryElapsedSeconds(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	e := DayEntry{
		Start: start,
		Stop:  start.Add(8*time.Hour + 30*time.Minute),
		Pause: time.Hour,
	}
	assert.Equal(t, 27000, e.ElapsedSeconds()) // 8h30m - 1h = 7h30m
	assert.Equal(t, "7:30", e.ElapsedClock())

	// Pause exceeding the span yields a negative total; accepted as-is.
	e.Pause = 10 * time.Hour
	assert.Equal(t, -5400, e.ElapsedSeconds())
}

func TestDayEntryWorkingHours(t *testing.T) {
	e := DayEntry{
		Start: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		Stop:  time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "09h to 18h30", e.WorkingHours())
}

func TestModelFromEntry(t *testing.T) {
	e := DayEntry{
		Content:  "support shift",
		Start:    time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		Stop:     time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC),
		Pause:    time.Hour,
		Overtime: 30 * time.Minute,
	}

	m := ModelFromEntry("alice", "Support", e)

	assert.Equal(t, "alice", m.Author)
	assert.Equal(t, "Support", m.Title)
	assert.Equal(t, e.Content, m.Content)
	assert.Equal(t, e.Start, m.Start)
	assert.Equal(t, e.Stop, m.Stop)
	assert.Equal(t, e.Pause, m.Pause)
	assert.Equal(t, e.Overtime, m.Overtime)
}
