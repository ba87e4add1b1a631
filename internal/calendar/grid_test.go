package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sveetch/datebook/internal/datebook"
)

func TestBuildMonthGridApril2024(t *testing.T) {
	// April 1, 2024 is a Monday; 30 days fit exactly five Monday-first weeks.
	grid, err := BuildMonthGrid(2024, time.April, nil, GridOptions{FirstWeekday: time.Monday})

	require.NoError(t, err)
	assert.Equal(t, 5, len(grid.Weeks))
	assert.False(t, grid.Weeks[0][0].NoDay)
	assert.Equal(t, 1, grid.Weeks[0][0].Date.Day())

	// Trailing cells of the last week belong to May.
	last := grid.Weeks[4]
	assert.Equal(t, 30, last[1].Date.Day())
	assert.False(t, last[1].NoDay)
	assert.True(t, last[2].NoDay)
	assert.Equal(t, time.May, last[2].Date.Month())
}

func TestBuildMonthGridInMonthDayCount(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
	}{
		{2024, time.January},
		{2024, time.February}, // leap
		{2023, time.February},
		{2024, time.April},
		{2024, time.December},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			grid, err := BuildMonthGrid(tt.year, tt.month, nil, GridOptions{FirstWeekday: time.Monday})
			require.NoError(t, err)

			inMonth := 0
			cells := 0
			for _, week := range grid.Weeks {
				for _, cell := range week {
					cells++
					if !cell.NoDay {
						inMonth++
					}
				}
			}
			assert.Equal(t, datebook.DaysIn(tt.year, tt.month), inMonth)
			assert.Zero(t, cells%7)
		})
	}
}

func TestBuildMonthGridLeadingDays(t *testing.T) {
	// March 1, 2024 is a Friday; with Monday first the grid leads with four
	// February days.
	grid, err := BuildMonthGrid(2024, time.March, nil, GridOptions{FirstWeekday: time.Monday})

	require.NoError(t, err)
	week := grid.Weeks[0]
	for i := 0; i < 4; i++ {
		assert.True(t, week[i].NoDay)
		assert.Equal(t, time.February, week[i].Date.Month())
	}
	assert.False(t, week[4].NoDay)
	assert.Equal(t, 1, week[4].Date.Day())
}

func TestBuildMonthGridSundayFirst(t *testing.T) {
	grid, err := BuildMonthGrid(2024, time.April, nil, GridOptions{FirstWeekday: time.Sunday})

	require.NoError(t, err)
	// April 2024 starts Monday, so Sunday-first leads with March 31.
	assert.True(t, grid.Weeks[0][0].NoDay)
	assert.Equal(t, 31, grid.Weeks[0][0].Date.Day())
	assert.Equal(t, 1, grid.Weeks[0][1].Date.Day())
}

func TestBuildMonthGridMergesEntries(t *testing.T) {
	entries := []datebook.DayEntry{
		{ActivityDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), Content: "five"},
		{ActivityDate: time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC), Content: "twenty-two"},
	}

	grid, err := BuildMonthGrid(2024, time.April, entries, GridOptions{FirstWeekday: time.Monday})
	require.NoError(t, err)

	matched := map[string]int{}
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Entry != nil {
				matched[cell.Entry.Content]++
				assert.Equal(t, cell.Date.Day(), cell.Entry.ActivityDate.Day())
			}
		}
	}
	assert.Equal(t, map[string]int{"five": 1, "twenty-two": 1}, matched)
}

func TestBuildMonthGridCurrentDay(t *testing.T) {
	grid, err := BuildMonthGrid(2024, time.April, nil, GridOptions{
		FirstWeekday: time.Monday,
		Today:        time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	current := 0
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Current {
				current++
				assert.Equal(t, 10, cell.Date.Day())
			}
		}
	}
	assert.Equal(t, 1, current)
}

func TestBuildMonthGridInvalidPeriod(t *testing.T) {
	_, err := BuildMonthGrid(2024, time.Month(13), nil, GridOptions{FirstWeekday: time.Monday})
	assert.ErrorIs(t, err, datebook.ErrInvalidPeriod)

	_, err = BuildMonthGrid(0, time.April, nil, GridOptions{FirstWeekday: time.Monday})
	assert.ErrorIs(t, err, datebook.ErrInvalidPeriod)
}

func TestWeekdayHeader(t *testing.T) {
	assert.Equal(t,
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		WeekdayHeader(time.Monday))
	assert.Equal(t,
		[]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		WeekdayHeader(time.Sunday))
}

func TestWeekDays(t *testing.T) {
	grid, err := BuildMonthGrid(2024, time.March, nil, GridOptions{FirstWeekday: time.Monday})
	require.NoError(t, err)

	// First week of March 2024 holds only Fri 1, Sat 2, Sun 3.
	days, err := grid.WeekDays(1)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 3, days[2].Day())

	_, err = grid.WeekDays(0)
	assert.Error(t, err)
	_, err = grid.WeekDays(len(grid.Weeks) + 1)
	assert.Error(t, err)
}
