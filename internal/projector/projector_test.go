package projector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sveetch/datebook/internal/datebook"
	"github.com/sveetch/datebook/internal/store"
)

func newTestProjector(t *testing.T) (*Projector, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p := New(s)
	p.Location = time.UTC
	return p, s
}

func standardModel() datebook.DayModel {
	return datebook.DayModel{
		Author:  "alice",
		Title:   "Standard day",
		Content: "regular shift",
		Start:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Stop:    time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC),
		Pause:   time.Hour,
	}
}

func marchBook(t *testing.T, s *store.Store) *datebook.Datebook {
	t.Helper()
	db, err := s.CreateDatebook("alice", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return db
}

func TestProjectCreatesEntries(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)

	require.NoError(t, p.Project(db, standardModel(), []int{5, 12}, false))

	entries, err := s.ListDayEntries(db.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for i, day := range []int{5, 12} {
		e := entries[i]
		assert.Equal(t, day, e.ActivityDate.Day())
		assert.Equal(t, 8*time.Hour+30*time.Minute, e.Stop.Sub(e.Start))
		assert.Equal(t, time.Hour, e.Pause)
		assert.False(t, e.Vacation)
		assert.Empty(t, e.Content) // includeContent=false
		assert.Equal(t, 27000, e.ElapsedSeconds())
	}
}

func TestProjectKeepsTimeOfDay(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)

	require.NoError(t, p.Project(db, standardModel(), []int{5}, false))

	e, err := s.GetDayEntry(db.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, e)
	// In UTC there is no seasonal correction: the template's clock time lands
	// unchanged on the target date.
	assert.Equal(t, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), e.Start)
	assert.Equal(t, time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), e.Stop)
}

func TestProjectIncludeContent(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)

	require.NoError(t, p.Project(db, standardModel(), []int{5}, true))

	e, err := s.GetDayEntry(db.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "regular shift", e.Content)
}

func TestProjectUpdatesExistingEntry(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)

	existing := datebook.DayEntry{
		ActivityDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Content:      "old content",
		Start:        time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC),
		Stop:         time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Vacation:     true,
	}
	require.NoError(t, s.SaveDayEntry(db, &existing))

	require.NoError(t, p.Project(db, standardModel(), []int{5}, false))

	entries, err := s.ListDayEntries(db.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1) // update, not duplicate

	e := entries[0]
	assert.Equal(t, existing.ID, e.ID)
	assert.Equal(t, 9, e.Start.Hour())
	assert.Equal(t, 8*time.Hour+30*time.Minute, e.Stop.Sub(e.Start))
	assert.False(t, e.Vacation)                // vacation is forced off
	assert.Equal(t, "old content", e.Content)  // includeContent=false keeps content
}

func TestProjectTwiceIsStable(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)
	model := standardModel()

	require.NoError(t, p.Project(db, model, []int{5}, true))
	require.NoError(t, p.Project(db, model, []int{5}, true))

	entries, err := s.ListDayEntries(db.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "regular shift", entries[0].Content)
	assert.Equal(t, 9, entries[0].Start.Hour())
}

func TestProjectInvalidDayOfMonth(t *testing.T) {
	p, s := newTestProjector(t)
	db, err := s.CreateDatebook("alice", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	err = p.Project(db, standardModel(), []int{15, 31}, false) // April has 30 days
	assert.ErrorIs(t, err, datebook.ErrInvalidDayOfMonth)

	// Nothing was written.
	entries, err := s.ListDayEntries(db.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProjectTouchesDatebookOnce(t *testing.T) {
	p, s := newTestProjector(t)
	db := marchBook(t, s)

	before := db.Modified
	time.Sleep(1100 * time.Millisecond) // second-resolution timestamps

	require.NoError(t, p.Project(db, standardModel(), []int{5, 12}, false))

	fresh, err := s.GetDatebook("alice", db.Period)
	require.NoError(t, err)
	assert.True(t, fresh.Modified.After(before))
}

func TestProjectSeasonalOffset(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}

	p, s := newTestProjector(t)
	p.Location = loc
	db := marchBook(t, s)

	// Paris: +01:00 on Jan 1, +02:00 on Jul 1 -> seasonal delta is -1h.
	assert.Equal(t, -3600, seasonalOffset(2024, loc))

	require.NoError(t, p.Project(db, standardModel(), []int{5}, false))

	e, err := s.GetDayEntry(db.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, e)

	// March 5 is winter: target offset +1h, minus the -1h seasonal delta
	// gives a 2h adjustment subtracted from the naive 09:00 combination.
	assert.Equal(t, time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC), e.Start)
	// The template duration is always preserved.
	assert.Equal(t, 8*time.Hour+30*time.Minute, e.Stop.Sub(e.Start))
}

func TestExpandDaysList(t *testing.T) {
	days, err := ExpandDays("5,12,19", 2024, time.March)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 12, 19}, days)

	days, err = ExpandDays("5, 5, 12", 2024, time.March)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 12}, days)
}

func TestExpandDaysWeekdays(t *testing.T) {
	days, err := ExpandDays("weekdays", 2026, time.February)
	require.NoError(t, err)
	assert.Len(t, days, 20) // 20 weekdays in Feb 2026

	for _, d := range days {
		wd := time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC).Weekday()
		assert.True(t, wd >= time.Monday && wd <= time.Friday, "expected weekday, got %s", wd)
	}
}

func TestExpandDaysEveryMonday(t *testing.T) {
	days, err := ExpandDays("every monday", 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 9, 16, 23}, days)
}

func TestExpandDaysRawRRule(t *testing.T) {
	days, err := ExpandDays("FREQ=WEEKLY;BYDAY=MO,WE", 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 9, 11, 16, 18, 23, 25}, days)
}

func TestExpandDaysInvalid(t *testing.T) {
	_, err := ExpandDays("", 2024, time.March)
	assert.Error(t, err)

	_, err = ExpandDays("sometimes", 2024, time.March)
	assert.Error(t, err)

	_, err = ExpandDays("weekdays", 2024, time.Month(13))
	assert.ErrorIs(t, err, datebook.ErrInvalidPeriod)
}
