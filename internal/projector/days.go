package projector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sveetch/datebook/internal/datebook"
)

// ExpandDays resolves a target-day expression for the given month into a
// sorted list of day-of-month numbers. The expression is either a comma
// separated day list ("5,12,19") or a recurrence ("weekdays", "every monday",
// "FREQ=WEEKLY;BYDAY=MO,WE") expanded within the month.
func ExpandDays(expr string, year int, month time.Month) ([]int, error) {
	if !datebook.ValidPeriod(year, month) {
		return nil, fmt.Errorf("%w: %d-%d", datebook.ErrInvalidPeriod, year, int(month))
	}

	expr = strings.TrimSpace(strings.ToLower(expr))
	if expr == "" {
		return nil, fmt.Errorf("empty day expression")
	}

	if days, ok := parseDayList(expr, year, month); ok {
		return days, nil
	}

	r, err := parseRecurrence(expr)
	if err != nil {
		return nil, err
	}

	opts := r.OrigOptions
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, month, datebook.DaysIn(year, month), 23, 59, 59, 0, time.UTC)
	opts.Dtstart = from
	r, err = rrule.NewRRule(opts)
	if err != nil {
		return nil, err
	}

	var days []int
	for _, d := range r.Between(from, to, true) {
		days = append(days, d.Day())
	}
	return days, nil
}

func parseDayList(expr string, year int, month time.Month) ([]int, bool) {
	parts := strings.Split(expr, ",")
	days := make([]int, 0, len(parts))
	seen := make(map[int]bool)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		if !seen[n] {
			seen[n] = true
			days = append(days, n)
		}
	}
	return days, true
}

// parseRecurrence parses a natural language or raw RRULE recurrence string.
func parseRecurrence(s string) (*rrule.RRule, error) {
	if strings.HasPrefix(s, "freq=") || strings.HasPrefix(s, "rrule:") {
		raw := strings.ToUpper(s)
		raw = strings.TrimPrefix(raw, "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every day", "daily":
		return rrule.NewRRule(rrule.ROption{
			Freq: rrule.DAILY,
		})

	case "every weekday", "weekdays":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		})

	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	if strings.HasPrefix(s, "every ") {
		if wd, ok := rruleWeekdays[strings.TrimPrefix(s, "every ")]; ok {
			return rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{wd},
			})
		}
	}

	return nil, fmt.Errorf("unrecognized day expression %q", s)
}

var rruleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}
