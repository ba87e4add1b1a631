package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay represents a clock time without a date component.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// String returns TimeOfDay in "HH:MM" format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day onto the given date in the given location.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, loc)
}

var (
	// 9:30am, 9:30pm
	timeColonAMPM = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)$`)
	// 9am, 2pm
	timeAMPM = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)$`)
	// 14:00, 09:30
	time24h = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

	durationRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)
)

// ParseTimeOfDay parses a time string into a TimeOfDay.
// Supported formats: "9:30am", "9am", "14:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if m := timeColonAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], m[2], m[3])
	}

	if m := timeAMPM.FindStringSubmatch(s); m != nil {
		return parseHourMinuteAMPM(m[1], "0", m[2])
	}

	if m := time24h.FindStringSubmatch(s); m != nil {
		return parseHourMinute24(m[1], m[2])
	}

	return TimeOfDay{}, fmt.Errorf("unrecognized time format %q", s)
}

// ParseClockDuration parses a human-friendly duration string.
// Supported formats: "30m", "3h", "3h30m". Zero is allowed ("0m"),
// negative values are not expressible.
func ParseClockDuration(s string) (time.Duration, error) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format %q (expected e.g. 30m, 3h, 3h30m)", s)
	}

	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])

	return time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute, nil
}

func parseHourMinuteAMPM(hourStr, minStr, ampm string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, err
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, err
	}

	if hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range for 12-hour format", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	if ampm == "am" {
		if hour == 12 {
			hour = 0
		}
	} else {
		if hour != 12 {
			hour += 12
		}
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func parseHourMinute24(hourStr, minStr string) (TimeOfDay, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return TimeOfDay{}, err
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return TimeOfDay{}, err
	}

	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range", minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}
