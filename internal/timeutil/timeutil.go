package timeutil

import (
	"fmt"
	"time"
)

// DurationSeconds converts a clock duration (pause, overtime) to whole
// seconds. Sub-second precision is discarded.
func DurationSeconds(d time.Duration) int {
	return int(d / time.Second)
}

// SecondsBetween returns the elapsed seconds between start and stop, counting
// only whole days and the seconds remainder. Sub-second precision is
// discarded. Negative when stop is before start.
func SecondsBetween(start, stop time.Time) int {
	delta := stop.Sub(start)
	days := int(delta / (24 * time.Hour))
	rem := int(delta % (24 * time.Hour) / time.Second)
	return days*24*60*60 + rem
}

// SecondsToClock formats a second count as "H:MM". Hours are not wrapped, so
// totals of a day or more read as 24 hours and up. The seconds remainder is
// dropped from the display. Negative counts use floor division, keeping the
// minutes in 0-59 with the sign carried by the hours.
func SecondsToClock(seconds int) string {
	m := floorDiv(seconds, 60)
	h := floorDiv(m, 60)
	return fmt.Sprintf("%d:%02d", h, m-h*60)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
