// Package sampler draws uniformly distributed, sorted times of day inside a
// window.
package sampler

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// ErrNegativeWindow is returned when a window ends before it starts.
var ErrNegativeWindow = errors.New("window end is before start")

// Day is the length of a time-of-day range.
const Day = 24 * time.Hour

// TimeWindow is a time-of-day range. Start is measured from midnight.
type TimeWindow struct {
	Start    time.Duration
	Duration time.Duration
}

// NewTimeWindow builds the window [start, end]. Both ends are times of day, so
// start+offset never passes end and cannot cross midnight.
func NewTimeWindow(start, end time.Duration) (TimeWindow, error) {
	if start < 0 || start >= Day {
		return TimeWindow{}, fmt.Errorf("start %v is not a time of day", start)
	}
	if end < 0 || end >= Day {
		return TimeWindow{}, fmt.Errorf("end %v is not a time of day", end)
	}
	if end < start {
		return TimeWindow{}, fmt.Errorf("%w: %s > %s", ErrNegativeWindow, FormatTimeOfDay(start), FormatTimeOfDay(end))
	}
	return TimeWindow{Start: start, Duration: end - start}, nil
}

// End returns the last reachable time of day.
func (w TimeWindow) End() time.Duration {
	return w.Start + w.Duration
}

// ParseTimeOfDay parses an ISO-8601 time of day: HH:MM, HH:MM:SS or
// HH:MM:SS.fff (up to nanosecond fractions).
func ParseTimeOfDay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if strings.Count(s, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond()), nil
}

// FormatTimeOfDay renders a time of day as HH:MM:SS.mmm.
func FormatTimeOfDay(d time.Duration) string {
	return time.Time{}.Add(d).Format("15:04:05.000")
}

// OffsetMillis draws a whole number of milliseconds uniformly from
// [0, d] inclusive. Sub-millisecond remainders of d are dropped.
func OffsetMillis(rng *rand.Rand, d time.Duration) time.Duration {
	total := d.Milliseconds()
	if total <= 0 {
		return 0
	}
	return time.Duration(rng.Int64N(total+1)) * time.Millisecond
}

// TimeOfDay draws a random time of day inside the window.
func TimeOfDay(rng *rand.Rand, w TimeWindow) time.Duration {
	return w.Start + OffsetMillis(rng, w.Duration)
}

// InsertSorted inserts v into the ascending slice s at the leftmost position
// whose element is >= v.
func InsertSorted[T cmp.Ordered](s []T, v T) []T {
	i, _ := slices.BinarySearch(s, v)
	return slices.Insert(s, i, v)
}

// Sample draws count times of day from the window and returns them ascending.
func Sample(rng *rand.Rand, w TimeWindow, count int) []time.Duration {
	if count <= 0 {
		return nil
	}
	out := make([]time.Duration, 0, count)
	for i := 0; i < count; i++ {
		out = InsertSorted(out, TimeOfDay(rng, w))
	}
	return out
}

// On places a time of day on the calendar date of day, in day's location.
func On(day time.Time, tod time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, int(tod), day.Location())
}
