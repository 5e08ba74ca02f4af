// Package timeutil provides wall-clock time-of-day values and the
// modulo-1440 arithmetic the schedulers are built on.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the modulus for all time-of-day arithmetic.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock instant expressed as minutes from midnight
// in a fixed local timezone. The zero value is midnight.
type TimeOfDay int

// New builds a TimeOfDay from an hour and minute, wrapping modulo one day.
func New(hour, minute int) TimeOfDay {
	return TimeOfDay(((hour*60+minute)%MinutesPerDay + MinutesPerDay) % MinutesPerDay)
}

// FromTime extracts the time-of-day from a full timestamp.
func FromTime(t time.Time) TimeOfDay {
	return New(t.Hour(), t.Minute())
}

// Parse parses a clock time in 24-hour "HH:MM" form. Whitespace around the
// value is tolerated, as is the legacy 12-hour form with an am/pm suffix
// ("6:30 am", "06:30PM").
func Parse(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	lower := strings.ToLower(s)
	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(lower, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-2])
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	switch meridiem {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("invalid 12-hour time %q", s)
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("invalid 12-hour time %q", s)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("hour out of range in %q", s)
		}
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", s)
	}

	return New(hour, minute), nil
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns the value as minutes from midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String formats the value as 24-hour "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns the time-of-day m minutes later, wrapping across midnight.
// Fractional minutes are truncated, matching schedule event granularity.
func (t TimeOfDay) Add(m float64) TimeOfDay {
	total := (int(t) + int(m)) % MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}
	return TimeOfDay(total)
}

// MinutesUntil returns the number of minutes from t forward to other,
// in [0, 1440). A target equal to t is zero.
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	d := (int(other) - int(t)) % MinutesPerDay
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// After reports whether t is strictly later in the day than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// NextAfter returns the first timestamp with this time-of-day strictly
// after now, in now's location: today if still ahead, otherwise tomorrow.
func (t TimeOfDay) NextAfter(now time.Time) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target
}

// WrapDistance returns the shortest circular distance in minutes between
// two times of day, in [0, 720].
func WrapDistance(a, b TimeOfDay) int {
	d := a.MinutesUntil(b)
	if d > MinutesPerDay/2 {
		d = MinutesPerDay - d
	}
	return d
}
