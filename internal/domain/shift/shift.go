package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects which admin-configured working-hours block applies to an
// employee.
type Kind string

const (
	KindDay   Kind = "day"
	KindNight Kind = "night"
)

// Config is one working-hours block as configured by the admin. All fields
// are wall-clock "HH:mm" strings with no date attached. An End that is
// numerically before Start means the shift crosses midnight; that is a valid
// configuration, not an error.
type Config struct {
	Start string
	Grace string
	End   string
}

// Clock is a wall-clock time of day. Comparisons between clocks on the two
// sides of midnight must go through anchored instants (see Window), never
// through raw tuple comparison of unanchored values.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:mm" (or "HH:mm:ss", seconds ignored).
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// At anchors the clock to a calendar date, in that date's location.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// parsed holds the three clocks of a Config. Grace falls back to Start when
// unset, which means no grace period.
type parsed struct {
	start Clock
	grace Clock
	end   Clock
}

func (c Config) parse() (parsed, error) {
	start, err := ParseClock(c.Start)
	if err != nil {
		return parsed{}, fmt.Errorf("shift start: %w", err)
	}
	end, err := ParseClock(c.End)
	if err != nil {
		return parsed{}, fmt.Errorf("shift end: %w", err)
	}
	grace := start
	if strings.TrimSpace(c.Grace) != "" {
		grace, err = ParseClock(c.Grace)
		if err != nil {
			return parsed{}, fmt.Errorf("shift grace: %w", err)
		}
	}
	return parsed{start: start, grace: grace, end: end}, nil
}

// CrossesMidnight reports whether the configured end-of-shift falls on the
// calendar day after the start.
func (c Config) CrossesMidnight() (bool, error) {
	p, err := c.parse()
	if err != nil {
		return false, err
	}
	return p.end.Hour < p.start.Hour, nil
}

// DateOf truncates an instant to midnight of its calendar date, preserving
// the location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Rebase re-anchors a calendar date to midnight in the given location. Dates
// loaded from storage carry the driver's zone; the calendar day they name
// must not shift when moving them into the org timezone.
func Rebase(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
