package shift

import "time"

// ShortLeave is an approved partial-day absence as the engine sees it: a
// wall-clock start on the attendance day and a duration. Start may be nil for
// legacy records that only stored a duration.
type ShortLeave struct {
	Start *Clock
	Hours float64
}

func (s ShortLeave) duration() time.Duration {
	return time.Duration(s.Hours * float64(time.Hour))
}

// Interval anchors the short leave to the attendance day of the given window.
// The zero interval is returned when the leave has no start time.
func (s ShortLeave) Interval(w Window) (from, to time.Time) {
	if s.Start == nil {
		return time.Time{}, time.Time{}
	}
	from = s.Start.At(w.Start)
	return from, from.Add(s.duration())
}

// AdjustGrace shifts the effective start and grace cutoff forward when an
// approved short leave covers the start of the shift. An employee excused from
// the first hours of their shift is simply present when arriving before the
// excused leave ends, not graced or late. A short leave starting after the
// shift start leaves the window untouched.
func AdjustGrace(w Window, sl *ShortLeave) Window {
	if sl == nil || sl.Start == nil {
		return w
	}
	from, to := sl.Interval(w)
	if from.After(w.Start) {
		return w
	}
	if to.After(w.Start) {
		w.Start = to
	}
	if to.After(w.GraceCutoff) {
		w.GraceCutoff = to
	}
	return w
}
