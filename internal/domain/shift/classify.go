package shift

import "time"

// Status classifies a check-in against the (possibly grace-adjusted) window.
type Status string

const (
	StatusPresent Status = "present"
	StatusGraced  Status = "graced"
	StatusLate    Status = "late"
)

// ClassifyCheckIn classifies one check-in instant. Callers must skip this and
// keep the stored status when a human has manually overridden the record.
func ClassifyCheckIn(w Window, checkIn time.Time) Status {
	switch {
	case checkIn.After(w.GraceCutoff):
		return StatusLate
	case checkIn.After(w.Start):
		return StatusGraced
	default:
		return StatusPresent
	}
}

// Totals are the derived durations for one completed attendance day. At most
// one of Late and Graced is non-zero, matching the check-in classification.
type Totals struct {
	Worked   time.Duration
	Late     time.Duration
	Graced   time.Duration
	Overtime time.Duration
}

// DayTotals computes worked, late, graced and overtime durations for a
// completed day. The short-leave overlap with [checkIn, checkOut] is
// subtracted from worked time; a leave without a start time falls back to
// subtracting its full duration. Worked time never goes negative and never
// exceeds the raw checkOut-checkIn span.
func DayTotals(w Window, checkIn, checkOut time.Time, sl *ShortLeave) Totals {
	var t Totals

	// Late and graced spans are measured against the leave-adjusted window,
	// matching the check-in classification. Adjusting an already-adjusted
	// window is a no-op.
	w = AdjustGrace(w, sl)

	worked := checkOut.Sub(checkIn)
	if worked < 0 {
		worked = 0
	}
	if sl != nil {
		if sl.Start != nil {
			from, to := sl.Interval(w)
			worked -= overlap(checkIn, checkOut, from, to)
		} else {
			worked -= sl.duration()
		}
		if worked < 0 {
			worked = 0
		}
	}
	t.Worked = worked

	if checkIn.After(w.GraceCutoff) {
		t.Late = checkIn.Sub(w.GraceCutoff)
	} else if checkIn.After(w.Start) {
		t.Graced = checkIn.Sub(w.Start)
	}

	if checkOut.After(w.End) {
		t.Overtime = checkOut.Sub(w.End)
	}

	return t
}

// overlap returns the length of the intersection of [aFrom, aTo] and
// [bFrom, bTo], never negative.
func overlap(aFrom, aTo, bFrom, bTo time.Time) time.Duration {
	from := aFrom
	if bFrom.After(from) {
		from = bFrom
	}
	to := aTo
	if bTo.Before(to) {
		to = bTo
	}
	if to.Before(from) {
		return 0
	}
	return to.Sub(from)
}
