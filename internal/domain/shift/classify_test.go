package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayWindow(t *testing.T) Window {
	t.Helper()
	cfg := Config{Start: "09:00", Grace: "09:15", End: "18:00"}
	w, err := ComputeWindow(cfg, KindDay, date(2025, time.March, 10), at(2025, time.March, 10, 9, 0), DefaultPolicy())
	require.NoError(t, err)
	return w
}

func TestClassifyCheckIn(t *testing.T) {
	w := dayWindow(t)

	cases := []struct {
		name    string
		checkIn time.Time
		want    Status
	}{
		{"before start", at(2025, time.March, 10, 8, 50), StatusPresent},
		{"exactly at start", at(2025, time.March, 10, 9, 0), StatusPresent},
		{"inside grace", at(2025, time.March, 10, 9, 10), StatusGraced},
		{"exactly at cutoff", at(2025, time.March, 10, 9, 15), StatusGraced},
		{"past cutoff", at(2025, time.March, 10, 9, 20), StatusLate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyCheckIn(w, c.checkIn))
		})
	}
}

// Classification only ever moves forward as the check-in gets later: a later
// arrival can never improve the status.
func TestClassifyCheckIn_Monotonic(t *testing.T) {
	w := dayWindow(t)
	rank := map[Status]int{StatusPresent: 0, StatusGraced: 1, StatusLate: 2}

	prev := StatusPresent
	for minute := 0; minute < 120; minute++ {
		status := ClassifyCheckIn(w, at(2025, time.March, 10, 8, 30).Add(time.Duration(minute)*time.Minute))
		assert.GreaterOrEqual(t, rank[status], rank[prev], "minute %d", minute)
		prev = status
	}
}

func TestDayTotals_PlainDay(t *testing.T) {
	w := dayWindow(t)

	totals := DayTotals(w, at(2025, time.March, 10, 9, 0), at(2025, time.March, 10, 18, 0), nil)
	assert.Equal(t, 9*time.Hour, totals.Worked)
	assert.Zero(t, totals.Late)
	assert.Zero(t, totals.Graced)
	assert.Zero(t, totals.Overtime)
}

func TestDayTotals_LateAndOvertime(t *testing.T) {
	w := dayWindow(t)

	totals := DayTotals(w, at(2025, time.March, 10, 9, 45), at(2025, time.March, 10, 19, 30), nil)
	assert.Equal(t, 9*time.Hour+45*time.Minute, totals.Worked)
	assert.Equal(t, 30*time.Minute, totals.Late)
	assert.Zero(t, totals.Graced)
	assert.Equal(t, 90*time.Minute, totals.Overtime)
}

func TestDayTotals_Graced(t *testing.T) {
	w := dayWindow(t)

	totals := DayTotals(w, at(2025, time.March, 10, 9, 10), at(2025, time.March, 10, 18, 0), nil)
	assert.Zero(t, totals.Late)
	assert.Equal(t, 10*time.Minute, totals.Graced)
}

func TestAdjustGrace_ShortLeaveCoversShiftStart(t *testing.T) {
	w := dayWindow(t)
	sl := &ShortLeave{Start: &Clock{Hour: 9}, Hours: 2}

	adjusted := AdjustGrace(w, sl)
	assert.Equal(t, at(2025, time.March, 10, 11, 0), adjusted.Start)
	assert.Equal(t, at(2025, time.March, 10, 11, 0), adjusted.GraceCutoff)

	// 10:30 arrival is inside the excused interval: plain present, and the
	// arrival after the nominal 09:00 start accrues no graced time.
	assert.Equal(t, StatusPresent, ClassifyCheckIn(adjusted, at(2025, time.March, 10, 10, 30)))

	totals := DayTotals(w, at(2025, time.March, 10, 10, 30), at(2025, time.March, 10, 18, 0), sl)
	assert.Zero(t, totals.Graced)
	assert.Zero(t, totals.Late)
}

func TestAdjustGrace_LeaveAfterShiftStart(t *testing.T) {
	w := dayWindow(t)
	sl := &ShortLeave{Start: &Clock{Hour: 14}, Hours: 2}

	adjusted := AdjustGrace(w, sl)
	assert.Equal(t, w.GraceCutoff, adjusted.GraceCutoff)
}

func TestAdjustGrace_NoStartTime(t *testing.T) {
	w := dayWindow(t)
	assert.Equal(t, w, AdjustGrace(w, &ShortLeave{Hours: 2}))
	assert.Equal(t, w, AdjustGrace(w, nil))
}

func TestDayTotals_ShortLeaveOverlap(t *testing.T) {
	w := dayWindow(t)
	sl := &ShortLeave{Start: &Clock{Hour: 9}, Hours: 2}

	// Arrived 10:30 during a 09:00-11:00 short leave, left 18:00. The worked
	// span overlaps the leave by 30 minutes.
	totals := DayTotals(AdjustGrace(w, sl), at(2025, time.March, 10, 10, 30), at(2025, time.March, 10, 18, 0), sl)
	assert.Equal(t, 7*time.Hour, totals.Worked)
	assert.Zero(t, totals.Late)
}

func TestDayTotals_ShortLeaveWithoutStartFallsBackToFullDuration(t *testing.T) {
	w := dayWindow(t)
	sl := &ShortLeave{Hours: 2}

	totals := DayTotals(w, at(2025, time.March, 10, 9, 0), at(2025, time.March, 10, 18, 0), sl)
	assert.Equal(t, 7*time.Hour, totals.Worked)
}

func TestDayTotals_NeverNegativeAndNeverExceedsRawSpan(t *testing.T) {
	w := dayWindow(t)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		sl       *ShortLeave
	}{
		{"leave longer than worked span", at(2025, time.March, 10, 9, 0), at(2025, time.March, 10, 10, 0), &ShortLeave{Start: &Clock{Hour: 9}, Hours: 8}},
		{"no-start leave longer than span", at(2025, time.March, 10, 9, 0), at(2025, time.March, 10, 10, 0), &ShortLeave{Hours: 8}},
		{"checkout before checkin", at(2025, time.March, 10, 18, 0), at(2025, time.March, 10, 9, 0), nil},
		{"disjoint leave", at(2025, time.March, 10, 13, 0), at(2025, time.March, 10, 18, 0), &ShortLeave{Start: &Clock{Hour: 9}, Hours: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			totals := DayTotals(w, c.checkIn, c.checkOut, c.sl)
			raw := c.checkOut.Sub(c.checkIn)
			if raw < 0 {
				raw = 0
			}
			assert.GreaterOrEqual(t, totals.Worked, time.Duration(0))
			assert.LessOrEqual(t, totals.Worked, raw)
		})
	}
}
