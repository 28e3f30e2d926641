package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, jakarta)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, jakarta)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{"09:00", Clock{9, 0}, false},
		{"9:05", Clock{9, 5}, false},
		{"22:30", Clock{22, 30}, false},
		{"18:00:00", Clock{18, 0}, false},
		{"24:00", Clock{}, true},
		{"09:60", Clock{}, true},
		{"0900", Clock{}, true},
		{"", Clock{}, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidClock, "input %q", c.input)
			continue
		}
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got, "input %q", c.input)
	}
}

func TestComputeWindow_DayShift(t *testing.T) {
	cfg := Config{Start: "09:00", Grace: "09:15", End: "18:00"}
	anchor := date(2025, time.March, 10)
	now := at(2025, time.March, 10, 8, 30)

	w, err := ComputeWindow(cfg, KindDay, anchor, now, DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, at(2025, time.March, 10, 8, 0), w.EarliestAllowed)
	assert.Equal(t, at(2025, time.March, 10, 9, 0), w.Start)
	assert.Equal(t, at(2025, time.March, 10, 9, 15), w.GraceCutoff)
	assert.Equal(t, at(2025, time.March, 10, 18, 0), w.End)
	assert.Equal(t, at(2025, time.March, 10, 19, 0), w.LatestCheckout)

	// A day shift never ends on a later calendar date than it starts.
	assert.Equal(t, DateOf(w.Start), DateOf(w.End))
}

func TestComputeWindow_DayShift_CheckoutCeiling(t *testing.T) {
	cfg := Config{Start: "13:00", End: "21:30"}
	anchor := date(2025, time.March, 10)

	w, err := ComputeWindow(cfg, KindDay, anchor, at(2025, time.March, 10, 14, 0), DefaultPolicy())
	require.NoError(t, err)

	// end+1 would be 22:30, capped at the 22:00 ceiling hour.
	assert.Equal(t, at(2025, time.March, 10, 22, 30), w.LatestCheckout)
	assert.Equal(t, 22, w.LatestCheckout.Hour())
}

func TestComputeWindow_DayShift_GraceDefaultsToStart(t *testing.T) {
	cfg := Config{Start: "09:00", End: "18:00"}
	w, err := ComputeWindow(cfg, KindDay, date(2025, time.March, 10), at(2025, time.March, 10, 9, 0), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, w.Start, w.GraceCutoff)
}

func TestComputeWindow_NightShift_CrossesMidnight(t *testing.T) {
	cfg := Config{Start: "22:00", Grace: "22:15", End: "06:00"}
	anchor := date(2025, time.March, 10)
	now := at(2025, time.March, 10, 21, 30)

	w, err := ComputeWindow(cfg, KindNight, anchor, now, DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, at(2025, time.March, 10, 21, 0), w.EarliestAllowed)
	assert.Equal(t, at(2025, time.March, 10, 22, 0), w.Start)
	assert.Equal(t, at(2025, time.March, 11, 6, 0), w.End)

	// A cross-midnight end is exactly one calendar day after the start.
	assert.Equal(t, DateOf(w.Start).AddDate(0, 0, 1), DateOf(w.End))
}

func TestComputeWindow_NightShift_LatestCheckout(t *testing.T) {
	cfg := Config{Start: "22:00", End: "06:00"}
	anchor := date(2025, time.March, 10)

	// In the early-morning tail the boundary is end+1h on the next day.
	w, err := ComputeWindow(cfg, KindNight, anchor, at(2025, time.March, 11, 5, 30), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, at(2025, time.March, 11, 7, 0), w.LatestCheckout)

	// In the evening the record stays open only until the date rolls over.
	w, err = ComputeWindow(cfg, KindNight, anchor, at(2025, time.March, 10, 23, 0), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 11), w.LatestCheckout)
}

func TestComputeWindow_RejectsUnknownKind(t *testing.T) {
	_, err := ComputeWindow(Config{Start: "09:00", End: "18:00"}, Kind("swing"), date(2025, time.March, 10), at(2025, time.March, 10, 9, 0), DefaultPolicy())
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestComputeWindow_InvalidConfig(t *testing.T) {
	_, err := ComputeWindow(Config{Start: "9am", End: "18:00"}, KindDay, date(2025, time.March, 10), at(2025, time.March, 10, 9, 0), DefaultPolicy())
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestResolveAnchor_DayShift(t *testing.T) {
	cfg := Config{Start: "09:00", End: "18:00"}
	anchor, err := ResolveAnchor(cfg, KindDay, at(2025, time.March, 10, 14, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), anchor)
}

func TestResolveAnchor_NightShift(t *testing.T) {
	cfg := Config{Start: "22:00", End: "06:00"}

	// A check-in at 23:00 belongs to that calendar day.
	anchor, err := ResolveAnchor(cfg, KindNight, at(2025, time.March, 10, 23, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), anchor)

	// An action at 02:00 the next morning belongs to the previous day.
	anchor, err = ResolveAnchor(cfg, KindNight, at(2025, time.March, 11, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), anchor)

	// Past the end-hour tail the action anchors to its own date again.
	anchor, err = ResolveAnchor(cfg, KindNight, at(2025, time.March, 11, 7, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 11), anchor)
}

func TestResolveAnchor_Idempotent(t *testing.T) {
	cfg := Config{Start: "22:00", End: "06:00"}
	instants := []time.Time{
		at(2025, time.March, 10, 23, 0),
		at(2025, time.March, 11, 2, 0),
		at(2025, time.March, 11, 6, 0),
		at(2025, time.March, 11, 12, 0),
	}
	for _, now := range instants {
		first, err := ResolveAnchor(cfg, KindNight, now)
		require.NoError(t, err)
		second, err := ResolveAnchor(cfg, KindNight, now)
		require.NoError(t, err)
		assert.Equal(t, first, second, "now %v", now)
	}
}

func TestCheckoutAnchorCandidates(t *testing.T) {
	dayCfg := Config{Start: "09:00", End: "18:00"}
	candidates, err := CheckoutAnchorCandidates(dayCfg, KindDay, at(2025, time.March, 10, 18, 30))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, date(2025, time.March, 10), candidates[0])
	assert.Equal(t, date(2025, time.March, 9), candidates[1])

	// Night-shift tail: yesterday's attendance day is probed first.
	nightCfg := Config{Start: "22:00", End: "06:00"}
	candidates, err = CheckoutAnchorCandidates(nightCfg, KindNight, at(2025, time.March, 11, 5, 0))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, date(2025, time.March, 10), candidates[0])
	assert.Equal(t, date(2025, time.March, 11), candidates[1])
}

func TestCrossesMidnight(t *testing.T) {
	crosses, err := (Config{Start: "22:00", End: "06:00"}).CrossesMidnight()
	require.NoError(t, err)
	assert.True(t, crosses)

	crosses, err = (Config{Start: "09:00", End: "18:00"}).CrossesMidnight()
	require.NoError(t, err)
	assert.False(t, crosses)
}
