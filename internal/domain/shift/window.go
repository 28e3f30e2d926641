package shift

import (
	"fmt"
	"time"
)

// Policy holds the org-level boundary constants around a shift. They are
// deliberate policy choices, not values derivable from the shift config, so
// they live in configuration rather than as literals at the call sites.
type Policy struct {
	// DayEarliestHour is the fixed floor for day-shift check-ins (hour of the
	// anchor date).
	DayEarliestHour int
	// DayLatestExtraHour is added to the day-shift end hour for the checkout
	// ceiling, capped at DayLatestCeilingHour.
	DayLatestExtraHour   int
	DayLatestCeilingHour int
	// NightLeadInHours is how long before the configured start a night-shift
	// check-in opens.
	NightLeadInHours int
	// AutoCloseGrace is how long past the window end the auto-checkout sweep
	// waits before closing an open record.
	AutoCloseGrace time.Duration
}

// DefaultPolicy mirrors the long-standing org defaults: day check-in opens at
// 08:00, day checkout closes one hour after shift end but never later than
// 22:00, night check-in opens one hour before start, auto-close waits one
// hour.
func DefaultPolicy() Policy {
	return Policy{
		DayEarliestHour:      8,
		DayLatestExtraHour:   1,
		DayLatestCeilingHour: 22,
		NightLeadInHours:     1,
		AutoCloseGrace:       time.Hour,
	}
}

// Window is the set of effective instants for one attendance day. It is
// derived, never persisted as-is, and recomputed on every evaluation so that
// config edits take effect immediately for new actions.
type Window struct {
	// EarliestAllowed is the first instant a check-in is accepted.
	EarliestAllowed time.Time
	// Start is the configured shift start anchored to the attendance day.
	Start time.Time
	// GraceCutoff is the latest instant a check-in is tolerated without being
	// late. A short leave covering the start of the shift may push it later,
	// see AdjustGrace.
	GraceCutoff time.Time
	// End is the configured shift end; for a cross-midnight shift it falls on
	// the calendar day after Start.
	End time.Time
	// LatestCheckout is the last instant a check-out is accepted.
	LatestCheckout time.Time
}

// ComputeWindow derives the effective window for one attendance day. anchor
// must be a midnight-truncated date in the org timezone; now is only consulted
// for the night-shift checkout boundary, which depends on which side of
// midnight the caller is on.
//
// Every clock is anchored to the anchor date before any comparison. The only
// place a value moves to the next calendar day is the explicit cross-midnight
// branch, so instants on the two sides of midnight are never compared through
// bare clock tuples.
func ComputeWindow(cfg Config, kind Kind, anchor time.Time, now time.Time, p Policy) (Window, error) {
	pc, err := cfg.parse()
	if err != nil {
		return Window{}, err
	}

	w := Window{
		Start:       pc.start.At(anchor),
		GraceCutoff: pc.grace.At(anchor),
	}

	crosses := pc.end.Hour < pc.start.Hour
	if crosses {
		w.End = pc.end.At(anchor.AddDate(0, 0, 1))
	} else {
		w.End = pc.end.At(anchor)
	}

	switch kind {
	case KindDay:
		w.EarliestAllowed = Clock{Hour: p.DayEarliestHour}.At(anchor)

		latestHour := pc.end.Hour + p.DayLatestExtraHour
		if latestHour > p.DayLatestCeilingHour {
			latestHour = p.DayLatestCeilingHour
		}
		w.LatestCheckout = Clock{Hour: latestHour, Minute: pc.end.Minute}.At(anchor)

	case KindNight:
		leadHour := pc.start.Hour - p.NightLeadInHours
		if leadHour < 0 {
			leadHour = 0
		}
		w.EarliestAllowed = Clock{Hour: leadHour}.At(anchor)

		if crosses {
			// In the early-morning tail the checkout boundary sits one hour
			// past the end, on the day after the anchor. Outside the tail the
			// record can only be closed until the anchor date rolls over.
			if now.In(anchor.Location()).Hour() <= pc.end.Hour+1 {
				w.LatestCheckout = Clock{Hour: pc.end.Hour + 1, Minute: pc.end.Minute}.At(anchor.AddDate(0, 0, 1))
			} else {
				w.LatestCheckout = anchor.AddDate(0, 0, 1)
			}
		} else {
			w.LatestCheckout = Clock{Hour: pc.end.Hour + 1, Minute: pc.end.Minute}.At(anchor)
		}

	default:
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	return w, nil
}

// ResolveAnchor determines which calendar date an action taken at now belongs
// to. For a cross-midnight night shift an action in the early-morning tail
// (between midnight and the configured end hour, inclusive) belongs to the
// previous day's shift. Resolution is idempotent: the same instant always
// yields the same anchor.
func ResolveAnchor(cfg Config, kind Kind, now time.Time) (time.Time, error) {
	pc, err := cfg.parse()
	if err != nil {
		return time.Time{}, err
	}

	date := DateOf(now)
	if kind == KindNight && pc.end.Hour < pc.start.Hour && now.Hour() <= pc.end.Hour {
		return date.AddDate(0, 0, -1), nil
	}
	return date, nil
}

// CheckoutAnchorCandidates lists the attendance days a check-out should probe
// for an open record, in probing order. The resolved anchor comes first; the
// neighbouring day covers a day-shift record left open overnight and the
// night-shift record of the evening before.
func CheckoutAnchorCandidates(cfg Config, kind Kind, now time.Time) ([]time.Time, error) {
	primary, err := ResolveAnchor(cfg, kind, now)
	if err != nil {
		return nil, err
	}

	today := DateOf(now)
	candidates := []time.Time{primary}
	for _, d := range []time.Time{today, today.AddDate(0, 0, -1)} {
		if !d.Equal(primary) {
			candidates = append(candidates, d)
		}
	}
	return candidates, nil
}
