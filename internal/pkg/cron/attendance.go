package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/locker"
	"github.com/stafflane/backoffice-go/internal/pkg/metrics"
)

const autoCheckoutLockKey = "cron:auto_checkout"

// AttendanceJobs closes out attendance records whose shift has ended without
// a recorded checkout. The sweep is best-effort per record and never aborts
// on individual failures.
type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	configRepo     schedule.ConfigRepository
	shortLeaveRepo leave.ShortLeaveRepository
	locker         *locker.Locker
	policy         shift.Policy
	loc            *time.Location
	nowFn          func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	configRepo schedule.ConfigRepository,
	shortLeaveRepo leave.ShortLeaveRepository,
	lk *locker.Locker,
	policy shift.Policy,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		configRepo:     configRepo,
		shortLeaveRepo: shortLeaveRepo,
		locker:         lk,
		policy:         policy,
		loc:            loc,
		nowFn:          time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_checkout_open_records", 1*time.Hour, j.AutoCheckout)
}

// AutoCheckout is the default sweep: yesterday's open records only.
// Night-shift records anchored to yesterday are deliberately left open for a
// manual checkout; their window can legitimately still be running.
func (j *AttendanceJobs) AutoCheckout(ctx context.Context) error {
	return j.runLocked(ctx, false)
}

// Backfill sweeps every open record regardless of age, including night
// shifts. Intended for operator-triggered catch-up after an outage.
func (j *AttendanceJobs) Backfill(ctx context.Context) error {
	return j.runLocked(ctx, true)
}

func (j *AttendanceJobs) runLocked(ctx context.Context, backfill bool) error {
	// A new sweep must not start while a previous one is still writing.
	acquired, err := j.locker.Acquire(ctx, autoCheckoutLockKey, 30*time.Minute)
	if err != nil {
		return err
	}
	if !acquired {
		slog.Info("Cron: auto-checkout already running elsewhere, skipping")
		return nil
	}
	defer func() { _ = j.locker.Release(ctx, autoCheckoutLockKey) }()

	nowLocal := j.nowFn().In(j.loc)

	var records []attendance.Record
	if backfill {
		records, err = j.attendanceRepo.ListOpen(ctx)
	} else {
		yesterday := shift.DateOf(nowLocal).AddDate(0, 0, -1)
		records, err = j.attendanceRepo.ListOpenByAnchor(ctx, yesterday)
	}
	if err != nil {
		return err
	}

	closed, failed := j.sweep(ctx, records, nowLocal, backfill)
	slog.Info("Cron: auto-checkout sweep finished", "closed", closed, "failed", failed, "scanned", len(records), "backfill", backfill)
	return nil
}

func (j *AttendanceJobs) sweep(ctx context.Context, records []attendance.Record, nowLocal time.Time, backfill bool) (closed, failed int) {
	for _, rec := range records {
		if rec.CheckIn == nil {
			continue
		}
		if !backfill && rec.ShiftKind == shift.KindNight {
			continue
		}

		ok, err := j.closeRecord(ctx, rec, nowLocal)
		if err != nil {
			slog.Error("Cron: failed to auto-close attendance",
				"record_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			metrics.AutoCheckoutsFailed.Inc()
			failed++
			continue
		}
		if ok {
			metrics.AutoCheckoutsClosed.Inc()
			closed++
		}
	}
	return closed, failed
}

// closeRecord writes a system checkout at the record's window end, once the
// auto-close grace past the end has elapsed. Returns false when it is still
// too early to close.
func (j *AttendanceJobs) closeRecord(ctx context.Context, rec attendance.Record, nowLocal time.Time) (bool, error) {
	anchor := shift.Rebase(rec.AnchorDate, j.loc)

	w, haveSnapshot := rec.SnapshotWindow()
	if !haveSnapshot {
		// Legacy records without a snapshot get the config that was in effect
		// when the employee checked in, not whatever is current.
		cfg, err := j.configRepo.GetEffective(ctx, rec.CompanyID, rec.ShiftKind, *rec.CheckIn)
		if err != nil {
			return false, err
		}
		w, err = shift.ComputeWindow(cfg.Config(), rec.ShiftKind, anchor, nowLocal, j.policy)
		if err != nil {
			return false, err
		}
	}

	if !nowLocal.After(w.End.Add(j.policy.AutoCloseGrace)) {
		return false, nil
	}

	// Closing without the leave would overstate worked minutes, so a failed
	// lookup fails the record and the next sweep retries it.
	sl, err := j.shortLeaveRepo.GetApprovedForDate(ctx, rec.EmployeeID, anchor, rec.CompanyID)
	if err != nil {
		return false, fmt.Errorf("failed to get short leave for auto-close: %w", err)
	}
	engineLeave := toEngineShortLeave(sl)

	checkOutAt := w.End
	totals := shift.DayTotals(w, *rec.CheckIn, checkOutAt, engineLeave)

	worked := int(totals.Worked.Minutes())
	late := int(totals.Late.Minutes())
	graced := int(totals.Graced.Minutes())
	overtime := int(totals.Overtime.Minutes())

	rec.CheckOut = &checkOutAt
	rec.AutoClosed = true
	rec.WorkedMinutes = &worked
	rec.LateMinutes = &late
	rec.GracedMinutes = &graced
	rec.OvertimeMinutes = &overtime

	if err := j.attendanceRepo.SetCheckOut(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

func toEngineShortLeave(sl *leave.ShortLeave) *shift.ShortLeave {
	if sl == nil {
		return nil
	}
	out := &shift.ShortLeave{Hours: sl.DurationHours}
	if sl.StartTime != nil {
		if c, err := shift.ParseClock(*sl.StartTime); err == nil {
			out.Start = &c
		}
	}
	return out
}
