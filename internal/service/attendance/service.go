package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/domain/employee"
	"github.com/stafflane/backoffice-go/internal/domain/event"
	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
	"github.com/stafflane/backoffice-go/internal/pkg/metrics"
	"github.com/stafflane/backoffice-go/internal/repository/postgresql"
)

// Service is the check-in/check-out workflow plus the admin operations on
// attendance records.
type Service interface {
	CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error)
	CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error)
	GetMyRecords(ctx context.Context, filter attendance.RangeFilter) ([]attendance.RecordResponse, error)
	ManualCreate(ctx context.Context, req attendance.ManualCreateRequest) (attendance.RecordResponse, error)
	OverrideStatus(ctx context.Context, req attendance.OverrideStatusRequest) (attendance.RecordResponse, error)
}

type ServiceImpl struct {
	db *database.DB
	attendance.Repository
	employeeRepo   employee.Repository
	configRepo     schedule.ConfigRepository
	leaveRepo      leave.Repository
	shortLeaveRepo leave.ShortLeaveRepository
	eventRepo      event.Repository

	policy      shift.Policy
	weekendDays []time.Weekday
	loc         *time.Location
	nowFn       func() time.Time
}

func NewService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	configRepo schedule.ConfigRepository,
	leaveRepo leave.Repository,
	shortLeaveRepo leave.ShortLeaveRepository,
	eventRepo event.Repository,
	policy shift.Policy,
	weekendDays []time.Weekday,
	loc *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		db:             db,
		Repository:     attendanceRepo,
		employeeRepo:   employeeRepo,
		configRepo:     configRepo,
		leaveRepo:      leaveRepo,
		shortLeaveRepo: shortLeaveRepo,
		eventRepo:      eventRepo,
		policy:         policy,
		weekendDays:    weekendDays,
		loc:            loc,
		nowFn:          time.Now,
	}
}

// withTx runs fn inside a database transaction. Unit tests wire the service
// against in-memory fakes with no database; fn then runs directly.
func (s *ServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

func claimsFromContext(ctx context.Context) (employeeID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, companyID, nil
}

// CheckIn implements Service. The gates run in a fixed order so that the
// employee always sees the most actionable refusal: employment status first,
// then the time floor, then leave, then off-day, then duplication.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.CanAttend() {
		return attendance.RecordResponse{}, attendance.ErrEmployeeInactive
	}

	nowLocal := s.nowFn().In(s.loc)

	// A company without a configured shift block cannot classify anything;
	// that is a setup error, not an employee error.
	cfg, err := s.configRepo.GetEffective(ctx, companyID, emp.ShiftKind, nowLocal)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	anchor, err := shift.ResolveAnchor(cfg.Config(), emp.ShiftKind, nowLocal)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	w, err := shift.ComputeWindow(cfg.Config(), emp.ShiftKind, anchor, nowLocal, s.policy)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if nowLocal.Before(w.EarliestAllowed) {
		return attendance.RecordResponse{}, attendance.ErrTooEarlyToCheckIn
	}

	onLeave, err := s.leaveRepo.HasApprovedLeave(ctx, employeeID, anchor, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if onLeave {
		return attendance.RecordResponse{}, attendance.ErrOnLeave
	}

	cal, err := s.calendarFor(ctx, companyID, anchor, anchor)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if cal.IsOffDay(anchor) {
		return attendance.RecordResponse{}, attendance.ErrOffDay
	}

	existing, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, anchor, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	sl, err := s.shortLeaveRepo.GetApprovedForDate(ctx, employeeID, anchor, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	effective := shift.AdjustGrace(w, toEngineShortLeave(sl))

	status := shift.ClassifyCheckIn(effective, nowLocal)

	checkIn := nowLocal
	rec := attendance.Record{
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		AnchorDate:  anchor,
		ShiftKind:   emp.ShiftKind,
		WindowStart: &effective.Start,
		GraceCutoff: &effective.GraceCutoff,
		WindowEnd:   &w.End,
		CheckIn:     &checkIn,
		Status:      string(status),
	}

	// The unique index is the final arbiter; the earlier existence probe only
	// exists to answer the common case without an insert attempt.
	created, err := s.Repository.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	metrics.CheckInsTotal.WithLabelValues(string(status)).Inc()

	return toResponse(created), nil
}

// CheckOut implements Service. The open record is looked up across the
// candidate attendance days because in the early-morning tail of a night
// shift the record is anchored to yesterday.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.CanAttend() {
		return attendance.RecordResponse{}, attendance.ErrEmployeeInactive
	}

	nowLocal := s.nowFn().In(s.loc)

	cfg, err := s.configRepo.GetEffective(ctx, companyID, emp.ShiftKind, nowLocal)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	candidates, err := shift.CheckoutAnchorCandidates(cfg.Config(), emp.ShiftKind, nowLocal)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var open *attendance.Record
	sawClosed := false
	for _, anchor := range candidates {
		rec, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, anchor, companyID)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		if rec == nil || rec.CheckIn == nil {
			continue
		}
		if rec.Open() {
			open = rec
			break
		}
		sawClosed = true
	}
	if open == nil {
		if sawClosed {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}

	anchor := shift.Rebase(open.AnchorDate, s.loc)

	// LatestCheckout is never snapshotted; for a night shift it depends on
	// which side of midnight now is, so it is recomputed on every attempt.
	bounds, err := shift.ComputeWindow(cfg.Config(), open.ShiftKind, anchor, nowLocal, s.policy)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if nowLocal.After(bounds.LatestCheckout) {
		return attendance.RecordResponse{}, attendance.ErrCheckoutWindowClosed
	}

	// Totals come from the window snapshotted at check-in so that a config
	// edit between check-in and check-out cannot reclassify the day.
	w, haveSnapshot := open.SnapshotWindow()
	if !haveSnapshot {
		w = bounds
	} else {
		w.Start = w.Start.In(s.loc)
		w.GraceCutoff = w.GraceCutoff.In(s.loc)
		w.End = w.End.In(s.loc)
	}

	sl, err := s.shortLeaveRepo.GetApprovedForDate(ctx, employeeID, anchor, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	checkOut := nowLocal
	totals := shift.DayTotals(w, open.CheckIn.In(s.loc), checkOut, toEngineShortLeave(sl))

	worked := int(totals.Worked.Minutes())
	late := int(totals.Late.Minutes())
	graced := int(totals.Graced.Minutes())
	overtime := int(totals.Overtime.Minutes())

	open.CheckOut = &checkOut
	open.AutoClosed = false
	open.WorkedMinutes = &worked
	open.LateMinutes = &late
	open.GracedMinutes = &graced
	open.OvertimeMinutes = &overtime

	if err := s.Repository.SetCheckOut(ctx, *open); err != nil {
		return attendance.RecordResponse{}, err
	}

	metrics.CheckOutsTotal.Inc()

	return toResponse(*open), nil
}

// GetMyRecords implements Service.
func (s *ServiceImpl) GetMyRecords(ctx context.Context, filter attendance.RangeFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, to := filter.Range()
	records, err := s.Repository.ListByEmployeeAndRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}
	return responses, nil
}

// ManualCreate implements Service. Admin-created records carry the override
// flag so the engine never reclassifies them.
func (s *ServiceImpl) ManualCreate(ctx context.Context, req attendance.ManualCreateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	_, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	anchor, _ := time.ParseInLocation("2006-01-02", req.AnchorDate, s.loc)

	var created attendance.Record
	err = s.withTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
		if err != nil {
			return err
		}

		rec := attendance.Record{
			EmployeeID:      req.EmployeeID,
			CompanyID:       companyID,
			AnchorDate:      anchor,
			ShiftKind:       emp.ShiftKind,
			Status:          req.Status,
			IsStatusUpdated: true,
		}
		if req.CheckInTime != nil {
			c, err := shift.ParseClock(*req.CheckInTime)
			if err != nil {
				return err
			}
			checkIn := c.At(anchor)
			rec.CheckIn = &checkIn
		}
		if req.CheckOutTime != nil {
			if rec.CheckIn == nil {
				return attendance.ErrNotCheckedIn
			}
			c, err := shift.ParseClock(*req.CheckOutTime)
			if err != nil {
				return err
			}
			checkOut := c.At(anchor)
			if checkOut.Before(*rec.CheckIn) {
				// Cross-midnight manual entry: the checkout clock belongs to
				// the next calendar day.
				checkOut = checkOut.AddDate(0, 0, 1)
			}
			rec.CheckOut = &checkOut

			worked := int(checkOut.Sub(*rec.CheckIn).Minutes())
			rec.WorkedMinutes = &worked
		}

		created, err = s.Repository.Create(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toResponse(created), nil
}

// OverrideStatus implements Service.
func (s *ServiceImpl) OverrideStatus(ctx context.Context, req attendance.OverrideStatusRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	_, companyID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var rec attendance.Record
	err = s.withTx(ctx, func(ctx context.Context) error {
		rec, err = s.Repository.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return err
		}

		rec.Status = req.Status
		rec.IsStatusUpdated = true

		return s.Repository.Update(ctx, rec)
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toResponse(rec), nil
}

func (s *ServiceImpl) calendarFor(ctx context.Context, companyID string, from, to time.Time) (*event.Calendar, error) {
	holidays, err := s.eventRepo.ListHolidaysInRange(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return event.NewCalendar(holidays, s.weekendDays), nil
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

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func minutesToHours(m *int) *float64 {
	if m == nil {
		return nil
	}
	h := float64(*m) / 60.0
	return &h
}

func toResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		AnchorDate:      rec.AnchorDate.Format("2006-01-02"),
		ShiftKind:       string(rec.ShiftKind),
		CheckInTime:     timePtrToString(rec.CheckIn),
		CheckOutTime:    timePtrToString(rec.CheckOut),
		Status:          rec.Status,
		IsStatusUpdated: rec.IsStatusUpdated,
		AutoClosed:      rec.AutoClosed,
		WorkedHours:     minutesToHours(rec.WorkedMinutes),
		LateHours:       minutesToHours(rec.LateMinutes),
		GracedHours:     minutesToHours(rec.GracedMinutes),
		OvertimeHours:   minutesToHours(rec.OvertimeMinutes),
	}
}

var _ Service = (*ServiceImpl)(nil)
