package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/domain/employee"
	"github.com/stafflane/backoffice-go/internal/domain/event"
	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/domain/report"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

// Service folds attendance history into per-employee aggregates. All
// aggregation happens here, on stored records; the reporters never
// reclassify a check-in.
type Service interface {
	WorkStats(ctx context.Context, req report.WorkStatsRequest) (report.WorkStats, error)
	BulkWorkStats(ctx context.Context, req report.BulkWorkStatsRequest) (report.BulkWorkStats, error)
	Summary(ctx context.Context, req report.SummaryRequest) (report.Summary, error)
	Detailed(ctx context.Context, req report.DetailedRequest) (report.DetailedReport, error)
}

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	leaveRepo      leave.Repository
	eventRepo      event.Repository

	weekendDays []time.Weekday
	loc         *time.Location
	nowFn       func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	leaveRepo leave.Repository,
	eventRepo event.Repository,
	weekendDays []time.Weekday,
	loc *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		eventRepo:      eventRepo,
		weekendDays:    weekendDays,
		loc:            loc,
		nowFn:          time.Now,
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// dayFacts is everything the classifier needs for one employee's range,
// loaded once so the per-day walk does no I/O.
type dayFacts struct {
	emp     employee.Employee
	records map[string]attendance.Record // keyed by YYYY-MM-DD
	leaves  []leave.Request
	cal     *event.Calendar
	today   time.Time
}

func (s *ServiceImpl) loadFacts(ctx context.Context, companyID, employeeID string, from, to time.Time) (dayFacts, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return dayFacts{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return dayFacts{}, err
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[shift.Rebase(rec.AnchorDate, s.loc).Format("2006-01-02")] = rec
	}

	leaves, err := s.leaveRepo.ListApprovedInRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return dayFacts{}, err
	}

	holidays, err := s.eventRepo.ListHolidaysInRange(ctx, companyID, from, to)
	if err != nil {
		return dayFacts{}, err
	}

	return dayFacts{
		emp:     emp,
		records: byDate,
		leaves:  leaves,
		cal:     event.NewCalendar(holidays, s.weekendDays),
		today:   shift.DateOf(s.nowFn().In(s.loc)),
	}, nil
}

// classifyDay determines the day type for one calendar day, in precedence
// order. A manually overridden record status wins over everything below the
// calendar because the override is an explicit human decision.
func (s *ServiceImpl) classifyDay(f dayFacts, day time.Time) (string, *attendance.Record) {
	key := day.Format("2006-01-02")
	rec, hasRecord := f.records[key]

	if hasRecord && rec.IsStatusUpdated {
		return statusToDayType(rec.Status), &rec
	}

	if !f.emp.EmployedOn(day) {
		return report.DayNotEmployed, nil
	}
	if f.cal.IsHoliday(day) {
		return report.DayHoliday, nil
	}
	if f.cal.IsWeekend(day) {
		return report.DayWeekend, nil
	}
	for _, lr := range f.leaves {
		if lr.Covers(day) {
			return s.leaveDayType(f, lr, day), nil
		}
	}
	if hasRecord {
		return statusToDayType(rec.Status), &rec
	}
	if day.After(f.today) {
		return report.DayFuture, nil
	}
	return report.DayAbsent, nil
}

// leaveDayType splits a leave request's days into paid and unpaid. Paid days
// are consumed first, walking the request's working days in order, so a
// request of N paid and M unpaid days marks its first N working days paid.
func (s *ServiceImpl) leaveDayType(f dayFacts, lr leave.Request, day time.Time) string {
	workingIndex := 0
	for d := shift.Rebase(lr.StartDate, s.loc); d.Before(day); d = d.AddDate(0, 0, 1) {
		if !f.cal.IsOffDay(d) {
			workingIndex++
		}
	}
	if workingIndex < lr.PaidDays {
		return report.DayPaidLeave
	}
	return report.DayUnpaidLeave
}

func statusToDayType(status string) string {
	switch status {
	case attendance.StatusPresent:
		return report.DayPresent
	case attendance.StatusGraced:
		return report.DayGraced
	case attendance.StatusLate:
		return report.DayLate
	case attendance.StatusOnLeave:
		return report.DayPaidLeave
	default:
		return report.DayAbsent
	}
}

func minutesToDecimalHours(m *int) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(*m)).Div(decimal.NewFromInt(60)).Round(2)
}

// WorkStats implements Service.
func (s *ServiceImpl) WorkStats(ctx context.Context, req report.WorkStatsRequest) (report.WorkStats, error) {
	if err := req.Validate(); err != nil {
		return report.WorkStats{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return report.WorkStats{}, err
	}

	from, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	to, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	return s.workStats(ctx, companyID, req.EmployeeID, from, to)
}

func (s *ServiceImpl) workStats(ctx context.Context, companyID, employeeID string, from, to time.Time) (report.WorkStats, error) {
	f, err := s.loadFacts(ctx, companyID, employeeID, from, to)
	if err != nil {
		return report.WorkStats{}, err
	}

	stats := report.WorkStats{
		EmployeeID:    employeeID,
		EmployeeName:  f.emp.FullName,
		StartDate:     from.Format("2006-01-02"),
		EndDate:       to.Format("2006-01-02"),
		WorkedHours:   decimal.Zero,
		LateHours:     decimal.Zero,
		GracedHours:   decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayType, rec := s.classifyDay(f, day)

		if rec != nil {
			stats.WorkedHours = stats.WorkedHours.Add(minutesToDecimalHours(rec.WorkedMinutes))
			stats.LateHours = stats.LateHours.Add(minutesToDecimalHours(rec.LateMinutes))
			stats.GracedHours = stats.GracedHours.Add(minutesToDecimalHours(rec.GracedMinutes))
			stats.OvertimeHours = stats.OvertimeHours.Add(minutesToDecimalHours(rec.OvertimeMinutes))
		}

		switch dayType {
		case report.DayPresent:
			stats.PresentDays++
		case report.DayGraced:
			stats.GracedDays++
		case report.DayLate:
			stats.LateDays++
		case report.DayAbsent:
			stats.AbsentDays++
		case report.DayPaidLeave, report.DayUnpaidLeave:
			stats.LeaveDays++
		}
	}

	return stats, nil
}

// BulkWorkStats implements Service. Employees that cannot be loaded are
// skipped rather than failing the whole batch.
func (s *ServiceImpl) BulkWorkStats(ctx context.Context, req report.BulkWorkStatsRequest) (report.BulkWorkStats, error) {
	if err := req.Validate(); err != nil {
		return report.BulkWorkStats{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return report.BulkWorkStats{}, err
	}

	from, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	to, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	out := report.BulkWorkStats{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Employees: make([]report.WorkStats, 0, len(req.EmployeeIDs)),
	}

	for _, id := range req.EmployeeIDs {
		stats, err := s.workStats(ctx, companyID, id, from, to)
		if err != nil {
			continue
		}
		out.Employees = append(out.Employees, stats)
	}

	return out, nil
}

// Summary implements Service.
func (s *ServiceImpl) Summary(ctx context.Context, req report.SummaryRequest) (report.Summary, error) {
	if err := req.Validate(); err != nil {
		return report.Summary{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return report.Summary{}, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, -1)

	f, err := s.loadFacts(ctx, companyID, req.EmployeeID, from, to)
	if err != nil {
		return report.Summary{}, err
	}

	counts := make(map[string]int)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayType, _ := s.classifyDay(f, day)
		counts[dayType]++
	}

	return report.Summary{
		EmployeeID:   req.EmployeeID,
		EmployeeName: f.emp.FullName,
		Year:         req.Year,
		Month:        req.Month,
		DayCounts:    counts,
	}, nil
}

// Detailed implements Service.
func (s *ServiceImpl) Detailed(ctx context.Context, req report.DetailedRequest) (report.DetailedReport, error) {
	if err := req.Validate(); err != nil {
		return report.DetailedReport{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return report.DetailedReport{}, err
	}

	from, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	to, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	f, err := s.loadFacts(ctx, companyID, req.EmployeeID, from, to)
	if err != nil {
		return report.DetailedReport{}, err
	}

	rows := make([]report.DetailedRow, 0, int(to.Sub(from).Hours()/24)+1)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayType, rec := s.classifyDay(f, day)

		row := report.DetailedRow{
			Date:          day.Format("2006-01-02"),
			DayType:       dayType,
			WorkedHours:   decimal.Zero,
			LateHours:     decimal.Zero,
			OvertimeHours: decimal.Zero,
		}
		if rec != nil {
			row.CheckInTime = formatClock(rec.CheckIn, s.loc)
			row.CheckOutTime = formatClock(rec.CheckOut, s.loc)
			row.WorkedHours = minutesToDecimalHours(rec.WorkedMinutes)
			row.LateHours = minutesToDecimalHours(rec.LateMinutes)
			row.OvertimeHours = minutesToDecimalHours(rec.OvertimeMinutes)
			row.AutoClosed = rec.AutoClosed
		}
		rows = append(rows, row)
	}

	return report.DetailedReport{
		EmployeeID:   req.EmployeeID,
		EmployeeName: f.emp.FullName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Rows:         rows,
		GeneratedAt:  s.nowFn().In(s.loc).Format(time.RFC3339),
	}, nil
}

func formatClock(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format("15:04")
	return &formatted
}

var _ Service = (*ServiceImpl)(nil)
