package report

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/domain/employee"
	"github.com/stafflane/backoffice-go/internal/domain/event"
	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/domain/report"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

var jakarta = time.FixedZone("WIB", 7*3600)

const (
	testEmployeeID = "emp-1"
	testCompanyID  = "co-1"
)

func date(day int) time.Time {
	return time.Date(2025, 3, day, 0, 0, 0, 0, jakarta)
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, anchorDate time.Time, companyID string) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, rec attendance.Record) error {
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Record) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.AnchorDate.Before(from) || rec.AnchorDate.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenByAnchor(ctx context.Context, anchorDate time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListOpen(ctx context.Context) ([]attendance.Record, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return []employee.Employee{f.emp}, nil
}

type fakeLeaveRepo struct {
	requests []leave.Request
}

func (f *fakeLeaveRepo) HasApprovedLeave(ctx context.Context, employeeID string, d time.Time, companyID string) (bool, error) {
	for _, lr := range f.requests {
		if lr.Covers(d) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.Request, error) {
	return f.requests, nil
}

type fakeEventRepo struct {
	holidays []event.Holiday
}

func (f *fakeEventRepo) ListHolidaysInRange(ctx context.Context, companyID string, from, to time.Time) ([]event.Holiday, error) {
	return f.holidays, nil
}

func intPtr(v int) *int { return &v }

func record(day int, status string, worked, late, overtime int) attendance.Record {
	checkIn := date(day).Add(9 * time.Hour)
	checkOut := checkIn.Add(time.Duration(worked) * time.Minute)
	return attendance.Record{
		ID:              "rec-" + date(day).Format("02"),
		EmployeeID:      testEmployeeID,
		CompanyID:       testCompanyID,
		AnchorDate:      date(day),
		ShiftKind:       shift.KindDay,
		CheckIn:         &checkIn,
		CheckOut:        &checkOut,
		Status:          status,
		WorkedMinutes:   intPtr(worked),
		LateMinutes:     intPtr(late),
		OvertimeMinutes: intPtr(overtime),
	}
}

type testEnv struct {
	svc        *ServiceImpl
	attendance *fakeAttendanceRepo
	leaves     *fakeLeaveRepo
	events     *fakeEventRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		attendance: &fakeAttendanceRepo{},
		leaves:     &fakeLeaveRepo{},
		events:     &fakeEventRepo{},
	}
	env.svc = NewService(
		env.attendance,
		&fakeEmployeeRepo{emp: employee.Employee{
			ID:        testEmployeeID,
			CompanyID: testCompanyID,
			FullName:  "Ayu Lestari",
			Status:    employee.StatusActive,
			ShiftKind: shift.KindDay,
			JoinDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, jakarta),
		}},
		env.leaves,
		env.events,
		[]time.Weekday{time.Saturday, time.Sunday},
		jakarta,
	)
	// Well past the reporting week, so nothing in it is "future".
	env.svc.nowFn = func() time.Time {
		return time.Date(2025, 3, 20, 12, 0, 0, 0, jakarta)
	}
	return env
}

func authCtx(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": testEmployeeID,
		"company_id":  testCompanyID,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// seedWeek fills Mon 2025-03-10 .. Sun 2025-03-16: present Monday, late
// Tuesday, nothing Wednesday, a 1-paid/1-unpaid leave Thursday and Friday,
// weekend after that.
func seedWeek(env *testEnv) {
	env.attendance.records = []attendance.Record{
		record(10, attendance.StatusPresent, 540, 0, 0),
		record(11, attendance.StatusLate, 500, 30, 0),
	}
	env.leaves.requests = []leave.Request{{
		ID:         "lv-1",
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		StartDate:  date(13),
		EndDate:    date(14),
		PaidDays:   1,
		UnpaidDays: 1,
		Status:     leave.StatusApproved,
	}}
}

func TestWorkStatsFoldsWeek(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(env)

	stats, err := env.svc.WorkStats(authCtx(t), report.WorkStatsRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-16",
	})
	require.NoError(t, err)

	assert.True(t, stats.WorkedHours.Equal(decimal.RequireFromString("17.33")), "worked hours: %s", stats.WorkedHours)
	assert.True(t, stats.LateHours.Equal(decimal.RequireFromString("0.5")), "late hours: %s", stats.LateHours)
	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 2, stats.LeaveDays)
	assert.Equal(t, "Ayu Lestari", stats.EmployeeName)
}

func TestWorkStatsValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.WorkStats(authCtx(t), report.WorkStatsRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-16",
		EndDate:    "2025-03-10",
	})
	assert.Error(t, err)
}

func TestBulkWorkStatsSkipsUnknownEmployees(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(env)

	bulk, err := env.svc.BulkWorkStats(authCtx(t), report.BulkWorkStatsRequest{
		EmployeeIDs: []string{testEmployeeID, "emp-ghost"},
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-16",
	})
	require.NoError(t, err)
	require.Len(t, bulk.Employees, 1)
	assert.Equal(t, testEmployeeID, bulk.Employees[0].EmployeeID)
}

func TestDetailedDayTypes(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(env)

	rep, err := env.svc.Detailed(authCtx(t), report.DetailedRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-16",
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 7)

	want := []string{
		report.DayPresent,
		report.DayLate,
		report.DayAbsent,
		report.DayPaidLeave,
		report.DayUnpaidLeave,
		report.DayWeekend,
		report.DayWeekend,
	}
	for i, row := range rep.Rows {
		assert.Equal(t, want[i], row.DayType, "day %s", row.Date)
	}

	assert.Equal(t, "09:00", *rep.Rows[0].CheckInTime)
	assert.Nil(t, rep.Rows[2].CheckInTime)
}

func TestDetailedHolidayBeatsRecord(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(env)
	env.events.holidays = []event.Holiday{{
		ID: "hol-1", CompanyID: testCompanyID, Name: "Nyepi",
		StartDate: date(10), EndDate: date(10),
	}}

	rep, err := env.svc.Detailed(authCtx(t), report.DetailedRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-10",
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, report.DayHoliday, rep.Rows[0].DayType)
}

func TestDetailedManualOverrideBeatsCalendar(t *testing.T) {
	env := newTestEnv(t)
	// Overridden record on a Saturday still reports its stored status.
	rec := record(15, attendance.StatusPresent, 480, 0, 0)
	rec.IsStatusUpdated = true
	env.attendance.records = []attendance.Record{rec}

	rep, err := env.svc.Detailed(authCtx(t), report.DetailedRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-15",
		EndDate:    "2025-03-15",
	})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, report.DayPresent, rep.Rows[0].DayType)
}

func TestDetailedFutureAndPreEmployment(t *testing.T) {
	env := newTestEnv(t)
	env.svc.nowFn = func() time.Time {
		return time.Date(2025, 3, 11, 12, 0, 0, 0, jakarta)
	}

	rep, err := env.svc.Detailed(authCtx(t), report.DetailedRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-12",
		EndDate:    "2025-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, report.DayFuture, rep.Rows[0].DayType)

	rep, err = env.svc.Detailed(authCtx(t), report.DetailedRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2023-06-02",
		EndDate:    "2023-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, report.DayNotEmployed, rep.Rows[0].DayType)
}

func TestSummaryCountsMonth(t *testing.T) {
	env := newTestEnv(t)
	seedWeek(env)
	env.svc.nowFn = func() time.Time {
		return time.Date(2025, 4, 2, 12, 0, 0, 0, jakarta)
	}

	sum, err := env.svc.Summary(authCtx(t), report.SummaryRequest{
		EmployeeID: testEmployeeID,
		Year:       2025,
		Month:      3,
	})
	require.NoError(t, err)

	total := 0
	for _, n := range sum.DayCounts {
		total += n
	}
	assert.Equal(t, 31, total)
	assert.Equal(t, 1, sum.DayCounts[report.DayPresent])
	assert.Equal(t, 1, sum.DayCounts[report.DayLate])
	assert.Equal(t, 1, sum.DayCounts[report.DayPaidLeave])
	assert.Equal(t, 1, sum.DayCounts[report.DayUnpaidLeave])
	// March 2025 has five weekends of two days each.
	assert.Equal(t, 10, sum.DayCounts[report.DayWeekend])
}

func TestSummaryValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Summary(authCtx(t), report.SummaryRequest{
		EmployeeID: testEmployeeID,
		Year:       2025,
		Month:      13,
	})
	assert.Error(t, err)
}
