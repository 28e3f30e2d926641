package report

import (
	"github.com/shopspring/decimal"

	"github.com/stafflane/backoffice-go/internal/pkg/validator"
)

// Day types produced by the detailed report, in classification precedence
// order: holiday beats weekend beats approved leave beats the attendance
// record beats absent.
const (
	DayHoliday     = "holiday"
	DayWeekend     = "weekend"
	DayPaidLeave   = "paid_leave"
	DayUnpaidLeave = "unpaid_leave"
	DayPresent     = "present"
	DayGraced      = "graced"
	DayLate        = "late"
	DayAbsent      = "absent"
	DayFuture      = "future"
	DayNotEmployed = "not_employed"
)

type WorkStatsRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r *WorkStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = appendRangeErrors(errs, r.StartDate, r.EndDate)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkWorkStatsRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

func (r *BulkWorkStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee_id is required",
		})
	}
	errs = appendRangeErrors(errs, r.StartDate, r.EndDate)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendRangeErrors(errs validator.ValidationErrors, start, end string) validator.ValidationErrors {
	from, okStart := validator.IsValidDate(start)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	to, okEnd := validator.IsValidDate(end)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	return errs
}

// WorkStats is the folded engine output for one employee over a date range.
type WorkStats struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	LateHours     decimal.Decimal `json:"late_hours"`
	GracedHours   decimal.Decimal `json:"graced_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	PresentDays   int             `json:"present_days"`
	GracedDays    int             `json:"graced_days"`
	LateDays      int             `json:"late_days"`
	AbsentDays    int             `json:"absent_days"`
	LeaveDays     int             `json:"leave_days"`
}

type BulkWorkStats struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Employees []WorkStats `json:"employees"`
}

type SummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Summary counts day types for one employee over one month.
type Summary struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name,omitempty"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	DayCounts    map[string]int `json:"day_counts"`
}

type DetailedRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *DetailedRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = appendRangeErrors(errs, r.StartDate, r.EndDate)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DetailedRow is one calendar day in the detailed report.
type DetailedRow struct {
	Date          string          `json:"date"`
	DayType       string          `json:"day_type"`
	CheckInTime   *string         `json:"check_in_time,omitempty"`
	CheckOutTime  *string         `json:"check_out_time,omitempty"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	LateHours     decimal.Decimal `json:"late_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	AutoClosed    bool            `json:"auto_closed"`
}

type DetailedReport struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name,omitempty"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Rows         []DetailedRow `json:"rows"`
	GeneratedAt  string        `json:"generated_at"`
}
