package attendance

import (
	"strings"
	"time"

	"github.com/stafflane/backoffice-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest and CheckOutRequest carry no body fields today; employee and
// company come from the JWT claims. The structs stay so that future fields
// (location proof, notes) have a home.
type CheckInRequest struct{}

type CheckOutRequest struct{}

type RecordResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	AnchorDate      string  `json:"anchor_date"`
	ShiftKind       string  `json:"shift_kind"`
	CheckInTime     *string `json:"check_in_time,omitempty"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	Status          string  `json:"status"`
	IsStatusUpdated bool    `json:"is_status_updated"`
	AutoClosed      bool    `json:"auto_closed"`
	WorkedHours     *float64 `json:"worked_hours,omitempty"`
	LateHours       *float64 `json:"late_hours,omitempty"`
	GracedHours     *float64 `json:"graced_hours,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
}

// ManualCreateRequest lets an admin create a record for an employee who could
// not check in themselves.
type ManualCreateRequest struct {
	EmployeeID   string  `json:"employee_id"`
	AnchorDate   string  `json:"anchor_date"`              // YYYY-MM-DD
	CheckInTime  *string `json:"check_in_time,omitempty"`  // HH:mm
	CheckOutTime *string `json:"check_out_time,omitempty"` // HH:mm
	Status       string  `json:"status"`
}

func (r *ManualCreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.AnchorDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "anchor_date",
			Message: "anchor_date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckInTime != nil && !validator.IsValidWallClock(*r.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check_in_time must be in HH:mm format",
		})
	}

	if r.CheckOutTime != nil && !validator.IsValidWallClock(*r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must be in HH:mm format",
		})
	}

	validStatuses := []string{StatusPresent, StatusGraced, StatusLate, StatusAbsent, StatusOnLeave}
	if !validator.IsInSlice(strings.ToLower(r.Status), validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, graced, late, absent, on_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// OverrideStatusRequest marks a record's status as manually decided. Once
// applied the engine never reclassifies the record.
type OverrideStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *OverrideStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	validStatuses := []string{StatusPresent, StatusGraced, StatusLate, StatusAbsent, StatusOnLeave}
	if !validator.IsInSlice(strings.ToLower(r.Status), validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, graced, late, absent, on_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RangeFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the parsed bounds. Validate must have passed.
func (f *RangeFilter) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(f.StartDate)
	end, _ := validator.IsValidDate(f.EndDate)
	return start, end
}
