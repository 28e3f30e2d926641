package response

import (
	"errors"
	"net/http"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/domain/employee"
	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Check-in errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this attendance day")
	case errors.Is(err, attendance.ErrTooEarlyToCheckIn):
		UnprocessableEntity(w, "Too early to check in")
	case errors.Is(err, attendance.ErrOnLeave):
		UnprocessableEntity(w, "An approved leave covers this day")
	case errors.Is(err, attendance.ErrOffDay):
		UnprocessableEntity(w, "Check-in is not allowed on a holiday or weekend")
	case errors.Is(err, attendance.ErrEmployeeInactive):
		Forbidden(w, "Employment status does not allow attendance actions")

	// Check-out errors
	case errors.Is(err, attendance.ErrNotCheckedIn):
		UnprocessableEntity(w, "No check-in found for this attendance day")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrCheckoutWindowClosed):
		UnprocessableEntity(w, "The checkout window for this shift has closed")

	// Lookup errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Configuration errors. A missing shift config is an admin setup
	// problem, not a client mistake.
	case errors.Is(err, schedule.ErrConfigNotFound):
		InternalServerError(w, "Shift configuration is missing for this company")
	case errors.Is(err, shift.ErrInvalidClock), errors.Is(err, shift.ErrInvalidKind):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
