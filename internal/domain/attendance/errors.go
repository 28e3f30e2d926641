package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in for this attendance day")
	ErrTooEarlyToCheckIn = errors.New("too early to check in")
	ErrOnLeave           = errors.New("you have an approved leave covering this day")
	ErrOffDay            = errors.New("check-in is not allowed on a holiday or weekend")
	ErrEmployeeInactive  = errors.New("employment status does not allow attendance actions")

	// Check-out errors
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out")
	ErrCheckoutWindowClosed = errors.New("the checkout window for this shift has closed")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
