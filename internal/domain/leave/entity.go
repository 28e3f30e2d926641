package leave

import "time"

const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Request is a full-day leave request spanning one or more calendar days.
// PaidDays and UnpaidDays partition the request's working days; reporting
// allocates them sequentially across the working days of the range.
type Request struct {
	ID         string
	EmployeeID string
	CompanyID  string
	StartDate  time.Time
	EndDate    time.Time
	PaidDays   int
	UnpaidDays int
	Status     string
	CreatedAt  time.Time
}

// Covers reports whether the request spans the given calendar date.
func (r Request) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// ShortLeave is an approved partial-day absence: a wall-clock start and a
// duration on a single date. It neither counts as late time nor as worked
// time for its own duration. StartTime may be nil on legacy rows.
type ShortLeave struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Date          time.Time
	StartTime     *string // HH:mm
	DurationHours float64
	Status        string
	CreatedAt     time.Time
}
