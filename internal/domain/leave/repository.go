package leave

import (
	"context"
	"time"
)

type Repository interface {
	// HasApprovedLeave reports whether an approved full-day leave covers the
	// given date.
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)

	// ListApprovedInRange returns approved requests overlapping [from, to].
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Request, error)
}

type ShortLeaveRepository interface {
	// GetApprovedForDate returns the approved short leave for one attendance
	// day, nil when none exists.
	GetApprovedForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*ShortLeave, error)

	// ListApprovedInRange returns approved short leaves with dates in
	// [from, to].
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]ShortLeave, error)
}
