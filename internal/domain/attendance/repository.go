package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. All methods carry
// companyID to prevent cross-company data access.
type Repository interface {
	// Create inserts a new record. The storage layer enforces the
	// one-record-per-(employee, anchor date) invariant and returns
	// ErrAlreadyCheckedIn when a concurrent or earlier check-in won.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a record by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one attendance day, nil
	// when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, anchorDate time.Time, companyID string) (*Record, error)

	// SetCheckOut closes an open record. The update is conditional on
	// check_out still being unset; ErrAlreadyCheckedOut is returned when a
	// concurrent checkout won.
	SetCheckOut(ctx context.Context, rec Record) error

	// Update rewrites mutable fields of an existing record (admin fixes,
	// manual status overrides).
	Update(ctx context.Context, rec Record) error

	// ListByEmployeeAndRange returns records with anchor dates in
	// [from, to], ordered by anchor date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Record, error)

	// ListOpenByAnchor returns checked-in records without a checkout for one
	// anchor date, across all companies. Used by the auto-checkout sweep.
	ListOpenByAnchor(ctx context.Context, anchorDate time.Time) ([]Record, error)

	// ListOpen returns every checked-in record without a checkout. Used by
	// the sweep's backfill mode.
	ListOpen(ctx context.Context) ([]Record, error)
}
