package event

import (
	"context"
	"time"
)

// Holiday is an admin-declared non-working date range.
type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (h Holiday) Covers(date time.Time) bool {
	return !date.Before(h.StartDate) && !date.After(h.EndDate)
}

type Repository interface {
	// ListHolidaysInRange returns holidays overlapping [from, to].
	ListHolidaysInRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
}
