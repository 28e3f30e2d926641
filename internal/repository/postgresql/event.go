package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/event"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

// ListHolidaysInRange implements event.Repository.
func (r *eventRepository) ListHolidaysInRange(ctx context.Context, companyID string, from, to time.Time) ([]event.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_date, end_date
		FROM holidays
		WHERE company_id = $1
		  AND start_date <= $2
		  AND end_date >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, companyID, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []event.Holiday
	for rows.Next() {
		var h event.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Name, &h.StartDate, &h.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

func NewEventRepository(db *database.DB) event.Repository {
	return &eventRepository{db: db}
}
