package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

type shortLeaveRepository struct {
	db *database.DB
}

// GetApprovedForDate implements leave.ShortLeaveRepository.
func (r *shortLeaveRepository) GetApprovedForDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*leave.ShortLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, start_time, duration_hours, status, created_at
		FROM short_leaves
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date = $3
		  AND status = $4
		LIMIT 1
	`

	var sl leave.ShortLeave
	err := q.QueryRow(ctx, query, employeeID, companyID, date, leave.StatusApproved).Scan(
		&sl.ID, &sl.EmployeeID, &sl.CompanyID,
		&sl.Date, &sl.StartTime, &sl.DurationHours,
		&sl.Status, &sl.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No short leave on this date
		}
		return nil, fmt.Errorf("failed to get short leave: %w", err)
	}

	return &sl, nil
}

// ListApprovedInRange implements leave.ShortLeaveRepository.
func (r *shortLeaveRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.ShortLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, start_time, duration_hours, status, created_at
		FROM short_leaves
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date BETWEEN $3 AND $4
		  AND status = $5
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to, leave.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query short leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.ShortLeave
	for rows.Next() {
		var sl leave.ShortLeave
		err := rows.Scan(
			&sl.ID, &sl.EmployeeID, &sl.CompanyID,
			&sl.Date, &sl.StartTime, &sl.DurationHours,
			&sl.Status, &sl.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan short leave: %w", err)
		}
		leaves = append(leaves, sl)
	}

	return leaves, nil
}

func NewShortLeaveRepository(db *database.DB) leave.ShortLeaveRepository {
	return &shortLeaveRepository{db: db}
}
