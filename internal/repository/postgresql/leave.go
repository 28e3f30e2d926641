package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/leave"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// HasApprovedLeave implements leave.Repository.
func (r *leaveRepository) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND company_id = $2
			  AND status = $3
			  AND start_date <= $4
			  AND end_date >= $4
		)
	`

	var covered bool
	err := q.QueryRow(ctx, query, employeeID, companyID, leave.StatusApproved, date).Scan(&covered)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return covered, nil
}

// ListApprovedInRange implements leave.Repository.
func (r *leaveRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, start_date, end_date, paid_days, unpaid_days, status, created_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND company_id = $2
		  AND status = $3
		  AND start_date <= $4
		  AND end_date >= $5
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, leave.StatusApproved, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.CompanyID,
			&req.StartDate, &req.EndDate,
			&req.PaidDays, &req.UnpaidDays,
			&req.Status, &req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}
