package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stafflane/backoffice-go/internal/domain/employee"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, status, shift_kind, join_date, resign_date
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName,
		&emp.Status, &emp.ShiftKind,
		&emp.JoinDate, &emp.ResignDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// ListActiveByCompany implements employee.Repository.
func (r *employeeRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, status, shift_kind, join_date, resign_date
		FROM employees
		WHERE company_id = $1
		  AND status = $2
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, companyID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.FullName,
			&emp.Status, &emp.ShiftKind,
			&emp.JoinDate, &emp.ResignDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}
