package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, employee_id, company_id, anchor_date, shift_kind,
	window_start, grace_cutoff, window_end,
	check_in, check_out,
	status, is_status_updated, auto_closed,
	worked_minutes, late_minutes, graced_minutes, overtime_minutes,
	created_at, updated_at
`

func scanAttendance(row pgx.Row, rec *attendance.Record) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.AnchorDate, &rec.ShiftKind,
		&rec.WindowStart, &rec.GraceCutoff, &rec.WindowEnd,
		&rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.IsStatusUpdated, &rec.AutoClosed,
		&rec.WorkedMinutes, &rec.LateMinutes, &rec.GracedMinutes, &rec.OvertimeMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

// Create implements attendance.Repository. The unique index on
// (employee_id, anchor_date) is the arbiter for concurrent check-ins; the
// loser of the race gets ErrAlreadyCheckedIn.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, company_id, anchor_date, shift_kind,
			window_start, grace_cutoff, window_end,
			check_in, check_out,
			status, is_status_updated, auto_closed,
			worked_minutes, late_minutes, graced_minutes, overtime_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		rec.EmployeeID,
		rec.CompanyID,
		rec.AnchorDate,
		rec.ShiftKind,
		rec.WindowStart,
		rec.GraceCutoff,
		rec.WindowEnd,
		rec.CheckIn,
		rec.CheckOut,
		rec.Status,
		rec.IsStatusUpdated,
		rec.AutoClosed,
		rec.WorkedMinutes,
		rec.LateMinutes,
		rec.GracedMinutes,
		rec.OvertimeMinutes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			a.id, a.employee_id, a.company_id, a.anchor_date, a.shift_kind,
			a.window_start, a.grace_cutoff, a.window_end,
			a.check_in, a.check_out,
			a.status, a.is_status_updated, a.auto_closed,
			a.worked_minutes, a.late_minutes, a.graced_minutes, a.overtime_minutes,
			a.created_at, a.updated_at,
			e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.AnchorDate, &rec.ShiftKind,
		&rec.WindowStart, &rec.GraceCutoff, &rec.WindowEnd,
		&rec.CheckIn, &rec.CheckOut,
		&rec.Status, &rec.IsStatusUpdated, &rec.AutoClosed,
		&rec.WorkedMinutes, &rec.LateMinutes, &rec.GracedMinutes, &rec.OvertimeMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, anchorDate time.Time, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND anchor_date = $2
		  AND company_id = $3
		LIMIT 1
	`

	var rec attendance.Record
	err := scanAttendance(q.QueryRow(ctx, query, employeeID, anchorDate, companyID), &rec)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this attendance day
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// SetCheckOut implements attendance.Repository. The WHERE clause makes the
// close conditional on the record still being open, so two concurrent
// checkouts cannot both write.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out = $1,
			auto_closed = $2,
			worked_minutes = $3,
			late_minutes = $4,
			graced_minutes = $5,
			overtime_minutes = $6,
			updated_at = $7
		WHERE id = $8
		  AND check_out IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		rec.CheckOut,
		rec.AutoClosed,
		rec.WorkedMinutes,
		rec.LateMinutes,
		rec.GracedMinutes,
		rec.OvertimeMinutes,
		time.Now(),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to set checkout: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1,
			check_out = $2,
			status = $3,
			is_status_updated = $4,
			auto_closed = $5,
			worked_minutes = $6,
			late_minutes = $7,
			graced_minutes = $8,
			overtime_minutes = $9,
			updated_at = $10
		WHERE id = $11 AND company_id = $12
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.CheckIn,
		rec.CheckOut,
		rec.Status,
		rec.IsStatusUpdated,
		rec.AutoClosed,
		rec.WorkedMinutes,
		rec.LateMinutes,
		rec.GracedMinutes,
		rec.OvertimeMinutes,
		time.Now(),
		rec.ID,
		rec.CompanyID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// ListByEmployeeAndRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND anchor_date BETWEEN $2 AND $3
		  AND company_id = $4
		ORDER BY anchor_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListOpenByAnchor implements attendance.Repository.
func (a *attendanceRepository) ListOpenByAnchor(ctx context.Context, anchorDate time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE anchor_date = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, anchorDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListOpen implements attendance.Repository.
func (a *attendanceRepository) ListOpen(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE check_in IS NOT NULL
		  AND check_out IS NULL
		ORDER BY anchor_date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := scanAttendance(rows, &rec); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}
