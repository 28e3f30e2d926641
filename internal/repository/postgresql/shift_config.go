package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/database"
)

type shiftConfigRepository struct {
	db *database.DB
}

// GetEffective implements schedule.ConfigRepository. Configs are append-only;
// the effective one is the newest version not in the future of the instant.
func (r *shiftConfigRepository) GetEffective(ctx context.Context, companyID string, kind shift.Kind, at time.Time) (schedule.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, kind, start_time, grace_time, end_time, effective_from, created_at
		FROM shift_configs
		WHERE company_id = $1
		  AND kind = $2
		  AND effective_from <= $3
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var cfg schedule.ShiftConfig
	err := q.QueryRow(ctx, query, companyID, kind, at).Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.Kind,
		&cfg.StartTime, &cfg.GraceTime, &cfg.EndTime,
		&cfg.EffectiveFrom, &cfg.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftConfig{}, schedule.ErrConfigNotFound
		}
		return schedule.ShiftConfig{}, fmt.Errorf("failed to get effective shift config: %w", err)
	}

	return cfg, nil
}

// Create implements schedule.ConfigRepository.
func (r *shiftConfigRepository) Create(ctx context.Context, cfg schedule.ShiftConfig) (schedule.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return schedule.ShiftConfig{}, fmt.Errorf("failed to generate config id: %w", err)
	}

	query := `
		INSERT INTO shift_configs (id, company_id, kind, start_time, grace_time, end_time, effective_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		id.String(),
		cfg.CompanyID,
		cfg.Kind,
		cfg.StartTime,
		cfg.GraceTime,
		cfg.EndTime,
		cfg.EffectiveFrom,
	).Scan(&cfg.ID, &cfg.CreatedAt)
	if err != nil {
		return schedule.ShiftConfig{}, fmt.Errorf("failed to create shift config: %w", err)
	}

	return cfg, nil
}

func NewShiftConfigRepository(db *database.DB) schedule.ConfigRepository {
	return &shiftConfigRepository{db: db}
}
