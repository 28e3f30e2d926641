package schedule

import (
	"context"
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

type ConfigRepository interface {
	// GetEffective returns the config block for the given kind that was in
	// effect at the given instant. Returns ErrConfigNotFound when the company
	// has no configuration.
	GetEffective(ctx context.Context, companyID string, kind shift.Kind, at time.Time) (ShiftConfig, error)

	// Create appends a new config version.
	Create(ctx context.Context, cfg ShiftConfig) (ShiftConfig, error)
}
