package schedule

import (
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

// ShiftConfig is one admin-configured working-hours block. Configs are
// versioned by EffectiveFrom and never updated in place, so every action can
// be evaluated against the config that was in effect when it happened.
type ShiftConfig struct {
	ID            string
	CompanyID     string
	Kind          shift.Kind
	StartTime     string // HH:mm
	GraceTime     string // HH:mm, empty means no grace period
	EndTime       string // HH:mm, numerically before StartTime means cross-midnight
	EffectiveFrom time.Time
	CreatedAt     time.Time
}

// Config converts the stored block into the engine's input type.
func (c ShiftConfig) Config() shift.Config {
	return shift.Config{Start: c.StartTime, Grace: c.GraceTime, End: c.EndTime}
}
