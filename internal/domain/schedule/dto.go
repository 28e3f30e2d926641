package schedule

import (
	"strings"
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/validator"
)

// CreateShiftConfigRequest appends a new config version for one shift kind.
// EffectiveFrom defaults to now when omitted.
type CreateShiftConfigRequest struct {
	Kind          string  `json:"kind"`
	StartTime     string  `json:"start_time"`           // HH:mm
	GraceTime     string  `json:"grace_time,omitempty"` // HH:mm, empty means no grace
	EndTime       string  `json:"end_time"`             // HH:mm
	EffectiveFrom *string `json:"effective_from,omitempty"`
}

func (r *CreateShiftConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Kind), []string{string(shift.KindDay), string(shift.KindNight)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: day, night",
		})
	}

	if !validator.IsValidWallClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm format",
		})
	}

	if r.GraceTime != "" && !validator.IsValidWallClock(r.GraceTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_time",
			Message: "grace_time must be in HH:mm format",
		})
	}

	if !validator.IsValidWallClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm format",
		})
	}

	if r.EffectiveFrom != nil {
		if _, ok := validator.IsValidDateTime(*r.EffectiveFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftConfigResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	StartTime     string `json:"start_time"`
	GraceTime     string `json:"grace_time,omitempty"`
	EndTime       string `json:"end_time"`
	EffectiveFrom string `json:"effective_from"`
}

func ToResponse(cfg ShiftConfig) ShiftConfigResponse {
	return ShiftConfigResponse{
		ID:            cfg.ID,
		Kind:          string(cfg.Kind),
		StartTime:     cfg.StartTime,
		GraceTime:     cfg.GraceTime,
		EndTime:       cfg.EndTime,
		EffectiveFrom: cfg.EffectiveFrom.Format(time.RFC3339),
	}
}
