package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/pkg/validator"
)

// Service manages the versioned shift configuration blocks.
type Service interface {
	CreateShiftConfig(ctx context.Context, req schedule.CreateShiftConfigRequest) (schedule.ShiftConfigResponse, error)
	GetEffectiveConfig(ctx context.Context, kind shift.Kind) (schedule.ShiftConfigResponse, error)
}

type ServiceImpl struct {
	configRepo schedule.ConfigRepository
	loc        *time.Location
	nowFn      func() time.Time
}

func NewService(configRepo schedule.ConfigRepository, loc *time.Location) *ServiceImpl {
	return &ServiceImpl{
		configRepo: configRepo,
		loc:        loc,
		nowFn:      time.Now,
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// CreateShiftConfig implements Service. Configs are append-only; the new
// version takes effect at EffectiveFrom and the previous version keeps
// governing everything before it.
func (s *ServiceImpl) CreateShiftConfig(ctx context.Context, req schedule.CreateShiftConfigRequest) (schedule.ShiftConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	// The clocks must parse as a coherent block before anything is stored.
	cfg := shift.Config{Start: req.StartTime, Grace: req.GraceTime, End: req.EndTime}
	if _, err := cfg.CrossesMidnight(); err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	effectiveFrom := s.nowFn().In(s.loc)
	if req.EffectiveFrom != nil {
		effectiveFrom, _ = validator.IsValidDateTime(*req.EffectiveFrom)
		effectiveFrom = effectiveFrom.In(s.loc)
	}

	created, err := s.configRepo.Create(ctx, schedule.ShiftConfig{
		CompanyID:     companyID,
		Kind:          shift.Kind(strings.ToLower(req.Kind)),
		StartTime:     req.StartTime,
		GraceTime:     req.GraceTime,
		EndTime:       req.EndTime,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	return schedule.ToResponse(created), nil
}

// GetEffectiveConfig implements Service.
func (s *ServiceImpl) GetEffectiveConfig(ctx context.Context, kind shift.Kind) (schedule.ShiftConfigResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	cfg, err := s.configRepo.GetEffective(ctx, companyID, kind, s.nowFn().In(s.loc))
	if err != nil {
		return schedule.ShiftConfigResponse{}, err
	}

	return schedule.ToResponse(cfg), nil
}

var _ Service = (*ServiceImpl)(nil)
