package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stafflane/backoffice-go/internal/domain/schedule"
	"github.com/stafflane/backoffice-go/internal/domain/shift"
	"github.com/stafflane/backoffice-go/internal/handler/http/response"
	scheduleService "github.com/stafflane/backoffice-go/internal/service/schedule"
)

type ScheduleHandler interface {
	CreateShiftConfig(w http.ResponseWriter, r *http.Request)
	GetEffectiveConfig(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	service scheduleService.Service
}

func NewScheduleHandler(service scheduleService.Service) ScheduleHandler {
	return &scheduleHandlerImpl{service: service}
}

// CreateShiftConfig implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShiftConfig(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode shift config request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.CreateShiftConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift configuration created", result)
}

// GetEffectiveConfig implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetEffectiveConfig(w http.ResponseWriter, r *http.Request) {
	kind := shift.Kind(strings.ToLower(r.URL.Query().Get("kind")))
	if kind != shift.KindDay && kind != shift.KindNight {
		response.BadRequest(w, "kind must be one of: day, night", nil)
		return
	}

	result, err := h.service.GetEffectiveConfig(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
