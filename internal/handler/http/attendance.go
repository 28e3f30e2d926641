package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafflane/backoffice-go/internal/domain/attendance"
	"github.com/stafflane/backoffice-go/internal/handler/http/response"
	attendanceService "github.com/stafflane/backoffice-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	ManualCreate(w http.ResponseWriter, r *http.Request)
	OverrideStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	service attendanceService.Service
}

func NewAttendanceHandler(service attendanceService.Service) AttendanceHandler {
	return &attendanceHandlerImpl{service: service}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	result, err := h.service.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	result, err := h.service.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// GetMyRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RangeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.service.GetMyRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ManualCreate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualCreate(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual create request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.ManualCreate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// OverrideStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode override status request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.service.OverrideStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated", result)
}
