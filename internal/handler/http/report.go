package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stafflane/backoffice-go/internal/domain/report"
	"github.com/stafflane/backoffice-go/internal/handler/http/response"
	"github.com/stafflane/backoffice-go/internal/pkg/exporter"
	reportService "github.com/stafflane/backoffice-go/internal/service/report"
)

type ReportHandler interface {
	WorkStats(w http.ResponseWriter, r *http.Request)
	BulkWorkStats(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Detailed(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	service reportService.Service
}

func NewReportHandler(service reportService.Service) ReportHandler {
	return &reportHandlerImpl{service: service}
}

// WorkStats implements ReportHandler.
func (h *reportHandlerImpl) WorkStats(w http.ResponseWriter, r *http.Request) {
	req := report.WorkStatsRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.service.WorkStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// BulkWorkStats implements ReportHandler.
func (h *reportHandlerImpl) BulkWorkStats(w http.ResponseWriter, r *http.Request) {
	var req report.BulkWorkStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk work stats request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.BulkWorkStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements ReportHandler.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	req := report.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       year,
		Month:      month,
	}

	result, err := h.service.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Detailed implements ReportHandler. With ?format=xlsx the report is streamed
// as a spreadsheet instead of JSON.
func (h *reportHandlerImpl) Detailed(w http.ResponseWriter, r *http.Request) {
	req := report.DetailedRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.service.Detailed(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		f, err := exporter.DetailedReportXLSX(result)
		if err != nil {
			slog.Error("Failed to build report spreadsheet", "error", err)
			response.InternalServerError(w, "Failed to build report spreadsheet")
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", result.EmployeeID, result.StartDate, result.EndDate)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := f.Write(w); err != nil {
			slog.Error("Failed to stream report spreadsheet", "error", err)
		}
		return
	}

	response.Success(w, result)
}
