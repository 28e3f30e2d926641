package http

import (
	"context"
	"net/http"

	"github.com/stafflane/backoffice-go/internal/handler/http/response"
)

type JobsHandler interface {
	BackfillAutoCheckout(w http.ResponseWriter, r *http.Request)
}

type jobsHandlerImpl struct {
	backfill func(ctx context.Context) error
}

// NewJobsHandler wraps operator-triggered maintenance jobs. backfill sweeps
// every open attendance record, including night shifts.
func NewJobsHandler(backfill func(ctx context.Context) error) JobsHandler {
	return &jobsHandlerImpl{backfill: backfill}
}

// BackfillAutoCheckout implements JobsHandler.
func (h *jobsHandlerImpl) BackfillAutoCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.backfill(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backfill sweep completed", nil)
}
