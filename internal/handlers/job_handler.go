package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/queue"
	"github.com/ternarybob/docling/internal/schemas"
)

// JobHandler serves job status queries and cancellation
type JobHandler struct {
	orchestrator *queue.Orchestrator
	logger       arbor.ILogger
}

// NewJobHandler creates the job management handler
func NewJobHandler(orchestrator *queue.Orchestrator, logger arbor.ILogger) *JobHandler {
	return &JobHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// ListJobsHandler returns every job in the registry.
// GET /api/v1/jobs
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, h.orchestrator.List())
}

// JobByIDHandler dispatches GET (status) and DELETE (cancel) for one job.
// GET/DELETE /api/v1/jobs/{id}
func (h *JobHandler) JobByIDHandler(jobID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.getJob(w, r, jobID)
		case http.MethodDelete:
			h.cancelJob(w, r, jobID)
		default:
			WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func (h *JobHandler) getJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.orchestrator.Get(jobID)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "Job not found: "+jobID)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

func (h *JobHandler) cancelJob(w http.ResponseWriter, r *http.Request, jobID string) {
	err := h.orchestrator.Cancel(jobID)
	switch {
	case errors.Is(err, queue.ErrJobNotFound):
		WriteError(w, r, http.StatusNotFound, "Job not found: "+jobID)
	case errors.Is(err, queue.ErrJobNotCancellable):
		WriteError(w, r, http.StatusBadRequest, "Job cannot be cancelled: only queued jobs are cancellable")
	case err != nil:
		WriteError(w, r, http.StatusInternalServerError, err.Error())
	default:
		WriteJSON(w, http.StatusOK, schemas.CancelResponse{
			JobID:   jobID,
			Status:  "cancelled",
			TraceID: common.TraceIDFromContext(r.Context()),
		})
	}
}
