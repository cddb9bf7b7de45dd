package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/queue"
	"github.com/ternarybob/docling/internal/schemas"
)

// ProcessHandler accepts document submissions
type ProcessHandler struct {
	orchestrator *queue.Orchestrator
	logger       arbor.ILogger
}

// NewProcessHandler creates the submission handler
func NewProcessHandler(orchestrator *queue.Orchestrator, logger arbor.ILogger) *ProcessHandler {
	return &ProcessHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// ProcessDocumentHandler enqueues a single document.
// POST /api/v1/process
func (h *ProcessHandler) ProcessDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req schemas.ProcessRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	traceID := common.TraceIDFromContext(r.Context())
	jobID := h.orchestrator.Enqueue(req.FilePath, req.Options.ToModel(), traceID, "")

	WriteJSON(w, http.StatusOK, schemas.ProcessResponse{
		JobID:   jobID,
		Status:  "queued",
		Message: "Document queued for processing",
		TraceID: traceID,
	})
}

// BatchProcessHandler enqueues a batch of documents sharing one correlation ID.
// POST /api/v1/process/batch
func (h *ProcessHandler) BatchProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req schemas.BatchProcessRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	traceID := common.TraceIDFromContext(r.Context())
	correlationID, jobIDs := h.orchestrator.EnqueueBatch(req.FilePaths, req.Options.ToModel(), traceID)

	WriteJSON(w, http.StatusOK, schemas.BatchProcessResponse{
		CorrelationID:  correlationID,
		JobIDs:         jobIDs,
		TotalDocuments: len(jobIDs),
		Status:         "queued",
		TraceID:        traceID,
	})
}
