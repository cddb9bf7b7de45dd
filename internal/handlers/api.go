package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/queue"
	"github.com/ternarybob/docling/internal/schemas"
)

// APIHandler serves health and version endpoints
type APIHandler struct {
	orchestrator *queue.Orchestrator
	config       *common.Config
	logger       arbor.ILogger
}

// NewAPIHandler creates the system endpoints handler
func NewAPIHandler(orchestrator *queue.Orchestrator, config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		orchestrator: orchestrator,
		config:       config,
		logger:       logger,
	}
}

// HealthHandler reports liveness and queue depth. Served without auth.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := "healthy"
	if !h.orchestrator.IsRunning() {
		status = "unhealthy"
	}

	WriteJSON(w, http.StatusOK, schemas.HealthResponse{
		Status:         status,
		Version:        common.GetVersion(),
		ProcessingTier: h.config.Processing.Tier,
		QueueSize:      h.orchestrator.Size(),
		ActiveJobs:     h.orchestrator.ActiveCount(),
		TraceID:        common.TraceIDFromContext(r.Context()),
	})
}

// VersionHandler returns version and build information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetFullVersion(),
	})
}
