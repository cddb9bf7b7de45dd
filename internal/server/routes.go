package server

import (
	"net/http"
	"strings"

	"github.com/ternarybob/docling/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - System
	mux.HandleFunc("/api/v1/health", s.apiHandler.HealthHandler)
	mux.HandleFunc("/api/v1/version", s.apiHandler.VersionHandler)

	// API routes - Processing
	mux.HandleFunc("/api/v1/process", s.processHandler.ProcessDocumentHandler)
	mux.HandleFunc("/api/v1/process/batch", s.processHandler.BatchProcessHandler)

	// API routes - Jobs
	mux.HandleFunc("/api/v1/jobs", s.jobHandler.ListJobsHandler)
	mux.HandleFunc("/api/v1/jobs/", s.handleJobRoutes) // GET/DELETE /{id}

	return mux
}

// handleJobRoutes dispatches /api/v1/jobs/{id}
func (s *Server) handleJobRoutes(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	if jobID == "" || strings.Contains(jobID, "/") {
		handlers.WriteError(w, r, http.StatusNotFound, "Not found")
		return
	}

	s.jobHandler.JobByIDHandler(jobID)(w, r)
}
