// Package schemas defines the request and response bodies of the HTTP API
package schemas

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/docling/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProcessingOptions are the per-request conversion overrides
type ProcessingOptions struct {
	ProcessingTier   string   `json:"processing_tier,omitempty" validate:"omitempty,oneof=lightweight standard advanced"`
	Languages        []string `json:"languages,omitempty"`
	ForceFullPageOCR bool     `json:"force_full_page_ocr,omitempty"`
	TimeoutSeconds   *int     `json:"timeout_seconds,omitempty" validate:"omitempty,gt=0"`
}

// ToModel converts request options into the orchestrator's options type
func (o *ProcessingOptions) ToModel() models.ProcessingOptions {
	if o == nil {
		return models.ProcessingOptions{}
	}
	return models.ProcessingOptions{
		ProcessingTier:   o.ProcessingTier,
		Languages:        o.Languages,
		ForceFullPageOCR: o.ForceFullPageOCR,
		TimeoutSeconds:   o.TimeoutSeconds,
	}
}

// ProcessRequest submits a single document for processing
type ProcessRequest struct {
	FilePath string             `json:"file_path" validate:"required"`
	Options  *ProcessingOptions `json:"options,omitempty"`
}

// Validate checks structural constraints on the request body
func (r *ProcessRequest) Validate() error {
	return validate.Struct(r)
}

// BatchProcessRequest submits multiple documents sharing one correlation ID.
// An empty file list is accepted and produces an empty batch.
type BatchProcessRequest struct {
	FilePaths []string           `json:"file_paths"`
	Options   *ProcessingOptions `json:"options,omitempty"`
}

// Validate checks structural constraints on the request body. An empty list
// is valid; a missing field is not.
func (r *BatchProcessRequest) Validate() error {
	if r.FilePaths == nil {
		return errors.New("file_paths is required")
	}
	return validate.Struct(r)
}
