package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"minimal", `{"file_path": "/tmp/a.pdf"}`, true},
		{"with options", `{"file_path": "/tmp/a.pdf", "options": {"processing_tier": "advanced"}}`, true},
		{"missing file_path", `{}`, false},
		{"empty file_path", `{"file_path": ""}`, false},
		{"bad tier", `{"file_path": "/tmp/a.pdf", "options": {"processing_tier": "turbo"}}`, false},
		{"zero timeout", `{"file_path": "/tmp/a.pdf", "options": {"timeout_seconds": 0}}`, false},
		{"positive timeout", `{"file_path": "/tmp/a.pdf", "options": {"timeout_seconds": 30}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProcessRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBatchProcessRequestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"two paths", `{"file_paths": ["/tmp/a.pdf", "/tmp/b.pdf"]}`, true},
		{"empty list", `{"file_paths": []}`, true},
		{"missing field", `{}`, false},
		{"bad tier", `{"file_paths": ["/tmp/a.pdf"], "options": {"processing_tier": "turbo"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req BatchProcessRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestProcessingOptionsToModel(t *testing.T) {
	var nilOpts *ProcessingOptions
	assert.Zero(t, nilOpts.ToModel())

	timeout := 45
	opts := &ProcessingOptions{
		ProcessingTier:   "lightweight",
		Languages:        []string{"en", "de"},
		ForceFullPageOCR: true,
		TimeoutSeconds:   &timeout,
	}

	model := opts.ToModel()
	assert.Equal(t, "lightweight", model.ProcessingTier)
	assert.Equal(t, []string{"en", "de"}, model.Languages)
	assert.True(t, model.ForceFullPageOCR)
	require.NotNil(t, model.TimeoutSeconds)
	assert.Equal(t, 45, *model.TimeoutSeconds)
}
