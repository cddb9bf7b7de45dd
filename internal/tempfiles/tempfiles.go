// Package tempfiles manages per-job scratch directories under the configured
// temp root and reclaims orphans left behind by earlier runs.
package tempfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// OrphanAge is how old a job directory must be before the janitor removes it
const OrphanAge = time.Hour

const jobDirPrefix = "job_"

// Manager owns the scratch root for job processing
type Manager struct {
	baseDir string
	logger  arbor.ILogger
}

// NewManager creates a temp file manager rooted at baseDir
func NewManager(baseDir string, logger arbor.ILogger) *Manager {
	return &Manager{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Dir returns the scratch root, creating it on first use
func (m *Manager) Dir() (string, error) {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir %s: %w", m.baseDir, err)
	}
	return m.baseDir, nil
}

// JobDir returns the scratch directory for a job, creating it if needed
func (m *Manager) JobDir(jobID string) (string, error) {
	base, err := m.Dir()
	if err != nil {
		return "", err
	}

	jobDir := filepath.Join(base, jobDirPrefix+jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create job temp dir %s: %w", jobDir, err)
	}
	return jobDir, nil
}

// CleanupJob removes a job's scratch directory after it reaches a terminal
// state. Missing directories are fine; removal failures are logged only.
func (m *Manager) CleanupJob(jobID, traceID string) bool {
	jobDir := filepath.Join(m.baseDir, jobDirPrefix+jobID)

	if _, err := os.Stat(jobDir); os.IsNotExist(err) {
		return true
	}

	if err := os.RemoveAll(jobDir); err != nil {
		m.logger.Warn().
			Err(err).
			Str("job_id", jobID).
			Str("trace_id", traceID).
			Str("path", jobDir).
			Msg("job_temp_cleanup_failed")
		return false
	}

	m.logger.Debug().
		Str("job_id", jobID).
		Str("trace_id", traceID).
		Str("path", jobDir).
		Msg("job_temp_files_cleaned")
	return true
}

// CleanupOrphans removes job directories older than maxAge. Individual
// failures are logged and skipped; the sweep never aborts startup.
func (m *Manager) CleanupOrphans(maxAge time.Duration) int {
	m.logger.Info().
		Str("temp_dir", m.baseDir).
		Int("max_age_seconds", int(maxAge.Seconds())).
		Msg("orphan_cleanup_starting")

	cleaned := 0
	now := time.Now()

	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn().Err(err).Str("temp_dir", m.baseDir).Msg("orphan_cleanup_failed")
		}
		m.logger.Info().Int("cleaned_count", 0).Msg("orphan_cleanup_completed")
		return 0
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), jobDirPrefix) {
			continue
		}

		path := filepath.Join(m.baseDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			m.logger.Warn().Err(err).Str("path", path).Msg("orphan_cleanup_item_failed")
			continue
		}

		age := now.Sub(info.ModTime())
		if age <= maxAge {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			m.logger.Warn().
				Err(err).
				Str("path", path).
				Msg("orphan_cleanup_item_failed")
			continue
		}

		cleaned++
		m.logger.Info().
			Str("path", path).
			Int("age_seconds", int(age.Seconds())).
			Msg("orphan_temp_dir_cleaned")
	}

	m.logger.Info().
		Int("cleaned_count", cleaned).
		Msg("orphan_cleanup_completed")

	return cleaned
}

// Stats reports size and job directory count for the scratch root
type Stats struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	SizeBytes int64  `json:"size_bytes"`
	JobCount  int    `json:"job_count"`
}

// GetStats returns statistics about the temp directory
func (m *Manager) GetStats() Stats {
	stats := Stats{Path: m.baseDir}

	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return stats
	}
	stats.Exists = true

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), jobDirPrefix) {
			stats.JobCount++
		}
	}

	filepath.Walk(m.baseDir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && info != nil && !info.IsDir() {
			stats.SizeBytes += info.Size()
		}
		return nil
	})

	return stats
}
