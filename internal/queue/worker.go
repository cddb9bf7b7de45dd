package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/models"
)

// idlePoll is how often an idle worker re-checks for shutdown
const idlePoll = time.Second

// pageCountEstimate feeds the timeout formula; page count is not known
// before conversion runs
const pageCountEstimate = 100

func (o *Orchestrator) worker(ctx context.Context, workerID int) {
	defer o.wg.Done()

	o.logger.Info().
		Int("worker_id", workerID).
		Msg("worker_started")

	for {
		select {
		case <-ctx.Done():
			o.logger.Info().
				Int("worker_id", workerID).
				Msg("worker_stopped")
			return

		case jobID := <-o.intake:
			job := o.claim(jobID)
			if job == nil {
				continue
			}
			o.processJob(ctx, job, workerID)

		case <-time.After(idlePoll):
		}
	}
}

// claim transitions a queued job to processing and returns a snapshot, or nil
// when the dequeued ID is a cancelled tombstone or unknown
func (o *Orchestrator) claim(jobID string) *models.Job {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[jobID]
	if !ok || job.State != models.JobStateQueued {
		return nil
	}

	now := time.Now().UTC()
	job.State = models.JobStateProcessing
	job.StartedAt = &now
	job.Progress = 10

	if rss, ok := common.ProcessRSSMB(); ok {
		job.MemoryRSSStartMB = &rss
	}

	return job.Clone()
}

// processJob runs one conversion to a terminal state. Every outcome,
// including panics in the engine, is recorded on the job record; nothing
// escapes to the worker loop.
func (o *Orchestrator) processJob(ctx context.Context, job *models.Job, workerID int) {
	log := o.logger.WithCorrelationId(job.TraceID)

	startEvent := log.Info().
		Str("job_id", job.ID).
		Str("file_path", job.FilePath).
		Int("worker_id", workerID)
	if job.MemoryRSSStartMB != nil {
		startEvent = startEvent.Float64("memory_mb", *job.MemoryRSSStartMB)
	}
	startEvent.Msg("job_processing_started")

	defer func() {
		final := o.update(job.ID, func(j *models.Job) {
			if j.CompletedAt == nil {
				now := time.Now().UTC()
				j.CompletedAt = &now
			}
			j.Progress = 100
			if rss, ok := common.ProcessRSSMB(); ok {
				j.MemoryRSSEndMB = &rss
			}
		})

		o.tempFiles.CleanupJob(job.ID, job.TraceID)

		if final == nil {
			return
		}
		event := log.Info().
			Str("job_id", final.ID).
			Str("status", string(final.State))
		if final.MemoryRSSStartMB != nil && final.MemoryRSSEndMB != nil {
			event = event.
				Float64("memory_start_mb", *final.MemoryRSSStartMB).
				Float64("memory_end_mb", *final.MemoryRSSEndMB).
				Float64("memory_delta_mb", *final.MemoryRSSEndMB-*final.MemoryRSSStartMB)
		}
		event.Msg("job_finished")
	}()

	timeoutSeconds := o.timeoutFor(job.Options)

	o.update(job.ID, func(j *models.Job) {
		j.Progress = 20
	})

	convertCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	result, err := o.safeConvert(convertCtx, job)

	switch {
	case convertCtx.Err() == context.DeadlineExceeded:
		message := fmt.Sprintf("Processing timeout after %d seconds", timeoutSeconds)
		o.fail(job.ID, message, models.ErrorTypeTimeout)
		log.Warn().
			Str("job_id", job.ID).
			Int("timeout_seconds", timeoutSeconds).
			Msg("job_timeout")

	case err != nil && errors.Is(err, context.Canceled):
		o.fail(job.ID, "Processing aborted: service shutting down", models.ErrorTypeProcessing)
		log.Warn().
			Str("job_id", job.ID).
			Msg("job_failed")

	case err != nil:
		o.fail(job.ID, err.Error(), models.ErrorTypeProcessing)
		log.Error().
			Err(err).
			Str("job_id", job.ID).
			Msg("job_failed")

	case result == nil || result.Status != "success":
		message := "Unknown error"
		if result != nil && result.Error != "" {
			message = result.Error
		}
		o.fail(job.ID, message, models.ErrorTypeProcessing)
		log.Error().
			Str("job_id", job.ID).
			Str("error", message).
			Msg("job_failed")

	default:
		o.update(job.ID, func(j *models.Job) {
			j.Progress = 90
		})
		o.update(job.ID, func(j *models.Job) {
			now := time.Now().UTC()
			j.State = models.JobStateCompleted
			j.CompletedAt = &now
			j.Result = result
		})

		event := log.Info().Str("job_id", job.ID)
		if result.Metadata != nil {
			event = event.
				Int("page_count", result.Metadata.PageCount).
				Int64("processing_time_ms", result.Metadata.ProcessingTimeMs)
		}
		event.Msg("job_completed")
	}
}

// safeConvert calls the engine with panic recovery so a faulty conversion
// takes down one job instead of the worker
func (o *Orchestrator) safeConvert(ctx context.Context, job *models.Job) (result *models.ProcessingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("conversion panic: %v", r)
		}
	}()

	return o.engine.Convert(ctx, job.FilePath, job.Options)
}

func (o *Orchestrator) fail(jobID, message, errorType string) {
	o.update(jobID, func(j *models.Job) {
		now := time.Now().UTC()
		j.State = models.JobStateFailed
		j.CompletedAt = &now
		j.Error = message
		j.ErrorType = errorType
	})
}

// timeoutFor resolves the per-job deadline: an explicit override wins,
// otherwise the tier-scaled formula applies
func (o *Orchestrator) timeoutFor(opts models.ProcessingOptions) int {
	if opts.TimeoutSeconds != nil && *opts.TimeoutSeconds > 0 {
		return *opts.TimeoutSeconds
	}

	tier := opts.ProcessingTier
	if tier == "" {
		tier = o.config.Processing.Tier
	}

	return CalcTimeout(
		pageCountEstimate,
		tier,
		o.config.Processing.TimeoutBaseSeconds,
		o.config.Processing.TimeoutPerPageSeconds,
	)
}
