// Package queue implements the job orchestrator: the in-memory job registry,
// the bounded intake queue and the worker pool that drains it.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/converter"
	"github.com/ternarybob/docling/internal/models"
	"github.com/ternarybob/docling/internal/tempfiles"
)

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrJobNotCancellable = errors.New("job is not cancellable")
)

// intakeCapacity bounds the number of jobs waiting for a worker
const intakeCapacity = 1024

// Orchestrator owns the job registry and the worker pool. Jobs live in the
// registry for the lifetime of the process; the intake channel carries job
// IDs to workers in FIFO order.
type Orchestrator struct {
	config    *common.Config
	engine    converter.Engine
	tempFiles *tempfiles.Manager
	logger    arbor.ILogger

	mu   sync.RWMutex
	jobs map[string]*models.Job

	intake chan string

	runMu   sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates an orchestrator bound to the given conversion engine
func NewOrchestrator(config *common.Config, engine converter.Engine, tempFiles *tempfiles.Manager, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		config:    config,
		engine:    engine,
		tempFiles: tempFiles,
		logger:    logger,
		jobs:      make(map[string]*models.Job),
		intake:    make(chan string, intakeCapacity),
	}
}

// Start launches the worker pool. Calling Start on a running orchestrator is
// a no-op.
func (o *Orchestrator) Start() {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	if o.running {
		return
	}

	numWorkers := o.config.Processing.MaxConcurrentJobs
	o.logger.Info().
		Int("num_workers", numWorkers).
		Msg("queue_starting")

	o.ctx, o.cancel = context.WithCancel(context.Background())
	o.running = true

	for i := 1; i <= numWorkers; i++ {
		o.wg.Add(1)
		go o.worker(o.ctx, i)
	}

	o.logger.Info().
		Int("num_workers", numWorkers).
		Msg("queue_started")
}

// Stop signals the workers and waits for them to drain. In-flight conversions
// are cancelled through the worker context.
func (o *Orchestrator) Stop() {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	if !o.running {
		return
	}

	o.logger.Info().Msg("queue_stopping")

	o.cancel()
	o.wg.Wait()
	o.running = false

	o.logger.Info().Msg("queue_stopped")
}

// IsRunning reports whether the worker pool is active
func (o *Orchestrator) IsRunning() bool {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	return o.running
}

// Enqueue registers a new job and appends it to the intake queue. A fresh
// trace ID is minted when the caller does not supply one.
func (o *Orchestrator) Enqueue(filePath string, opts models.ProcessingOptions, traceID, correlationID string) string {
	job := o.register(filePath, opts, traceID, correlationID)
	o.submit(job)
	return job.ID
}

// EnqueueBatch registers sibling jobs sharing one correlation ID. Every job
// record exists in the registry before the first sibling is handed to a
// worker. Returns the correlation ID and the job IDs in submission order.
func (o *Orchestrator) EnqueueBatch(filePaths []string, opts models.ProcessingOptions, traceID string) (string, []string) {
	correlationID := uuid.New().String()

	jobs := make([]*models.Job, 0, len(filePaths))
	for _, filePath := range filePaths {
		jobs = append(jobs, o.register(filePath, opts, traceID, correlationID))
	}

	jobIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		o.submit(job)
		jobIDs = append(jobIDs, job.ID)
	}

	o.logger.Info().
		Str("correlation_id", correlationID).
		Int("job_count", len(jobIDs)).
		Msg("batch_enqueued")

	return correlationID, jobIDs
}

func (o *Orchestrator) register(filePath string, opts models.ProcessingOptions, traceID, correlationID string) *models.Job {
	if traceID == "" {
		traceID = uuid.New().String()
	}

	job := &models.Job{
		ID:            uuid.New().String(),
		FilePath:      filePath,
		Options:       opts,
		State:         models.JobStateQueued,
		Progress:      0,
		CreatedAt:     time.Now().UTC(),
		TraceID:       traceID,
		CorrelationID: correlationID,
	}

	o.mu.Lock()
	o.jobs[job.ID] = job
	o.mu.Unlock()

	return job
}

func (o *Orchestrator) submit(job *models.Job) {
	o.intake <- job.ID

	o.logger.Info().
		Str("job_id", job.ID).
		Str("file_path", job.FilePath).
		Str("trace_id", job.TraceID).
		Int("queue_size", len(o.intake)).
		Msg("job_enqueued")
}

// Get returns a copy of the job record
func (o *Orchestrator) Get(jobID string) (*models.Job, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	job, ok := o.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job.Clone(), nil
}

// List returns copies of every job in the registry, in no particular order
func (o *Orchestrator) List() []*models.Job {
	o.mu.RLock()
	defer o.mu.RUnlock()

	jobs := make([]*models.Job, 0, len(o.jobs))
	for _, job := range o.jobs {
		jobs = append(jobs, job.Clone())
	}
	return jobs
}

// Cancel marks a queued job cancelled. The job's intake entry stays in the
// channel; workers discard it on dequeue. Jobs already processing or in a
// terminal state cannot be cancelled.
func (o *Orchestrator) Cancel(jobID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if job.State != models.JobStateQueued {
		return ErrJobNotCancellable
	}

	now := time.Now().UTC()
	job.State = models.JobStateCancelled
	job.CompletedAt = &now
	job.Progress = 100

	o.logger.Info().
		Str("job_id", jobID).
		Str("trace_id", job.TraceID).
		Msg("job_cancelled")

	return nil
}

// Size returns the number of jobs waiting in the intake queue, including
// cancelled tombstones not yet discarded by a worker
func (o *Orchestrator) Size() int {
	return len(o.intake)
}

// ActiveCount returns the number of jobs currently being processed
func (o *Orchestrator) ActiveCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	active := 0
	for _, job := range o.jobs {
		if job.State == models.JobStateProcessing {
			active++
		}
	}
	return active
}

// update applies fn to the job under the registry lock and returns a clone,
// or nil when the job does not exist
func (o *Orchestrator) update(jobID string, fn func(*models.Job)) *models.Job {
	o.mu.Lock()
	defer o.mu.Unlock()

	job, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	fn(job)
	return job.Clone()
}
