// Package taskrunner executes clip pipeline jobs with an in-memory
// worker pool. It is the default dispatcher when no Redis queue is
// configured, trading durability for a zero-dependency setup.
package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"clip-automator/internal/appcore"
	"clip-automator/internal/service"
	"clip-automator/log"
)

const (
	defaultQueueSize   = 64
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

type jobHandle struct {
	id     string
	events chan appcore.JobEvent
	result chan appcore.JobResult
	cancel context.CancelFunc
}

func (h *jobHandle) ID() string {
	return h.id
}

func (h *jobHandle) Events() <-chan appcore.JobEvent {
	return h.events
}

func (h *jobHandle) Result() <-chan appcore.JobResult {
	return h.result
}

func (h *jobHandle) Cancel() error {
	h.cancel()
	return nil
}

type queuedJob struct {
	req    appcore.JobRequest
	ctx    context.Context
	handle *jobHandle
}

// Runner executes queued pipeline jobs with a fixed worker pool.
type Runner struct {
	service *service.Service
	config  Config

	queue  chan queuedJob
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

var _ appcore.Runner = (*Runner)(nil)

// New creates and starts a runner backed by svc.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan queuedJob, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// Submit queues a pipeline job. The returned handle reports stage
// transitions and supports cancellation of the underlying ffmpeg and
// yt-dlp processes.
func (r *Runner) Submit(ctx context.Context, req appcore.JobRequest) (appcore.JobHandle, error) {
	if req.TaskId == "" {
		return nil, errors.New("job task id is required")
	}
	if r.closed.Load() {
		return nil, ErrRunnerStopped
	}

	jobCtx, jobCancel := context.WithCancel(ctx)
	handle := &jobHandle{
		id:     req.TaskId,
		events: make(chan appcore.JobEvent, 8),
		result: make(chan appcore.JobResult, 1),
		cancel: jobCancel,
	}

	job := queuedJob{req: req, ctx: jobCtx, handle: handle}

	select {
	case <-r.ctx.Done():
		jobCancel()
		return nil, ErrRunnerStopped
	case r.queue <- job:
		handle.emit(appcore.JobStageQueued, "queued", nil)
		log.GetLogger().Info("[TaskRunner] job submitted",
			zap.String("task_id", req.TaskId))
		return handle, nil
	default:
		jobCancel()
		return nil, ErrQueueFull
	}
}

// Dispatch adapts Submit to the service dispatcher signature, dropping
// the handle for callers that track progress through the database.
func (r *Runner) Dispatch(req appcore.JobRequest) error {
	_, err := r.Submit(context.Background(), req)
	return err
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case job := <-r.queue:
			r.processJob(workerID, job)
		}
	}
}

func (r *Runner) processJob(workerID int, job queuedJob) {
	startedAt := time.Now()
	job.handle.emit(appcore.JobStageProcessing, "processing", nil)

	err := r.service.ResumeClipPipeline(job.ctx, job.req)

	stage := appcore.JobStageSucceeded
	switch {
	case job.ctx.Err() != nil:
		stage = appcore.JobStageCanceled
	case err != nil:
		stage = appcore.JobStageFailed
	}

	job.handle.emit(stage, stage.String(), err)
	job.handle.finish(appcore.JobResult{
		TaskId:     job.req.TaskId,
		Stage:      stage,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Err:        err,
	})

	if err != nil {
		log.GetLogger().Error("[TaskRunner] job failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", job.req.TaskId),
			zap.String("stage", stage.String()),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] job completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", job.req.TaskId),
		zap.Duration("elapsed", time.Since(startedAt)))
}

func (h *jobHandle) emit(stage appcore.JobStage, msg string, err error) {
	event := appcore.JobEvent{
		TaskId:     h.id,
		Stage:      stage,
		Message:    msg,
		Err:        err,
		OccurredAt: time.Now(),
	}
	select {
	case h.events <- event:
	default:
	}
}

func (h *jobHandle) finish(result appcore.JobResult) {
	h.result <- result
	close(h.result)
	close(h.events)
}

// Close stops workers and rejects new jobs. Jobs still queued are
// dropped; their tasks stay in processing state until the stale sweep
// marks them failed.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of jobs waiting for a worker.
func (r *Runner) Pending() int {
	return len(r.queue)
}
