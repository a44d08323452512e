package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"tubescribe/internal/service"
	"tubescribe/internal/storage"
	"tubescribe/internal/types"
	"tubescribe/log"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

// DefaultConfig returns a single-machine friendly default config.
func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// TranscriptionPayload contains transcription task enqueue data.
type TranscriptionPayload struct {
	TaskID string          `json:"task_id"`
	Params types.RunParams `json:"params"`
}

// Runner executes queued tasks with in-memory workers.
type Runner struct {
	serviceMu sync.RWMutex
	service   *service.Service

	config Config

	queue  chan TranscriptionPayload
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan TranscriptionPayload, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

// Service returns the service executing queued tasks.
func (r *Runner) Service() *service.Service {
	r.serviceMu.RLock()
	defer r.serviceMu.RUnlock()
	return r.service
}

// SetService replaces the executing service. Tasks already running keep the
// old instance, queued tasks pick up the new one.
func (r *Runner) SetService(svc *service.Service) {
	if svc == nil {
		return
	}
	r.serviceMu.Lock()
	r.service = svc
	r.serviceMu.Unlock()
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

// Submit queues a transcription job.
func (r *Runner) Submit(payload TranscriptionPayload) error {
	if payload.Params.URL == "" {
		return errors.New("transcription task url is required")
	}
	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] task submitted",
			zap.String("task_id", payload.TaskID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case task := <-r.queue:
			r.processTask(workerID, task)
		}
	}
}

func (r *Runner) processTask(workerID int, payload TranscriptionPayload) {
	run, err := types.NewRunConfig(payload.Params)
	if err == nil {
		_, err = r.Service().RunTranscriptionTask(r.ctx, run, payload.TaskID)
	}

	if err != nil {
		r.markTaskFailed(payload.TaskID, err)
		log.GetLogger().Error("[TaskRunner] task failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", payload.TaskID),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] task completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", payload.TaskID))
}

func (r *Runner) markTaskFailed(taskID string, taskErr error) {
	if taskID == "" {
		return
	}

	task, err := storage.GetTask(taskID)
	if err != nil || task == nil {
		return
	}
	if task.Status == types.TaskStatusFailed {
		return
	}

	task.Status = types.TaskStatusFailed
	task.FailReason = taskErr.Error()
	task.StatusMsg = "任务失败 Failed"
	_ = storage.SaveTask(task)
}

// Close stops workers and rejects new tasks.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
