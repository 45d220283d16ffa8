package translation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pantry-backend/internal/models"

	"github.com/sirupsen/logrus"
)

type JobKind string

const (
	JobEntity   JobKind = "entity"
	JobLanguage JobKind = "language"
)

// Job is one unit of background translation work.
type Job struct {
	Kind         JobKind
	EntityType   models.EntityType
	EntityID     uint
	LanguageCode string
	OnlyMissing  bool
}

func (j Job) fields() logrus.Fields {
	if j.Kind == JobLanguage {
		return logrus.Fields{"job": j.Kind, "language": j.LanguageCode, "only_missing": j.OnlyMissing}
	}
	return logrus.Fields{"job": j.Kind, "entity_type": j.EntityType, "entity_id": j.EntityID}
}

// Runner executes translation jobs. *Orchestrator implements it.
type Runner interface {
	GenerateAutomaticTranslations(ctx context.Context, entityType models.EntityType, entityID uint) ([]Outcome, error)
	GenerateForLanguage(ctx context.Context, code string, onlyMissing bool) (SweepStats, error)
}

// Scheduler accepts background translation work without blocking the caller.
type Scheduler interface {
	ScheduleEntity(entityType models.EntityType, entityID uint) bool
	ScheduleLanguage(code string) bool
}

type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

// DispatcherStats counts jobs since start.
type DispatcherStats struct {
	Running   bool  `json:"running"`
	Queued    int   `json:"queued"`
	Submitted int64 `json:"submitted"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// Dispatcher runs translation jobs on a fixed pool of workers fed by a
// buffered queue. Callers never wait for a job; job errors are logged and
// counted.
type Dispatcher struct {
	runner  Runner
	logger  *logrus.Logger
	queue   chan Job
	workers int
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
	stopped bool
	cancel  context.CancelFunc

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

func NewDispatcher(runner Runner, logger *logrus.Logger, cfg DispatcherConfig) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Dispatcher{
		runner:  runner,
		logger:  logger,
		queue:   make(chan Job, cfg.QueueSize),
		workers: cfg.Workers,
	}
}

// Start launches the workers. Jobs run with a context derived from ctx.
// A stopped dispatcher cannot be restarted.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.stopped {
		return
	}

	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true

	d.logger.WithField("workers", d.workers).Info("Starting translation dispatcher")
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(workerCtx, i)
	}
}

// Stop refuses new jobs and lets workers drain the queue. If ctx expires
// first, in-flight jobs are cancelled.
func (d *Dispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Translation dispatcher stop timed out, cancelling pending jobs")
		d.cancel()
		<-done
	}
	d.cancel()
	d.logger.Info("Translation dispatcher stopped")
}

// Submit queues a job. It returns false when the dispatcher is stopped or the
// queue is full; the job is then dropped and left to the backfill sweep.
func (d *Dispatcher) Submit(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		d.dropped.Add(1)
		d.logger.WithFields(job.fields()).Warn("Translation dispatcher not running, job dropped")
		return false
	}

	select {
	case d.queue <- job:
		d.submitted.Add(1)
		return true
	default:
		d.dropped.Add(1)
		d.logger.WithFields(job.fields()).Warn("Translation queue full, job dropped")
		return false
	}
}

func (d *Dispatcher) ScheduleEntity(entityType models.EntityType, entityID uint) bool {
	return d.Submit(Job{Kind: JobEntity, EntityType: entityType, EntityID: entityID})
}

func (d *Dispatcher) ScheduleLanguage(code string) bool {
	return d.Submit(Job{Kind: JobLanguage, LanguageCode: code})
}

func (d *Dispatcher) Stats() DispatcherStats {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	return DispatcherStats{
		Running:   running,
		Queued:    len(d.queue),
		Submitted: d.submitted.Load(),
		Completed: d.completed.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.WithField("worker_id", id).Debug("Translation worker started")

	for job := range d.queue {
		if err := d.run(ctx, job); err != nil {
			d.failed.Add(1)
			d.logger.WithError(err).WithFields(job.fields()).Error("Translation job failed")
			continue
		}
		d.completed.Add(1)
	}

	d.logger.WithField("worker_id", id).Debug("Translation worker stopped")
}

func (d *Dispatcher) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in translation job: %v", r)
		}
	}()

	switch job.Kind {
	case JobEntity:
		_, err = d.runner.GenerateAutomaticTranslations(ctx, job.EntityType, job.EntityID)
	case JobLanguage:
		_, err = d.runner.GenerateForLanguage(ctx, job.LanguageCode, job.OnlyMissing)
	default:
		err = fmt.Errorf("unknown translation job kind %q", job.Kind)
	}
	return err
}
