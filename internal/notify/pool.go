package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/tabsplit/internal/config"
)

// sendTimeout bounds a single outbound message.
const sendTimeout = 30 * time.Second

// Job is one queued delivery.
type Job struct {
	Name    string // for logs
	Execute func(ctx context.Context) error
}

// WorkerPool delivers messages in the background on a fixed number of
// workers. Jobs that do not fit in the queue are dropped.
type WorkerPool struct {
	cfg     config.WorkerPoolConfig
	queue   chan Job
	logger  *slog.Logger
	metrics *poolMetrics

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool
}

type poolMetrics struct {
	queued   prometheus.Gauge
	busy     prometheus.Gauge
	done     prometheus.Counter
	dropped  prometheus.Counter
	failed   prometheus.Counter
	duration prometheus.Histogram
}

// newPoolMetrics registers the tabsplit_notify_* series with reg. A nil
// reg leaves them unregistered.
func newPoolMetrics(reg prometheus.Registerer) *poolMetrics {
	f := promauto.With(reg)
	return &poolMetrics{
		queued: f.NewGauge(prometheus.GaugeOpts{
			Name: "tabsplit_notify_queue_depth",
			Help: "Messages waiting for a worker",
		}),
		busy: f.NewGauge(prometheus.GaugeOpts{
			Name: "tabsplit_notify_active_workers",
			Help: "Workers currently delivering a message",
		}),
		done: f.NewCounter(prometheus.CounterOpts{
			Name: "tabsplit_notify_jobs_completed_total",
			Help: "Deliveries attempted, successful or not",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "tabsplit_notify_jobs_dropped_total",
			Help: "Messages discarded because the queue was full or closed",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name: "tabsplit_notify_job_errors_total",
			Help: "Deliveries that returned an error or panicked",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabsplit_notify_job_duration_seconds",
			Help:    "Time spent delivering one message",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}

// NewWorkerPool creates a stopped pool; call Start to run it.
func NewWorkerPool(cfg config.WorkerPoolConfig, reg prometheus.Registerer, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		cfg:     cfg,
		queue:   make(chan Job, cfg.QueueSize),
		logger:  logger.With("component", "notify_pool"),
		metrics: newPoolMetrics(reg),
		base:    base,
		cancel:  cancel,
	}
}

// Start launches the workers. Later calls do nothing.
func (p *WorkerPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	p.logger.Info("Message workers started",
		"max_workers", p.cfg.MaxWorkers,
		"queue_size", p.cfg.QueueSize)
	for i := 0; i < p.cfg.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
}

func (p *WorkerPool) work(id int) {
	defer p.wg.Done()
	for job := range p.queue {
		p.deliver(id, job)
	}
}

func (p *WorkerPool) deliver(workerID int, job Job) {
	p.metrics.queued.Dec()
	p.metrics.busy.Inc()
	defer p.metrics.busy.Dec()

	ctx, cancel := context.WithTimeout(p.base, sendTimeout)
	defer cancel()

	start := time.Now()
	err := safeExecute(ctx, job)
	elapsed := time.Since(start)

	p.metrics.duration.Observe(elapsed.Seconds())
	p.metrics.done.Inc()
	if err != nil {
		p.metrics.failed.Inc()
		p.logger.Error("Message delivery failed",
			"job", job.Name,
			"worker_id", workerID,
			"duration", elapsed,
			"error", err)
		return
	}
	p.logger.Debug("Message delivered", "job", job.Name, "worker_id", workerID, "duration", elapsed)
}

// safeExecute runs job and reports a panic as an error.
func safeExecute(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Execute(ctx)
}

// Submit enqueues job without blocking. It returns false when the job was
// dropped.
func (p *WorkerPool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.metrics.dropped.Inc()
		p.logger.Warn("Message dropped after shutdown", "job", job.Name)
		return false
	}
	select {
	case p.queue <- job:
		p.metrics.queued.Inc()
		return true
	default:
		p.metrics.dropped.Inc()
		p.logger.Warn("Message queue full", "job", job.Name, "queue_size", p.cfg.QueueSize)
		return false
	}
}

// Shutdown closes the queue and waits for the workers to drain it. When
// ctx ends first, in-flight deliveries are cancelled and ctx.Err() is
// returned.
func (p *WorkerPool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.started = false
	close(p.queue)
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()

	defer p.cancel()
	select {
	case <-drained:
		p.logger.Info("Message workers stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Message workers stopped before draining", "pending", len(p.queue))
		return ctx.Err()
	}
}

// QueueDepth returns the number of queued messages.
func (p *WorkerPool) QueueDepth() int {
	return len(p.queue)
}

// IsRunning reports whether Start has run and Shutdown has not.
func (p *WorkerPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started
}
