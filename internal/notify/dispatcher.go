package notify

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatcher hands messages to the worker pool. Delivery failures are
// logged and counted but never returned to the caller.
type Dispatcher struct {
	pool      *WorkerPool
	messenger Messenger
	logger    *slog.Logger

	sent   *prometheus.CounterVec
	failed *prometheus.CounterVec
}

// NewDispatcher creates a dispatcher. The pool must already be started.
func NewDispatcher(pool *WorkerPool, messenger Messenger, reg prometheus.Registerer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	factory := promauto.With(reg)
	return &Dispatcher{
		pool:      pool,
		messenger: messenger,
		logger:    logger.With("component", "notify"),
		sent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsplit_messages_sent_total",
			Help: "Text messages handed to the provider",
		}, []string{"kind"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabsplit_messages_failed_total",
			Help: "Text messages that failed or were dropped",
		}, []string{"kind"}),
	}
}

// Send queues a message for delivery and returns immediately. kind labels
// metrics and logs, e.g. "confirmation" or "final".
func (d *Dispatcher) Send(kind, to, body string) {
	if to == "" {
		return
	}
	ok := d.pool.Submit(Job{
		Name: "sms:" + kind,
		Execute: func(ctx context.Context) error {
			if err := d.messenger.Send(ctx, to, body); err != nil {
				d.failed.WithLabelValues(kind).Inc()
				return err
			}
			d.sent.WithLabelValues(kind).Inc()
			return nil
		},
	})
	if !ok {
		d.failed.WithLabelValues(kind).Inc()
		d.logger.Warn("Message dropped", "kind", kind)
	}
}
