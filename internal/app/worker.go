package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/sevigo/livebundle-github/internal/jobs"
)

// Worker consumes jobs published by servers running the nats queue backend.
type Worker struct {
	consumer *jobs.NATSConsumer
	nc       *nats.Conn
	logger   *slog.Logger
}

// NewWorker assembles a worker around an existing NATS connection.
func NewWorker(consumer *jobs.NATSConsumer, nc *nats.Conn, logger *slog.Logger) *Worker {
	return &Worker{consumer: consumer, nc: nc, logger: logger}
}

// Run subscribes and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.consumer.Subscribe(ctx); err != nil {
		return err
	}
	w.logger.Info("livebundle-github worker running")
	<-ctx.Done()
	return nil
}

// Stop drains in-flight messages and closes the connection.
func (w *Worker) Stop() {
	w.logger.Info("stopping livebundle-github worker")
	if err := w.nc.Drain(); err != nil {
		w.logger.Error("failed to drain NATS connection", "error", err)
	}
}
