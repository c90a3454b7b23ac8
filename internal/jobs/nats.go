package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
)

// ConnectNATS dials the configured NATS server with reconnect settings.
func ConnectNATS(cfg *config.Config, name string) (*nats.Conn, error) {
	if cfg.Queue.NATSURL == "" {
		return nil, fmt.Errorf("NATS_URL is required")
	}
	nc, err := nats.Connect(cfg.Queue.NATSURL,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.Queue.NATSURL, err)
	}
	return nc, nil
}

type natsQueuer struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSQueuer returns a Queuer that publishes jobs to the configured subject
// for consumption by a separate worker process.
func NewNATSQueuer(cfg *config.Config, logger *slog.Logger) (Queuer, error) {
	nc, err := ConnectNATS(cfg, "livebundle-github-server")
	if err != nil {
		return nil, err
	}
	return &natsQueuer{nc: nc, subject: cfg.Queue.Subject, logger: logger}, nil
}

// Queue publishes job as JSON. Delivery is at-most-once.
func (q *natsQueuer) Queue(ctx context.Context, job core.Job) error {
	// Publish does not take a context; honor cancellation before sending.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.nc.Publish(q.subject, data); err != nil {
		return fmt.Errorf("failed to publish job to %s: %w", q.subject, err)
	}
	return nil
}

// Stop flushes pending publishes and closes the connection.
func (q *natsQueuer) Stop() {
	if err := q.nc.Drain(); err != nil {
		q.logger.Error("failed to drain NATS connection", "error", err)
	}
}

// NATSConsumer runs jobs received on the queue subject. Consumers sharing a
// queue group split the jobs between them.
type NATSConsumer struct {
	nc      *nats.Conn
	subject string
	group   string
	runner  core.JobRunner
	logger  *slog.Logger
}

// NewNATSConsumer creates a consumer; nothing is received until Subscribe.
func NewNATSConsumer(nc *nats.Conn, cfg *config.Config, runner core.JobRunner, logger *slog.Logger) *NATSConsumer {
	return &NATSConsumer{
		nc:      nc,
		subject: cfg.Queue.Subject,
		group:   cfg.Queue.QueueGroup,
		runner:  runner,
		logger:  logger,
	}
}

// Subscribe starts receiving jobs and unsubscribes when ctx is done.
func (c *NATSConsumer) Subscribe(ctx context.Context) error {
	sub, err := c.nc.QueueSubscribe(c.subject, c.group, func(msg *nats.Msg) {
		c.handleMsg(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.subject, err)
	}
	c.logger.Info("subscribed to job subject", "subject", c.subject, "queue_group", c.group)

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && !isConnectionShutdown(err) {
			c.logger.Warn("failed to unsubscribe", "subject", c.subject, "error", err)
		}
	}()
	return nil
}

// isConnectionShutdown reports whether err only means the connection is
// already draining or closed, which removes the subscription anyway.
func isConnectionShutdown(err error) bool {
	return errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrConnectionDraining) ||
		errors.Is(err, nats.ErrBadSubscription)
}

func (c *NATSConsumer) handleMsg(ctx context.Context, msg *nats.Msg) {
	var job core.Job
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		c.logger.Error("discarding undecodable job message", "subject", msg.Subject, "error", err)
		return
	}

	c.logger.Info("consumer processing job", "repo", job.FullName(), "pr", job.PRNumber)
	if err := c.runner.Run(context.WithoutCancel(ctx), job); err != nil {
		c.logger.Error("job failed", "repo", job.FullName(), "pr", job.PRNumber, "error", err)
	}
}
