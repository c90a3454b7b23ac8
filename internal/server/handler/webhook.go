// Package handler provides HTTP handlers for the webhook receiver.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/livebundle-github/internal/core"
)

// maxPayloadBytes matches the largest webhook payload GitHub delivers.
const maxPayloadBytes = 25 << 20

type ackResponse struct {
	OK int `json:"ok"`
}

// WebhookHandler turns pull_request webhooks into queued jobs.
type WebhookHandler struct {
	queuer core.JobQueuer
	logger *slog.Logger
}

// NewWebhookHandler creates a new webhook handler that queues jobs on queuer.
func NewWebhookHandler(queuer core.JobQueuer, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		queuer: queuer,
		logger: logger,
	}
}

// Handle processes a webhook delivery. The response is always 200 {"ok":1};
// whether a job was queued is visible only in the logs.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("failed to read webhook body", "error", err)
	}

	job, err := core.JobFromPullRequestEvent(payload)
	switch {
	case errors.Is(err, core.ErrIgnoredEvent):
		h.logger.Debug("ignoring webhook delivery", "event", r.Header.Get("X-GitHub-Event"))
	case err != nil:
		h.logger.Warn("dropping malformed pull request event",
			"delivery", r.Header.Get("X-GitHub-Delivery"),
			"error", err,
		)
	default:
		go h.queue(context.WithoutCancel(r.Context()), *job)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ackResponse{OK: 1})
}

// queue hands the job to the queuer off the response path.
func (h *WebhookHandler) queue(ctx context.Context, job core.Job) {
	if err := h.queuer.Queue(ctx, job); err != nil {
		h.logger.Error("failed to queue job",
			"repo", job.FullName(),
			"pr", job.PRNumber,
			"error", err,
		)
		return
	}
	h.logger.Info("job queued",
		"repo", job.FullName(),
		"pr", job.PRNumber,
		"installation_id", job.InstallationID,
	)
}
