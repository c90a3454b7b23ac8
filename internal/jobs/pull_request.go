package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/github"
	"github.com/sevigo/livebundle-github/internal/storage"
)

// PullRequestJob records a queued pull request, resolves its head commit and
// marks the commit with a queued LiveBundle check run.
type PullRequestJob struct {
	store     storage.Store
	newClient github.ClientFactory
	logger    *slog.Logger
}

// NewPullRequestJob creates the runner used by every queue backend.
func NewPullRequestJob(store storage.Store, newClient github.ClientFactory, logger *slog.Logger) core.JobRunner {
	if store == nil {
		panic("store cannot be nil")
	}
	if newClient == nil {
		panic("GitHub client factory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PullRequestJob{store: store, newClient: newClient, logger: logger}
}

// Run processes one job. The job record ends up "done" or "failed".
func (j *PullRequestJob) Run(ctx context.Context, job core.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}

	rec := &core.JobRecord{
		InstallationID: job.InstallationID,
		Owner:          job.Owner,
		Repo:           job.Repo,
		PRNumber:       job.PRNumber,
		Status:         core.JobStatusRunning,
	}
	if err := j.store.CreateJob(ctx, rec); err != nil {
		return fmt.Errorf("failed to record job: %w", err)
	}

	j.logger.Info("starting pull request job", "job_id", rec.ID, "repo", job.FullName(), "pr", job.PRNumber)

	headSHA, err := j.process(ctx, job)
	if err != nil {
		j.finish(ctx, rec.ID, core.JobStatusFailed, headSHA, err.Error())
		return err
	}

	j.finish(ctx, rec.ID, core.JobStatusDone, headSHA, "")
	j.logger.Info("pull request job completed", "job_id", rec.ID, "repo", job.FullName(), "pr", job.PRNumber, "head_sha", headSHA)
	return nil
}

func (j *PullRequestJob) process(ctx context.Context, job core.Job) (string, error) {
	client, err := j.newClient(ctx, job.InstallationID)
	if err != nil {
		return "", fmt.Errorf("failed to create GitHub client: %w", err)
	}

	pr, err := client.GetPullRequest(ctx, job.Owner, job.Repo, job.PRNumber)
	if err != nil {
		return "", fmt.Errorf("failed to get PR details: %w", err)
	}
	headSHA := pr.GetHead().GetSHA()
	if headSHA == "" {
		return "", fmt.Errorf("PR %d has no valid head SHA", job.PRNumber)
	}

	if _, err := github.NewStatusUpdater(client).Queued(ctx, job, headSHA); err != nil {
		return headSHA, fmt.Errorf("failed to set queued status: %w", err)
	}
	return headSHA, nil
}

func (j *PullRequestJob) finish(ctx context.Context, id int64, status core.JobStatus, headSHA, errMsg string) {
	if err := j.store.UpdateJobStatus(ctx, id, status, headSHA, errMsg); err != nil {
		j.logger.Error("failed to update job status", "job_id", id, "status", status, "error", err)
	}
}
