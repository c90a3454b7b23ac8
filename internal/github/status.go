package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/livebundle-github/internal/core"
)

// CheckRunName is the name of the check run shown on pull requests.
const CheckRunName = "LiveBundle"

// StatusUpdater reports job progress on a pull request.
type StatusUpdater interface {
	Queued(ctx context.Context, job core.Job, headSHA string) (int64, error)
}

type statusUpdater struct {
	client Client
}

// NewStatusUpdater creates and returns a new instance of a statusUpdater.
func NewStatusUpdater(client Client) StatusUpdater {
	return &statusUpdater{client: client}
}

// Queued creates a check run in the "queued" state on headSHA.
func (s *statusUpdater) Queued(ctx context.Context, job core.Job, headSHA string) (int64, error) {
	title, summary := queuedOutput(job)
	opts := github.CreateCheckRunOptions{
		Name:    CheckRunName,
		HeadSHA: headSHA,
		Status:  github.Ptr("queued"),
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	checkRun, err := s.client.CreateCheckRun(ctx, job.Owner, job.Repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to create check run: %w", err)
	}
	return checkRun.GetID(), nil
}

func queuedOutput(job core.Job) (string, string) {
	title := "Bundle queued"
	summary := fmt.Sprintf("A LiveBundle for %s#%d is queued and will be generated shortly.", job.FullName(), job.PRNumber)
	return title, summary
}
