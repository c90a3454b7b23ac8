// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"context"
	"fmt"
	"time"
)

// Job describes one pull request that should be processed downstream.
type Job struct {
	InstallationID int64  `json:"installationId"`
	Owner          string `json:"owner"`
	PRNumber       int    `json:"prNumber"`
	Repo           string `json:"repo"`
}

// FullName returns the owner/repo form of the job's repository.
func (j Job) FullName() string {
	return j.Owner + "/" + j.Repo
}

// Validate reports whether the job carries everything a runner needs.
func (j Job) Validate() error {
	if j.InstallationID <= 0 {
		return fmt.Errorf("installation ID must be positive, got: %d", j.InstallationID)
	}
	if j.Owner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if j.Repo == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if j.PRNumber <= 0 {
		return fmt.Errorf("pull request number must be positive, got: %d", j.PRNumber)
	}
	return nil
}

// JobQueuer accepts jobs for later asynchronous processing. It decouples the
// webhook listener from the mechanism that executes jobs.
//
//go:generate mockgen -destination=../../mocks/mock_job_queuer.go -package=mocks . JobQueuer
type JobQueuer interface {
	// Queue hands the job over to the queue. The caller keeps no reference to
	// the job afterwards. An error means the job was not accepted.
	Queue(ctx context.Context, job Job) error
}

// JobRunner executes a single job pulled off a queue.
//
//go:generate mockgen -destination=../../mocks/mock_job_runner.go -package=mocks . JobRunner
type JobRunner interface {
	Run(ctx context.Context, job Job) error
}

// JobStatus is the lifecycle state of a persisted job.
type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

// JobRecord is a job as stored in the database.
type JobRecord struct {
	ID             int64     `db:"id" yaml:"id"`
	InstallationID int64     `db:"installation_id" yaml:"installationId"`
	Owner          string    `db:"owner" yaml:"owner"`
	Repo           string    `db:"repo" yaml:"repo"`
	PRNumber       int       `db:"pr_number" yaml:"prNumber"`
	HeadSHA        string    `db:"head_sha" yaml:"headSha,omitempty"`
	Status         JobStatus `db:"status" yaml:"status"`
	Error          string    `db:"error" yaml:"error,omitempty"`
	CreatedAt      time.Time `db:"created_at" yaml:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" yaml:"updatedAt"`
}
