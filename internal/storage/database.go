// Package storage persists job records.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/livebundle-github/internal/core"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	CreateJob(ctx context.Context, rec *core.JobRecord) error
	UpdateJobStatus(ctx context.Context, id int64, status core.JobStatus, headSHA, errMsg string) error
	GetLatestJobForPR(ctx context.Context, owner, repo string, prNumber int) (*core.JobRecord, error)
	ListRecentJobs(ctx context.Context, limit int) ([]*core.JobRecord, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// CreateJob inserts rec and fills in its ID and timestamps.
func (s *postgresStore) CreateJob(ctx context.Context, rec *core.JobRecord) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO jobs (installation_id, owner, repo, pr_number, head_sha, status, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`

	err := s.db.QueryRowxContext(ctx, query,
		rec.InstallationID, rec.Owner, rec.Repo, rec.PRNumber, rec.HeadSHA, rec.Status, rec.Error, now,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to insert job for %s/%s#%d: %w", rec.Owner, rec.Repo, rec.PRNumber, err)
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

// UpdateJobStatus moves a job to a new status.
func (s *postgresStore) UpdateJobStatus(ctx context.Context, id int64, status core.JobStatus, headSHA, errMsg string) error {
	query := `UPDATE jobs SET status = $2, head_sha = $3, error = $4, updated_at = $5 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, status, headSHA, errMsg, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update job %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLatestJobForPR retrieves the most recent job for a given pull request.
func (s *postgresStore) GetLatestJobForPR(ctx context.Context, owner, repo string, prNumber int) (*core.JobRecord, error) {
	query := `
		SELECT id, installation_id, owner, repo, pr_number, head_sha, status, error, created_at, updated_at
		FROM jobs
		WHERE owner = $1 AND repo = $2 AND pr_number = $3
		ORDER BY created_at DESC
		LIMIT 1`

	var rec core.JobRecord
	if err := s.db.GetContext(ctx, &rec, query, owner, repo, prNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListRecentJobs returns up to limit jobs, newest first.
func (s *postgresStore) ListRecentJobs(ctx context.Context, limit int) ([]*core.JobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, installation_id, owner, repo, pr_number, head_sha, status, error, created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1`

	var recs []*core.JobRecord
	if err := s.db.SelectContext(ctx, &recs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return recs, nil
}
