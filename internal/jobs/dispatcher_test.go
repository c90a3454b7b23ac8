package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func queueConfig(workers, size int) *config.Config {
	return &config.Config{Queue: config.QueueConfig{Backend: config.QueueBackendMemory, MaxWorkers: workers, Size: size}}
}

func TestDispatcher_RunsQueuedJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockJobRunner(ctrl)

	jobs := []core.Job{
		{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 1},
		{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 2},
		{InstallationID: 2, Owner: "baz", Repo: "qux", PRNumber: 3},
	}

	var mu sync.Mutex
	var ran []core.Job
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(len(jobs)).DoAndReturn(
		func(_ context.Context, job core.Job) error {
			mu.Lock()
			defer mu.Unlock()
			ran = append(ran, job)
			return nil
		},
	)

	d := NewDispatcher(context.Background(), runner, queueConfig(2, 10), discardLogger())
	for _, j := range jobs {
		require.NoError(t, d.Queue(context.Background(), j))
	}
	d.Stop()

	assert.ElementsMatch(t, jobs, ran)
}

func TestDispatcher_RunnerErrorDoesNotStopWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockJobRunner(ctrl)

	first := core.Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 1}
	second := core.Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 2}
	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), first).Return(errors.New("boom")),
		runner.EXPECT().Run(gomock.Any(), second).Return(nil),
	)

	d := NewDispatcher(context.Background(), runner, queueConfig(1, 10), discardLogger())
	require.NoError(t, d.Queue(context.Background(), first))
	require.NoError(t, d.Queue(context.Background(), second))
	d.Stop()
}

func TestDispatcher_QueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockJobRunner(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, job core.Job) error {
			if job.PRNumber == 1 {
				close(started)
				<-release
			}
			return nil
		},
	)

	d := NewDispatcher(context.Background(), runner, queueConfig(1, 1), discardLogger())
	job := func(n int) core.Job { return core.Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: n} }

	require.NoError(t, d.Queue(context.Background(), job(1)))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never picked up the first job")
	}

	require.NoError(t, d.Queue(context.Background(), job(2)))
	assert.ErrorIs(t, d.Queue(context.Background(), job(3)), ErrQueueFull)

	close(release)
	d.Stop()
}

func TestDispatcher_QueueAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockJobRunner(ctrl)

	d := NewDispatcher(context.Background(), runner, queueConfig(0, 0), discardLogger())
	d.Stop()
	d.Stop()

	err := d.Queue(context.Background(), core.Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 1})
	assert.ErrorIs(t, err, ErrQueueStopped)
}
