package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/jobs"
	"github.com/sevigo/livebundle-github/internal/server"
	"github.com/sevigo/livebundle-github/mocks"
)

func TestApp_StartServesAndStopDrainsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockJobRunner(ctrl)

	ran := make(chan core.Job, 1)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job core.Job) error {
		ran <- job
		return nil
	})

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Queue:  config.QueueConfig{Backend: config.QueueBackendMemory, Size: 4, MaxWorkers: 1},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	queuer := jobs.NewDispatcher(context.Background(), runner, cfg, logger)
	srv := server.NewServer(cfg, queuer, logger)
	a := NewApp(cfg, srv, queuer, logger)

	require.NoError(t, a.Start())

	addr, err := srv.Address()
	require.NoError(t, err)
	port, err := srv.Port()
	require.NoError(t, err)

	body := `{"action":"opened","installation":{"id":1},"repository":{"owner":{"login":"foo"},"name":"bar"},"number":2}`
	resp, err := http.Post(fmt.Sprintf("http://%s:%d/", addr, port), "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case job := <-ran:
		assert.Equal(t, core.Job{InstallationID: 1, Owner: "foo", Repo: "bar", PRNumber: 2}, job)
	case <-time.After(5 * time.Second):
		t.Fatal("job was not run")
	}

	a.Stop()
	_, err = srv.Port()
	assert.ErrorIs(t, err, server.ErrNotStarted)
}
