package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/wire"
	"github.com/nats-io/nats.go"

	"github.com/sevigo/livebundle-github/internal/app"
	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/db"
	"github.com/sevigo/livebundle-github/internal/github"
	"github.com/sevigo/livebundle-github/internal/jobs"
	"github.com/sevigo/livebundle-github/internal/logger"
	"github.com/sevigo/livebundle-github/internal/server"
	"github.com/sevigo/livebundle-github/internal/storage"
)

// AppSet provides the webhook server application.
var AppSet = wire.NewSet(
	config.LoadConfig,
	provideLoggerConfig,
	provideSlogLogger,
	provideQueuer,
	server.NewServer,
	app.NewApp,
	wire.Bind(new(core.JobQueuer), new(jobs.Queuer)),
)

// WorkerSet provides the NATS consumer process.
var WorkerSet = wire.NewSet(
	config.LoadWorkerConfig,
	provideLoggerConfig,
	provideSlogLogger,
	provideJobRunner,
	provideNATSConn,
	jobs.NewNATSConsumer,
	app.NewWorker,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideSlogLogger(loggerConfig logger.Config) *slog.Logger {
	l := logger.NewLogger(loggerConfig, nil)
	slog.SetDefault(l)
	return l
}

// provideQueuer picks the queue backend. Only the memory backend runs jobs
// in-process and therefore needs the database and GitHub credentials.
func provideQueuer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (jobs.Queuer, func(), error) {
	switch cfg.Queue.Backend {
	case config.QueueBackendNATS:
		q, err := jobs.NewNATSQueuer(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return q, func() {}, nil
	case config.QueueBackendMemory:
		runner, cleanup, err := provideJobRunner(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return jobs.NewDispatcher(ctx, runner, cfg, logger), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported queue backend: %s", cfg.Queue.Backend)
	}
}

func provideJobRunner(cfg *config.Config, logger *slog.Logger) (core.JobRunner, func(), error) {
	dbConn, dbCleanup, err := db.NewDatabase(&cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	newClient, err := github.NewInstallationClientFactory(cfg, logger)
	if err != nil {
		dbCleanup()
		return nil, nil, err
	}

	store := storage.NewStore(dbConn.DB)
	return jobs.NewPullRequestJob(store, newClient, logger), dbCleanup, nil
}

func provideNATSConn(cfg *config.Config) (*nats.Conn, error) {
	return jobs.ConnectNATS(cfg, "livebundle-github-worker")
}
