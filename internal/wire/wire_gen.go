// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/livebundle-github/internal/app"
	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/jobs"
	"github.com/sevigo/livebundle-github/internal/server"
)

// InitializeApp creates and wires the webhook server and its queue.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	slogLogger := provideSlogLogger(loggerConfig)

	queuer, cleanup, err := provideQueuer(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create job queue: %w", err)
	}

	srv := server.NewServer(cfg, queuer, slogLogger)
	application := app.NewApp(cfg, srv, queuer, slogLogger)

	return application, cleanup, nil
}

// InitializeWorker creates and wires the NATS job consumer.
func InitializeWorker(_ context.Context) (*app.Worker, func(), error) {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	slogLogger := provideSlogLogger(loggerConfig)

	runner, cleanup, err := provideJobRunner(cfg, slogLogger)
	if err != nil {
		return nil, nil, err
	}

	nc, err := provideNATSConn(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	consumer := jobs.NewNATSConsumer(nc, cfg, runner, slogLogger)
	worker := app.NewWorker(consumer, nc, slogLogger)

	return worker, cleanup, nil
}
