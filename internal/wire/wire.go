//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/livebundle-github/internal/app"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

func InitializeWorker(ctx context.Context) (*app.Worker, func(), error) {
	wire.Build(WorkerSet)
	return &app.Worker{}, nil, nil
}
