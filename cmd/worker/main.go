package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/livebundle-github/internal/wire"
)

func main() {
	if err := run(); err != nil {
		slog.Error("worker failed to run", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker, cleanup, err := wire.InitializeWorker(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize worker: %w", err)
	}
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})

	err = g.Wait()
	slog.Info("worker shutting down")
	worker.Stop()
	return err
}
