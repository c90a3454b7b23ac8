// Package app ties the webhook listener and the job queue together and owns
// their start/stop ordering.
package app

import (
	"log/slog"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/jobs"
	"github.com/sevigo/livebundle-github/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	queuer jobs.Queuer
	logger *slog.Logger
}

// NewApp assembles the application from already constructed components.
func NewApp(cfg *config.Config, srv *server.Server, queuer jobs.Queuer, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		server: srv,
		queuer: queuer,
		logger: logger,
	}
}

// Start binds the webhook listener. It returns once the listener is accepting connections.
func (a *App) Start() error {
	a.logger.Info("starting livebundle-github",
		"host", a.cfg.Server.Host,
		"port", a.cfg.Server.Port,
		"queue_backend", a.cfg.Queue.Backend,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start webhook server", "error", err)
		return err
	}
	return nil
}

// Stop shuts the application down: the listener first so no new jobs arrive,
// then the queue.
func (a *App) Stop() {
	a.logger.Info("shutting down livebundle-github")
	a.server.Stop()
	a.queuer.Stop()
	a.logger.Info("livebundle-github stopped")
}
