package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/livebundle-github/internal/core"
	"github.com/sevigo/livebundle-github/internal/server/handler"
)

// NewRouter creates the HTTP router: the webhook endpoint at POST / and a health check.
func NewRouter(queuer core.JobQueuer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	webhookHandler := handler.NewWebhookHandler(queuer, logger)
	r.Post("/", webhookHandler.Handle)

	return r
}
