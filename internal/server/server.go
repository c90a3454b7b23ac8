// Package server implements the webhook listener.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sevigo/livebundle-github/internal/config"
	"github.com/sevigo/livebundle-github/internal/core"
)

// ErrNotStarted is returned by Address and Port before Start has bound the socket.
var ErrNotStarted = errors.New("server is not started")

// Server owns the listening socket for the webhook endpoint.
type Server struct {
	cfg     config.ServerConfig
	handler http.Handler
	logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

// NewServer creates a webhook server bound to cfg.Server that queues jobs on queuer.
// Nothing is bound until Start is called.
func NewServer(cfg *config.Config, queuer core.JobQueuer, logger *slog.Logger) *Server {
	logger.Debug("webhook server config", "host", cfg.Server.Host, "port", cfg.Server.Port)
	return &Server{
		cfg:     cfg.Server,
		handler: NewRouter(queuer, logger),
		logger:  logger,
	}
}

// Start binds the configured address and serves requests in the background.
// It returns once the socket is listening. Calling Start on a running server
// is a no-op.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.listener = ln
	s.server = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("webhook server stopped unexpectedly", "error", err)
		}
	}()

	s.logger.Info("webhook server started", "address", ln.Addr().String())
	return nil
}

// Stop closes the listener and any open connections without waiting for
// in-flight requests. It is a no-op if the server is not running.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return
	}

	s.logger.Info("stopping webhook server")
	if err := s.server.Close(); err != nil {
		s.logger.Error("error closing webhook server", "error", err)
	}
	s.server = nil
	s.listener = nil
}

// Address returns the IP address the server is bound to.
func (s *Server) Address() (string, error) {
	addr, err := s.tcpAddr()
	if err != nil {
		return "", err
	}
	return addr.IP.String(), nil
}

// Port returns the port the server is bound to, which differs from the
// configured one when the configured port is 0.
func (s *Server) Port() (int, error) {
	addr, err := s.tcpAddr()
	if err != nil {
		return 0, err
	}
	return addr.Port, nil
}

func (s *Server) tcpAddr() (*net.TCPAddr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil, ErrNotStarted
	}
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected listener address type %T", s.listener.Addr())
	}
	return addr, nil
}
