// Package api serves applications and their timelines over a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slok/hiretrack/internal/app/apply"
	"github.com/slok/hiretrack/internal/app/list"
	"github.com/slok/hiretrack/internal/app/remove"
	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/app/transition"
	"github.com/slok/hiretrack/internal/conventions"
	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/storage"
	"github.com/slok/hiretrack/internal/timeline"
)

// ServerConfig is the configuration for the API server.
type ServerConfig struct {
	ListenAddress string
	Repository    storage.Repository
	Generator     *timeline.Generator
	// Registry is where the metrics are registered and gathered from, a new
	// registry is used when missing.
	Registry *prometheus.Registry
	// Now returns the current time, defaults to time.Now.
	Now             func() time.Time
	ShutdownTimeout time.Duration
	Logger          log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.ListenAddress == "" {
		c.ListenAddress = conventions.DefaultListenAddress
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Generator == nil {
		return fmt.Errorf("generator is required")
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.Server"})
	return nil
}

// Server is the HTTP API server.
type Server struct {
	server          *http.Server
	repo            storage.Repository
	gen             *timeline.Generator
	registry        *prometheus.Registry
	metrics         *Metrics
	shutdownTimeout time.Duration
	logger          log.Logger

	applySvc      *apply.Service
	transitionSvc *transition.Service
	listSvc       *list.Service
	timelineSvc   *apptimeline.Service
	removeSvc     *remove.Service
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	applySvc, err := apply.NewService(apply.ServiceConfig{Repository: cfg.Repository, Now: cfg.Now, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create apply service: %w", err)
	}
	transitionSvc, err := transition.NewService(transition.ServiceConfig{Repository: cfg.Repository, Now: cfg.Now, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create transition service: %w", err)
	}
	listSvc, err := list.NewService(list.ServiceConfig{Repository: cfg.Repository, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create list service: %w", err)
	}
	timelineSvc, err := apptimeline.NewService(apptimeline.ServiceConfig{Repository: cfg.Repository, Generator: cfg.Generator, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create timeline service: %w", err)
	}
	removeSvc, err := remove.NewService(remove.ServiceConfig{Repository: cfg.Repository, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create remove service: %w", err)
	}

	s := &Server{
		repo:            cfg.Repository,
		gen:             cfg.Generator,
		registry:        cfg.Registry,
		metrics:         NewMetrics(cfg.Registry),
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          cfg.Logger,
		applySvc:        applySvc,
		transitionSvc:   transitionSvc,
		listSvc:         listSvc,
		timelineSvc:     timelineSvc,
		removeSvc:       removeSvc,
	}

	s.server = &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Run starts the server and blocks until ctx is cancelled. It performs a
// graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("API listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("api server error: %w", err)
	case <-ctx.Done():
		s.logger.Infof("shutting down API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown error: %w", err)
		}
		return nil
	}
}
