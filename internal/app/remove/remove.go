package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
)

// ServiceConfig is the configuration for the remove service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})

	return nil
}

// Service removes applications.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	ApplicationID string
}

// Run removes an application and its status history. The removed
// application is returned.
func (s *Service) Run(ctx context.Context, req Request) (*model.Application, error) {
	s.logger.Debugf("removing application: %s", req.ApplicationID)

	app, err := s.repo.GetApplication(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("application not found: %s: %w", req.ApplicationID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get application: %w", err)
	}

	if err := s.repo.DeleteApplication(ctx, app.ID); err != nil {
		return nil, fmt.Errorf("could not delete application from repository: %w", err)
	}

	s.logger.Infof("removed application: %s (%s)", app.ID, app.Status)
	return app, nil
}
