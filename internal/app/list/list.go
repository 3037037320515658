package list

import (
	"context"
	"fmt"
	"slices"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
)

// ServiceConfig is the configuration for the list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})

	return nil
}

// Service lists applications with optional filtering.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show applications with this status.
	StatusFilter *model.ApplicationStatus
}

// Run lists all applications, newest applied first, optionally filtered by status.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Application, error) {
	s.logger.Debugf("listing applications with filter: %v", req.StatusFilter)

	apps, err := s.repo.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list applications: %w", err)
	}

	if req.StatusFilter != nil {
		apps = slices.DeleteFunc(apps, func(a model.Application) bool {
			return a.Status != *req.StatusFilter
		})
	}

	slices.SortStableFunc(apps, func(a, b model.Application) int {
		return b.AppliedAt.Compare(a.AppliedAt)
	})

	s.logger.Debugf("found %d applications", len(apps))
	return apps, nil
}
