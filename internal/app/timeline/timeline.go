package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
	timelinegen "github.com/slok/hiretrack/internal/timeline"
)

// ServiceConfig is the configuration for the timeline service.
type ServiceConfig struct {
	Repository storage.Repository
	Generator  *timelinegen.Generator
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Generator == nil {
		return fmt.Errorf("generator is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Timeline"})

	return nil
}

// Service builds the timeline view of an application.
type Service struct {
	repo   storage.Repository
	gen    *timelinegen.Generator
	logger log.Logger
}

// NewService creates a new timeline service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		gen:    cfg.Generator,
		logger: cfg.Logger,
	}, nil
}

// Request represents the timeline request parameters.
type Request struct {
	ApplicationID string
	// WithMetadata adds the flow information and progress to the timeline.
	WithMetadata bool
}

// Result is the timeline of an application with the insights around it.
type Result struct {
	Application   model.Application    `json:"application"`
	Timeline      model.Timeline       `json:"timeline"`
	StatusMessage model.StatusMessage  `json:"statusMessage"`
	ETA           model.ETA            `json:"eta"`
	Duration      model.Duration       `json:"duration"`
	Suggestions   []string             `json:"suggestions"`
	History       []model.StatusChange `json:"history"`
}

// Run returns the timeline of an application.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	app, err := s.repo.GetApplication(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("application not found: %s: %w", req.ApplicationID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get application: %w", err)
	}

	history, err := s.repo.ListStatusChanges(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("could not list status changes: %w", err)
	}

	var tl model.Timeline
	if req.WithMetadata {
		tl = s.gen.GenerateWithMetadata(app.Status, app.AppliedAt, app.UpdatedAt)
	} else {
		tl = s.gen.Generate(app.Status, app.AppliedAt, app.UpdatedAt)
	}

	// Open applications are still running, their duration goes up to now.
	durationEnd := app.UpdatedAt
	if !app.Status.IsTerminal() {
		durationEnd = time.Time{}
	}

	s.logger.Debugf("generated timeline for application %s with %d steps", app.ID, len(tl.Steps))

	return &Result{
		Application:   *app,
		Timeline:      tl,
		StatusMessage: s.gen.StatusMessage(app.Status, app.AppliedAt, app.UpdatedAt),
		ETA:           s.gen.EstimateETA(app.Status, app.AppliedAt),
		Duration:      s.gen.Duration(app.AppliedAt, durationEnd),
		Suggestions:   s.gen.Suggestions(app.Status, app.UpdatedAt),
		History:       history,
	}, nil
}
