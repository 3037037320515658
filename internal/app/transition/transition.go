package transition

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
)

// ServiceConfig is the configuration for the transition service.
type ServiceConfig struct {
	Repository storage.Repository
	// Now returns the current time, defaults to time.Now.
	Now func() time.Time
	// NewID returns a new unique ID, defaults to ULIDs.
	NewID  func(t time.Time) string
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = func(t time.Time) string { return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String() }
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Transition"})
	return nil
}

// Service moves applications through the hiring lifecycle.
type Service struct {
	repo   storage.Repository
	now    func() time.Time
	newID  func(t time.Time) string
	logger log.Logger
}

// NewService creates a new transition service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		now:    cfg.Now,
		newID:  cfg.NewID,
		logger: cfg.Logger,
	}, nil
}

// Request represents the transition request parameters.
type Request struct {
	ApplicationID string
	Status        model.ApplicationStatus
}

// Run changes the status of an application. Only the moves allowed by the
// lifecycle are accepted, terminal applications can't be moved.
func (s *Service) Run(ctx context.Context, req Request) (*model.Application, error) {
	s.logger.Debugf("moving application %s to %s", req.ApplicationID, req.Status)

	if !req.Status.IsKnown() {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, model.ErrNotValid)
	}

	app, err := s.repo.GetApplication(ctx, req.ApplicationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("application not found: %s: %w", req.ApplicationID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get application: %w", err)
	}

	from := app.Status
	if from == req.Status {
		return nil, fmt.Errorf("application %s is already %s: %w", app.ID, from, model.ErrNotValid)
	}
	if !model.IsValidTransition(from, req.Status) {
		if from.IsTerminal() {
			return nil, fmt.Errorf("application %s is %s and can't change anymore: %w", app.ID, from, model.ErrNotValid)
		}
		return nil, fmt.Errorf("application %s can't move from %s to %s (allowed: %v): %w", app.ID, from, req.Status, model.NextStatuses(from), model.ErrNotValid)
	}

	now := s.now().UTC()
	if now.Before(app.AppliedAt) {
		now = app.AppliedAt
	}
	app.Status = req.Status
	app.UpdatedAt = now

	change := model.StatusChange{
		ID:            s.newID(now),
		ApplicationID: app.ID,
		From:          from,
		To:            req.Status,
		ChangedAt:     now,
	}
	// The store only applies the change if nobody moved the application
	// since it was read.
	if err := s.repo.ChangeStatus(ctx, *app, change); err != nil {
		return nil, fmt.Errorf("could not change application status: %w", err)
	}

	s.logger.Infof("Application %s moved from %s to %s", app.ID, from, req.Status)

	return app, nil
}
