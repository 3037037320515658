package apply

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
)

// ServiceConfig is the configuration for the apply service.
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
		c.NewID = newULID
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Apply"})
	return nil
}

func newULID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// Service submits new job applications.
type Service struct {
	repo   storage.Repository
	now    func() time.Time
	newID  func(t time.Time) string
	logger log.Logger
}

// NewService creates a new apply service.
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

// Request represents the apply request parameters.
type Request struct {
	JobID     string
	JobTitle  string
	Company   string
	Applicant string
}

// Run submits an application. New applications start as pending and their
// submission is the first entry of the status history.
func (s *Service) Run(ctx context.Context, req Request) (*model.Application, error) {
	now := s.now().UTC()

	app := model.Application{
		ID:        s.newID(now),
		JobID:     strings.TrimSpace(req.JobID),
		JobTitle:  strings.TrimSpace(req.JobTitle),
		Company:   strings.TrimSpace(req.Company),
		Applicant: strings.TrimSpace(req.Applicant),
		Status:    model.ApplicationStatusPending,
		AppliedAt: now,
		UpdatedAt: now,
	}
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application: %w", err)
	}

	change := model.StatusChange{
		ID:            s.newID(now),
		ApplicationID: app.ID,
		To:            model.ApplicationStatusPending,
		ChangedAt:     now,
	}
	if err := s.repo.SubmitApplication(ctx, app, change); err != nil {
		return nil, fmt.Errorf("could not save application: %w", err)
	}

	s.logger.Infof("Application %s submitted by %s for job %s", app.ID, app.Applicant, app.JobID)

	return &app, nil
}
