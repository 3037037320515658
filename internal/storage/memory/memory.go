package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	applications map[string]model.Application
	history      map[string][]model.StatusChange
	mu           sync.RWMutex
	logger       log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		applications: make(map[string]model.Application),
		history:      make(map[string][]model.StatusChange),
		logger:       cfg.Logger,
	}, nil
}

// CreateApplication creates a new application in the repository.
func (r *Repository) CreateApplication(ctx context.Context, a model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[a.ID]; ok {
		return fmt.Errorf("application with id %s: %w", a.ID, model.ErrAlreadyExists)
	}

	r.applications[a.ID] = a
	r.logger.Debugf("Created application in repository: %s", a.ID)

	return nil
}

// GetApplication retrieves an application by ID.
func (r *Repository) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.applications[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}

	return &app, nil
}

// ListApplications returns all applications, newest applied first.
func (r *Repository) ListApplications(ctx context.Context) ([]model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]model.Application, 0, len(r.applications))
	for _, app := range r.applications {
		apps = append(apps, app)
	}

	slices.SortFunc(apps, func(a, b model.Application) int {
		if c := b.AppliedAt.Compare(a.AppliedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return apps, nil
}

// UpdateApplication updates an existing application.
func (r *Repository) UpdateApplication(ctx context.Context, a model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[a.ID]; !ok {
		return fmt.Errorf("application %s: %w", a.ID, model.ErrNotFound)
	}

	r.applications[a.ID] = a
	r.logger.Debugf("Updated application in repository: %s", a.ID)

	return nil
}

// DeleteApplication deletes an application and its status history.
func (r *Repository) DeleteApplication(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[id]; !ok {
		return fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}

	delete(r.applications, id)
	delete(r.history, id)
	r.logger.Debugf("Deleted application from repository: %s", id)

	return nil
}

// AddStatusChange appends an entry to the status history of an application.
func (r *Repository) AddStatusChange(ctx context.Context, c model.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[c.ApplicationID]; !ok {
		return fmt.Errorf("application %s: %w", c.ApplicationID, model.ErrNotFound)
	}
	if err := r.checkNewStatusChange(c); err != nil {
		return err
	}

	r.history[c.ApplicationID] = append(r.history[c.ApplicationID], c)
	r.logger.Debugf("Added status change %s -> %s for application %s", c.From, c.To, c.ApplicationID)

	return nil
}

// SubmitApplication stores a new application and its first status change.
func (r *Repository) SubmitApplication(ctx context.Context, a model.Application, c model.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.applications[a.ID]; ok {
		return fmt.Errorf("application with id %s: %w", a.ID, model.ErrAlreadyExists)
	}
	if c.ApplicationID != a.ID {
		return fmt.Errorf("status change %s belongs to application %s: %w", c.ID, c.ApplicationID, model.ErrNotValid)
	}

	r.applications[a.ID] = a
	r.history[a.ID] = []model.StatusChange{c}
	r.logger.Debugf("Submitted application in repository: %s", a.ID)

	return nil
}

// ChangeStatus moves the application to c.To only if it is still in c.From.
func (r *Repository) ChangeStatus(ctx context.Context, a model.Application, c model.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ApplicationID != a.ID {
		return fmt.Errorf("status change %s belongs to application %s: %w", c.ID, c.ApplicationID, model.ErrNotValid)
	}
	stored, ok := r.applications[a.ID]
	if !ok {
		return fmt.Errorf("application %s: %w", a.ID, model.ErrNotFound)
	}
	if stored.Status != c.From {
		return fmt.Errorf("application %s is %s, not %s: %w", a.ID, stored.Status, c.From, model.ErrNotValid)
	}
	if err := r.checkNewStatusChange(c); err != nil {
		return err
	}

	stored.Status = c.To
	stored.UpdatedAt = a.UpdatedAt
	r.applications[a.ID] = stored
	r.history[a.ID] = append(r.history[a.ID], c)
	r.logger.Debugf("Changed application %s status %s -> %s", a.ID, c.From, c.To)

	return nil
}

func (r *Repository) checkNewStatusChange(c model.StatusChange) error {
	for _, existing := range r.history[c.ApplicationID] {
		if existing.ID == c.ID {
			return fmt.Errorf("status change with id %s: %w", c.ID, model.ErrAlreadyExists)
		}
	}
	return nil
}

// ListStatusChanges returns the status history of an application, oldest first.
func (r *Repository) ListStatusChanges(ctx context.Context, applicationID string) ([]model.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	changes := slices.Clone(r.history[applicationID])
	slices.SortStableFunc(changes, func(a, b model.StatusChange) int {
		return a.ChangedAt.Compare(b.ChangedAt)
	})

	return changes, nil
}
