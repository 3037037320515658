package storage

import (
	"context"

	"github.com/slok/hiretrack/internal/model"
)

// Repository is the interface for application persistence.
type Repository interface {
	CreateApplication(ctx context.Context, a model.Application) error
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	// ListApplications returns the applications, newest applied first.
	ListApplications(ctx context.Context) ([]model.Application, error)
	UpdateApplication(ctx context.Context, a model.Application) error
	// DeleteApplication deletes the application and its status history.
	DeleteApplication(ctx context.Context, id string) error

	AddStatusChange(ctx context.Context, c model.StatusChange) error
	// ListStatusChanges returns the status history of an application, oldest first.
	ListStatusChanges(ctx context.Context, applicationID string) ([]model.StatusChange, error)

	// SubmitApplication stores a new application and its first status change
	// atomically.
	SubmitApplication(ctx context.Context, a model.Application, c model.StatusChange) error
	// ChangeStatus sets the status and update time of the application and records
	// the status change atomically. It fails with model.ErrNotValid when the
	// stored status is not c.From anymore.
	ChangeStatus(ctx context.Context, a model.Application, c model.StatusChange) error
}
