// Package storagemock has testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage"
)

var _ storage.Repository = &MockRepository{}

// MockRepository is a mock of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateApplication(ctx context.Context, a model.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*model.Application)
	return app, args.Error(1)
}

func (m *MockRepository) ListApplications(ctx context.Context) ([]model.Application, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]model.Application)
	return apps, args.Error(1)
}

func (m *MockRepository) UpdateApplication(ctx context.Context, a model.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) DeleteApplication(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AddStatusChange(ctx context.Context, c model.StatusChange) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) ListStatusChanges(ctx context.Context, applicationID string) ([]model.StatusChange, error) {
	args := m.Called(ctx, applicationID)
	changes, _ := args.Get(0).([]model.StatusChange)
	return changes, args.Error(1)
}

func (m *MockRepository) SubmitApplication(ctx context.Context, a model.Application, c model.StatusChange) error {
	args := m.Called(ctx, a, c)
	return args.Error(0)
}

func (m *MockRepository) ChangeStatus(ctx context.Context, a model.Application, c model.StatusChange) error {
	args := m.Called(ctx, a, c)
	return args.Error(0)
}
