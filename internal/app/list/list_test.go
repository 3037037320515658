package list_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/hiretrack/internal/app/list"
	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config list.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: list.ServiceConfig{
				Repository: &storagemock.MockRepository{},
				Logger:     log.Noop,
			},
			expErr: false,
		},
		"missing repository should fail": {
			config: list.ServiceConfig{
				Logger: log.Noop,
			},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: list.ServiceConfig{
				Repository: &storagemock.MockRepository{},
			},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := list.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

func TestServiceRun(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	app := func(id string, status model.ApplicationStatus, appliedDay int) model.Application {
		return model.Application{
			ID:        id,
			JobID:     "job-1",
			Applicant: "jane",
			Status:    status,
			AppliedAt: t0.AddDate(0, 0, appliedDay),
			UpdatedAt: t0.AddDate(0, 0, appliedDay),
		}
	}
	stored := func() []model.Application {
		return []model.Application{
			app("app-1", model.ApplicationStatusPending, 0),
			app("app-2", model.ApplicationStatusReviewing, 3),
			app("app-3", model.ApplicationStatusPending, 2),
		}
	}
	reviewing := model.ApplicationStatusReviewing
	accepted := model.ApplicationStatusAccepted
	pending := model.ApplicationStatusPending

	tests := map[string]struct {
		mock    func(m *storagemock.MockRepository)
		req     list.Request
		expApps []model.Application
		expErr  bool
	}{
		"Listing without filter should return all applications, newest first": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListApplications", mock.Anything).Once().Return(stored(), nil)
			},
			req: list.Request{},
			expApps: []model.Application{
				app("app-2", model.ApplicationStatusReviewing, 3),
				app("app-3", model.ApplicationStatusPending, 2),
				app("app-1", model.ApplicationStatusPending, 0),
			},
		},
		"Filtering by status should return only matching applications": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListApplications", mock.Anything).Once().Return(stored(), nil)
			},
			req: list.Request{StatusFilter: &pending},
			expApps: []model.Application{
				app("app-3", model.ApplicationStatusPending, 2),
				app("app-1", model.ApplicationStatusPending, 0),
			},
		},
		"Filtering by a single status": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListApplications", mock.Anything).Once().Return(stored(), nil)
			},
			req:     list.Request{StatusFilter: &reviewing},
			expApps: []model.Application{app("app-2", model.ApplicationStatusReviewing, 3)},
		},
		"Filtering with no matches should return empty": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListApplications", mock.Anything).Once().Return(stored(), nil)
			},
			req:     list.Request{StatusFilter: &accepted},
			expApps: []model.Application{},
		},
		"Repository error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("ListApplications", mock.Anything).Once().Return(nil, fmt.Errorf("database error"))
			},
			req:    list.Request{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &storagemock.MockRepository{}
			test.mock(m)

			svc, err := list.NewService(list.ServiceConfig{Repository: m, Logger: log.Noop})
			require.NoError(err)

			apps, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expApps, apps)
			}

			m.AssertExpectations(t)
		})
	}
}
