package timeline_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage/storagemock"
	timelinegen "github.com/slok/hiretrack/internal/timeline"
)

var (
	appliedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updatedAt = time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	now       = time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
)

func newGenerator(t *testing.T) *timelinegen.Generator {
	t.Helper()
	g, err := timelinegen.NewGenerator(timelinegen.GeneratorConfig{Now: func() time.Time { return now }})
	require.NoError(t, err)
	return g
}

func TestNewService(t *testing.T) {
	_, err := timeline.NewService(timeline.ServiceConfig{Repository: &storagemock.MockRepository{}})
	assert.Error(t, err, "generator is required")

	_, err = timeline.NewService(timeline.ServiceConfig{Generator: newGenerator(t)})
	assert.Error(t, err, "repository is required")

	svc, err := timeline.NewService(timeline.ServiceConfig{Repository: &storagemock.MockRepository{}, Generator: newGenerator(t), Logger: log.Noop})
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestServiceRun(t *testing.T) {
	appIn := func(status model.ApplicationStatus) *model.Application {
		return &model.Application{
			ID:        "app-1",
			JobID:     "job-1",
			Applicant: "jane",
			Status:    status,
			AppliedAt: appliedAt,
			UpdatedAt: updatedAt,
		}
	}
	history := []model.StatusChange{
		{ID: "sc-1", ApplicationID: "app-1", To: model.ApplicationStatusPending, ChangedAt: appliedAt},
		{ID: "sc-2", ApplicationID: "app-1", From: model.ApplicationStatusPending, To: model.ApplicationStatusReviewing, ChangedAt: updatedAt},
	}

	tests := map[string]struct {
		mock      func(m *storagemock.MockRepository)
		req       timeline.Request
		expResult func(g *timelinegen.Generator) *timeline.Result
		expErrIs  error
		expErr    bool
	}{
		"An open application timeline should have its insights up to now.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetApplication", mock.Anything, "app-1").Once().Return(appIn(model.ApplicationStatusReviewing), nil)
				m.On("ListStatusChanges", mock.Anything, "app-1").Once().Return(history, nil)
			},
			req: timeline.Request{ApplicationID: "app-1"},
			expResult: func(g *timelinegen.Generator) *timeline.Result {
				return &timeline.Result{
					Application:   *appIn(model.ApplicationStatusReviewing),
					Timeline:      g.Generate(model.ApplicationStatusReviewing, appliedAt, updatedAt),
					StatusMessage: g.StatusMessage(model.ApplicationStatusReviewing, appliedAt, updatedAt),
					ETA:           model.ETA{Days: 7, Message: "Reviews usually take up to a week", IsOverdue: true},
					Duration:      model.Duration{TotalDays: 10, FormattedDuration: "10 days"},
					Suggestions:   g.Suggestions(model.ApplicationStatusReviewing, updatedAt),
					History:       history,
				}
			},
		},
		"A closed application with metadata should last until its last update.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetApplication", mock.Anything, "app-1").Once().Return(appIn(model.ApplicationStatusRejected), nil)
				m.On("ListStatusChanges", mock.Anything, "app-1").Once().Return(history, nil)
			},
			req: timeline.Request{ApplicationID: "app-1", WithMetadata: true},
			expResult: func(g *timelinegen.Generator) *timeline.Result {
				return &timeline.Result{
					Application:   *appIn(model.ApplicationStatusRejected),
					Timeline:      g.GenerateWithMetadata(model.ApplicationStatusRejected, appliedAt, updatedAt),
					StatusMessage: g.StatusMessage(model.ApplicationStatusRejected, appliedAt, updatedAt),
					ETA:           model.ETA{Days: 0, Message: "The hiring process is complete"},
					Duration:      model.Duration{TotalDays: 3, FormattedDuration: "3 days"},
					Suggestions:   g.Suggestions(model.ApplicationStatusRejected, updatedAt),
					History:       history,
				}
			},
		},
		"A missing application should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetApplication", mock.Anything, "app-1").Once().Return(nil, model.ErrNotFound)
			},
			req:      timeline.Request{ApplicationID: "app-1"},
			expErrIs: model.ErrNotFound,
		},
		"A history error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetApplication", mock.Anything, "app-1").Once().Return(appIn(model.ApplicationStatusPending), nil)
				m.On("ListStatusChanges", mock.Anything, "app-1").Once().Return(nil, fmt.Errorf("database error"))
			},
			req:    timeline.Request{ApplicationID: "app-1"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := &storagemock.MockRepository{}
			test.mock(m)
			g := newGenerator(t)

			svc, err := timeline.NewService(timeline.ServiceConfig{Repository: m, Generator: g})
			require.NoError(err)

			res, err := svc.Run(context.Background(), test.req)

			switch {
			case test.expErrIs != nil:
				assert.ErrorIs(err, test.expErrIs)
			case test.expErr:
				assert.Error(err)
			default:
				require.NoError(err)
				assert.Equal(test.expResult(g), res)
				if test.req.WithMetadata {
					assert.NotNil(res.Timeline.Progress)
				}
			}

			m.AssertExpectations(t)
		})
	}
}
