package lib

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/slok/hiretrack/internal/app/apply"
	"github.com/slok/hiretrack/internal/app/list"
	"github.com/slok/hiretrack/internal/app/remove"
	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/app/transition"
)

// Apply submits a new application, it starts as pending.
//
// Returns [ErrNotValid] if the job ID or the applicant are missing.
func (c *Client) Apply(ctx context.Context, opts ApplyOpts) (*Application, error) {
	svc, err := apply.NewService(apply.ServiceConfig{
		Repository: c.repo,
		Now:        c.now,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return svc.Run(ctx, apply.Request{
		JobID:     opts.JobID,
		JobTitle:  opts.JobTitle,
		Company:   opts.Company,
		Applicant: opts.Applicant,
	})
}

// Move changes the status of an application.
//
// Returns [ErrNotFound] if the application does not exist, or [ErrNotValid]
// if the lifecycle doesn't allow the transition.
func (c *Client) Move(ctx context.Context, id string, status ApplicationStatus) (*Application, error) {
	svc, err := transition.NewService(transition.ServiceConfig{
		Repository: c.repo,
		Now:        c.now,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return svc.Run(ctx, transition.Request{ApplicationID: id, Status: status})
}

// GetApplication returns an application by ID.
func (c *Client) GetApplication(ctx context.Context, id string) (*Application, error) {
	return c.repo.GetApplication(ctx, id)
}

// ListApplications lists the applications, newest applied first.
// Pass nil opts to list all of them.
func (c *Client) ListApplications(ctx context.Context, opts *ListApplicationsOpts) ([]Application, error) {
	svc, err := list.NewService(list.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	req := list.Request{}
	if opts != nil {
		req.StatusFilter = opts.Status
	}

	return svc.Run(ctx, req)
}

// Timeline returns the status timeline of an application with its insights.
// Pass nil opts for defaults.
func (c *Client) Timeline(ctx context.Context, id string, opts *TimelineOpts) (*ApplicationTimeline, error) {
	svc, err := apptimeline.NewService(apptimeline.ServiceConfig{
		Repository: c.repo,
		Generator:  c.gen,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, apptimeline.Request{
		ApplicationID: id,
		WithMetadata:  opts == nil || !opts.WithoutMetadata,
	})
	if err != nil {
		return nil, err
	}

	return &ApplicationTimeline{
		Application:   res.Application,
		Timeline:      res.Timeline,
		StatusMessage: res.StatusMessage,
		ETA:           res.ETA,
		Duration:      res.Duration,
		Suggestions:   res.Suggestions,
		History:       res.History,
	}, nil
}

// RemoveApplication deletes an application and its status history.
func (c *Client) RemoveApplication(ctx context.Context, id string) error {
	svc, err := remove.NewService(remove.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	_, err = svc.Run(ctx, remove.Request{ApplicationID: id})
	return err
}

// Flows returns the flows used to narrate timelines sorted by ID.
func (c *Client) Flows() []Flow {
	flows := make([]Flow, 0)
	for _, f := range c.gen.Flows() {
		flows = append(flows, f)
	}
	slices.SortFunc(flows, func(a, b Flow) int { return strings.Compare(a.ID, b.ID) })
	return flows
}
