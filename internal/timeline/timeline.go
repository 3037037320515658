// Package timeline turns an application status and its timestamps into the
// ordered steps the presentation layer renders, plus the derived messaging
// (next action, progress, ETA, tone, suggestions).
//
// Everything here is a pure function of its inputs and the configured clock,
// a Generator is safe for concurrent use.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
)

// GeneratorConfig is the configuration for the timeline generator.
type GeneratorConfig struct {
	// Flows overrides the built-in flows. It must contain the selectable flows.
	Flows  map[string]model.StatusFlow
	Now    func() time.Time
	Logger log.Logger
}

func (c *GeneratorConfig) defaults() error {
	if c.Flows == nil {
		c.Flows = DefaultFlows()
	}
	if err := ValidateFlows(c.Flows); err != nil {
		return fmt.Errorf("invalid flows: %w", err)
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "timeline.Generator"})

	return nil
}

// Generator generates application timelines.
type Generator struct {
	flows  map[string]model.StatusFlow
	now    func() time.Time
	logger log.Logger
}

// NewGenerator returns a new timeline generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Generator{
		flows:  copyFlows(cfg.Flows),
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Flows returns a copy of the flows known by the generator.
func (g *Generator) Flows() map[string]model.StatusFlow {
	return copyFlows(g.flows)
}

// SelectFlow returns the flow used to narrate an application in the given status.
func (g *Generator) SelectFlow(status model.ApplicationStatus) model.StatusFlow {
	return g.flows[SelectFlowID(status)]
}

// Generate returns the timeline of an application.
func (g *Generator) Generate(status model.ApplicationStatus, appliedAt, updatedAt time.Time) model.Timeline {
	flow := g.SelectFlow(status)

	return model.Timeline{
		Steps:         g.BuildSteps(flow, status, appliedAt, updatedAt),
		CurrentStatus: status,
		AppliedAt:     appliedAt,
		UpdatedAt:     updatedAt,
		NextAction:    NextAction(status),
	}
}

// GenerateWithMetadata is like Generate but also sets the flow information
// and the progress of the application.
func (g *Generator) GenerateWithMetadata(status model.ApplicationStatus, appliedAt, updatedAt time.Time) model.Timeline {
	t := g.Generate(status, appliedAt, updatedAt)

	flow := g.SelectFlow(status)
	progress := g.FlowProgress(status)
	t.FlowID = flow.ID
	t.FlowDescription = flow.Description
	t.Progress = &progress

	return t
}

// FlowProgress estimates how far along its flow an application is.
func (g *Generator) FlowProgress(status model.ApplicationStatus) model.Progress {
	flow := g.SelectFlow(status)
	total := len(flow.Steps)

	var completed int
	switch status {
	case model.ApplicationStatusReviewing:
		completed = 2
	case model.ApplicationStatusShortlisted:
		completed = 2
		if flow.HasStep(StepReviewing) {
			completed = 3
		}
	case model.ApplicationStatusAccepted, model.ApplicationStatusRejected:
		completed = total
	default:
		// Pending and unknown statuses only have the submission done.
		completed = 1
	}
	completed = min(completed, total)

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return model.Progress{
		Percentage:     percentage,
		CompletedSteps: completed,
		TotalSteps:     total,
	}
}

var nextActions = map[model.ApplicationStatus]string{
	model.ApplicationStatusPending:     "Your application has been submitted and is waiting for the employer to review it.",
	model.ApplicationStatusReviewing:   "The employer is reviewing your application. You will be notified when there is an update.",
	model.ApplicationStatusShortlisted: "You have been shortlisted! Expect the employer to reach out about next steps.",
	model.ApplicationStatusAccepted:    "Congratulations! The employer has accepted your application.",
	model.ApplicationStatusRejected:    "The employer decided not to move forward with your application. Keep applying!",
}

const defaultNextAction = "Check back later for updates on your application."

// NextAction returns the guidance message for an application status.
func NextAction(status model.ApplicationStatus) string {
	if msg, ok := nextActions[status]; ok {
		return msg
	}
	return defaultNextAction
}
