package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/timeline"
)

var (
	testAppliedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testUpdatedAt = time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	testNow       = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
)

func newTestGenerator(t *testing.T) *timeline.Generator {
	t.Helper()

	g, err := timeline.NewGenerator(timeline.GeneratorConfig{
		Now:    func() time.Time { return testNow },
		Logger: log.Noop,
	})
	require.NoError(t, err)

	return g
}

func TestNewGenerator(t *testing.T) {
	tests := map[string]struct {
		flows  map[string]model.StatusFlow
		expErr bool
	}{
		"Default flows should be valid.": {
			flows:  nil,
			expErr: false,
		},
		"Custom flows with the selectable flows should be valid.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"applied", "shortlisted", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "rejected"}},
			},
			expErr: false,
		},
		"Missing a selectable flow should fail.": {
			flows: map[string]model.StatusFlow{
				"standard": {ID: "standard", Steps: []string{"applied", "final"}},
			},
			expErr: true,
		},
		"A flow not starting with applied should fail.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"reviewing", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "rejected"}},
			},
			expErr: true,
		},
		"A flow with an unknown step should fail.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"applied", "interview", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "rejected"}},
			},
			expErr: true,
		},
		"A flow with duplicated steps should fail.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"applied", "reviewing", "reviewing"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "rejected"}},
			},
			expErr: true,
		},
		"A flow registered with a different ID should fail.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "other", Steps: []string{"applied", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "rejected"}},
			},
			expErr: true,
		},
		"A rejection flow ending in final should be valid.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"applied", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "reviewing", "final"}},
			},
			expErr: false,
		},
		"A rejection flow not ending in a terminal step should fail.": {
			flows: map[string]model.StatusFlow{
				"standard":          {ID: "standard", Steps: []string{"applied", "final"}},
				"express_rejection": {ID: "express_rejection", Steps: []string{"applied", "reviewing", "shortlisted"}},
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			g, err := timeline.NewGenerator(timeline.GeneratorConfig{Flows: test.flows})

			if test.expErr {
				require.Error(err)
				require.ErrorIs(err, model.ErrNotValid)
				require.Nil(g)
			} else {
				require.NoError(err)
				require.NotNil(g)
			}
		})
	}
}

func TestSelectFlowID(t *testing.T) {
	tests := map[string]struct {
		status model.ApplicationStatus
		expID  string
	}{
		"Pending uses the standard flow.":     {status: model.ApplicationStatusPending, expID: timeline.FlowStandard},
		"Reviewing uses the standard flow.":   {status: model.ApplicationStatusReviewing, expID: timeline.FlowStandard},
		"Shortlisted uses the standard flow.": {status: model.ApplicationStatusShortlisted, expID: timeline.FlowStandard},
		"Accepted uses the standard flow.":    {status: model.ApplicationStatusAccepted, expID: timeline.FlowStandard},
		"Rejected uses the express flow.":     {status: model.ApplicationStatusRejected, expID: timeline.FlowExpressRejection},
		"Unknown uses the standard flow.":     {status: "withdrawn", expID: timeline.FlowStandard},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expID, timeline.SelectFlowID(test.status))
		})
	}
}

type expStep struct {
	id        string
	label     string
	completed bool
	current   bool
	icon      model.StepIcon
	timestamp *time.Time
}

func TestGeneratorGenerate(t *testing.T) {
	applied := testAppliedAt
	updated := testUpdatedAt

	tests := map[string]struct {
		status   model.ApplicationStatus
		expSteps []expStep
	}{
		"A pending application should be waiting for review.": {
			status: model.ApplicationStatusPending,
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", current: true, icon: model.StepIconCurrent},
				{id: "shortlisted", label: "Shortlisted", icon: model.StepIconPending},
				{id: "final", label: "Final Decision", icon: model.StepIconPending},
			},
		},
		"A reviewing application should have the review step as current.": {
			status: model.ApplicationStatusReviewing,
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", current: true, icon: model.StepIconCurrent, timestamp: &updated},
				{id: "shortlisted", label: "Shortlisted", icon: model.StepIconPending},
				{id: "final", label: "Final Decision", icon: model.StepIconPending},
			},
		},
		"A shortlisted application should have completed the review.": {
			status: model.ApplicationStatusShortlisted,
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", completed: true, icon: model.StepIconCheck, timestamp: &updated},
				{id: "shortlisted", label: "Shortlisted", current: true, icon: model.StepIconCurrent, timestamp: &updated},
				{id: "final", label: "Final Decision", icon: model.StepIconPending},
			},
		},
		"An accepted application should have completed every step.": {
			status: model.ApplicationStatusAccepted,
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", completed: true, icon: model.StepIconCheck, timestamp: &updated},
				{id: "shortlisted", label: "Shortlisted", completed: true, icon: model.StepIconCheck, timestamp: &updated},
				{id: "final", label: "Accepted", completed: true, icon: model.StepIconAccepted, timestamp: &updated},
			},
		},
		"A rejected application should use the express rejection flow.": {
			status: model.ApplicationStatusRejected,
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", completed: true, icon: model.StepIconCheck, timestamp: &updated},
				{id: "rejected", label: "Rejected", completed: true, icon: model.StepIconRejected, timestamp: &updated},
			},
		},
		"An unknown status should only have the application submitted.": {
			status: "withdrawn",
			expSteps: []expStep{
				{id: "applied", label: "Applied", completed: true, icon: model.StepIconCheck, timestamp: &applied},
				{id: "reviewing", label: "Under Review", icon: model.StepIconPending},
				{id: "shortlisted", label: "Shortlisted", icon: model.StepIconPending},
				{id: "final", label: "Final Decision", icon: model.StepIconPending},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			g := newTestGenerator(t)
			tl := g.Generate(test.status, testAppliedAt, testUpdatedAt)

			assert.Equal(test.status, tl.CurrentStatus)
			assert.Equal(testAppliedAt, tl.AppliedAt)
			assert.Equal(testUpdatedAt, tl.UpdatedAt)
			assert.Equal(timeline.NextAction(test.status), tl.NextAction)
			assert.Empty(tl.FlowID)
			assert.Nil(tl.Progress)

			require.Len(tl.Steps, len(test.expSteps))
			for i, exp := range test.expSteps {
				got := tl.Steps[i]
				assert.Equal(exp.id, got.ID, "step %d", i)
				assert.Equal(exp.label, got.Label, "step %d", i)
				assert.Equal(exp.completed, got.IsCompleted, "step %s", exp.id)
				assert.Equal(exp.current, got.IsCurrent, "step %s", exp.id)
				assert.Equal(exp.icon, got.Icon, "step %s", exp.id)
				assert.Equal(exp.timestamp, got.Timestamp, "step %s", exp.id)
			}
		})
	}
}

func TestGeneratorGenerateProperties(t *testing.T) {
	statuses := append([]model.ApplicationStatus{"", "withdrawn"}, model.ApplicationStatuses...)
	timestamps := map[string][2]time.Time{
		"same time":     {testAppliedAt, testAppliedAt},
		"updated later": {testAppliedAt, testUpdatedAt},
		"zero times":    {{}, {}},
	}

	g := newTestGenerator(t)
	for _, status := range statuses {
		for tsName, ts := range timestamps {
			t.Run(string(status)+"/"+tsName, func(t *testing.T) {
				assert := assert.New(t)
				require := require.New(t)

				tl := g.Generate(status, ts[0], ts[1])
				require.NotEmpty(tl.Steps)

				currents := 0
				for _, s := range tl.Steps {
					if s.IsCurrent {
						currents++
						assert.False(s.IsCompleted)
					}
					if status.IsTerminal() {
						assert.True(s.IsCompleted, "step %s", s.ID)
					}
				}
				assert.LessOrEqual(currents, 1)

				require.Equal("applied", tl.Steps[0].ID)
				require.NotNil(tl.Steps[0].Timestamp)
				assert.Equal(ts[0], *tl.Steps[0].Timestamp)

				p := g.FlowProgress(status)
				assert.GreaterOrEqual(p.Percentage, 0)
				assert.LessOrEqual(p.Percentage, 100)
				assert.LessOrEqual(p.CompletedSteps, p.TotalSteps)
			})
		}
	}
}

func TestGeneratorGenerateWithMetadata(t *testing.T) {
	tests := map[string]struct {
		status         model.ApplicationStatus
		expFlowID      string
		expDescription string
		expProgress    model.Progress
	}{
		"Pending application.": {
			status:         model.ApplicationStatusPending,
			expFlowID:      "standard",
			expDescription: "Standard hiring process with review and shortlisting",
			expProgress:    model.Progress{Percentage: 25, CompletedSteps: 1, TotalSteps: 4},
		},
		"Reviewing application.": {
			status:         model.ApplicationStatusReviewing,
			expFlowID:      "standard",
			expDescription: "Standard hiring process with review and shortlisting",
			expProgress:    model.Progress{Percentage: 50, CompletedSteps: 2, TotalSteps: 4},
		},
		"Shortlisted application.": {
			status:         model.ApplicationStatusShortlisted,
			expFlowID:      "standard",
			expDescription: "Standard hiring process with review and shortlisting",
			expProgress:    model.Progress{Percentage: 75, CompletedSteps: 3, TotalSteps: 4},
		},
		"Accepted application.": {
			status:         model.ApplicationStatusAccepted,
			expFlowID:      "standard",
			expDescription: "Standard hiring process with review and shortlisting",
			expProgress:    model.Progress{Percentage: 100, CompletedSteps: 4, TotalSteps: 4},
		},
		"Rejected application.": {
			status:         model.ApplicationStatusRejected,
			expFlowID:      "express_rejection",
			expDescription: "Application reviewed and not selected",
			expProgress:    model.Progress{Percentage: 100, CompletedSteps: 3, TotalSteps: 3},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			g := newTestGenerator(t)
			tl := g.GenerateWithMetadata(test.status, testAppliedAt, testUpdatedAt)

			assert.Equal(test.expFlowID, tl.FlowID)
			assert.Equal(test.expDescription, tl.FlowDescription)
			require.NotNil(tl.Progress)
			assert.Equal(test.expProgress, *tl.Progress)
		})
	}
}

func TestGeneratorFlowProgressWithoutReviewStep(t *testing.T) {
	flows := timeline.DefaultFlows()
	flows[timeline.FlowStandard] = model.StatusFlow{
		ID:    timeline.FlowStandard,
		Steps: []string{"applied", "shortlisted", "final"},
	}

	g, err := timeline.NewGenerator(timeline.GeneratorConfig{Flows: flows})
	require.NoError(t, err)

	p := g.FlowProgress(model.ApplicationStatusShortlisted)
	assert.Equal(t, model.Progress{Percentage: 67, CompletedSteps: 2, TotalSteps: 3}, p)
}

func TestGeneratorBuildStepsSkipsUnknownSteps(t *testing.T) {
	g := newTestGenerator(t)

	flow := model.StatusFlow{ID: "custom", Steps: []string{"applied", "interview", "final"}}
	steps := g.BuildSteps(flow, model.ApplicationStatusReviewing, testAppliedAt, testUpdatedAt)

	require.Len(t, steps, 2)
	assert.Equal(t, "applied", steps[0].ID)
	assert.Equal(t, "final", steps[1].ID)
}

func TestGeneratorFlowsReturnsCopy(t *testing.T) {
	g := newTestGenerator(t)

	flows := g.Flows()
	flows[timeline.FlowStandard].Steps[0] = "modified"

	assert.Equal(t, "applied", g.Flows()[timeline.FlowStandard].Steps[0])
	assert.Len(t, g.Flows(), 4)
}

func TestNextAction(t *testing.T) {
	for _, status := range model.ApplicationStatuses {
		assert.NotEqual(t, timeline.NextAction("unknown"), timeline.NextAction(status), string(status))
	}
	assert.NotEmpty(t, timeline.NextAction("unknown"))
}

func TestMergeFlows(t *testing.T) {
	overrides := map[string]model.StatusFlow{
		timeline.FlowStandard: {ID: timeline.FlowStandard, Name: "Custom", Steps: []string{"applied", "final"}},
		"internal":            {ID: "internal", Steps: []string{"applied", "accepted"}},
	}

	got := timeline.MergeFlows(timeline.DefaultFlows(), overrides)

	assert.Len(t, got, 5)
	assert.Equal(t, "Custom", got[timeline.FlowStandard].Name)
	assert.Equal(t, "Express Rejection", got[timeline.FlowExpressRejection].Name)
	assert.NoError(t, timeline.ValidateFlows(got))
}
