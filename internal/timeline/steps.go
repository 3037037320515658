package timeline

import (
	"time"

	"github.com/slok/hiretrack/internal/model"
)

type stepTemplate struct {
	label       string
	description string
	status      model.ApplicationStatus
}

// stepTemplates are the display templates of every usable step. The final
// step template is the undecided version, see resolveTemplate.
var stepTemplates = map[string]stepTemplate{
	StepApplied:     {label: "Applied", description: "Application submitted", status: model.ApplicationStatusPending},
	StepReviewing:   {label: "Under Review", description: "Application being reviewed", status: model.ApplicationStatusReviewing},
	StepShortlisted: {label: "Shortlisted", description: "Selected for next round", status: model.ApplicationStatusShortlisted},
	StepFinal:       {label: "Final Decision", description: "Decision pending", status: model.ApplicationStatusPending},
	StepRejected:    {label: "Rejected", description: "Not selected", status: model.ApplicationStatusRejected},
	StepAccepted:    {label: "Accepted", description: "Offer made", status: model.ApplicationStatusAccepted},
}

func resolveTemplate(stepID string, current model.ApplicationStatus) (stepTemplate, bool) {
	if stepID == StepFinal {
		switch current {
		case model.ApplicationStatusAccepted:
			return stepTemplates[StepAccepted], true
		case model.ApplicationStatusRejected:
			return stepTemplates[StepRejected], true
		}
	}

	t, ok := stepTemplates[stepID]
	return t, ok
}

// statusOrder is the progression used to compare steps against the live status.
var statusOrder = map[model.ApplicationStatus]int{
	model.ApplicationStatusPending:     0,
	model.ApplicationStatusReviewing:   1,
	model.ApplicationStatusShortlisted: 2,
	model.ApplicationStatusAccepted:    3,
}

// stepComparatorStatus maps a step to the status that reaches it.
var stepComparatorStatus = map[string]model.ApplicationStatus{
	StepReviewing:   model.ApplicationStatusReviewing,
	StepShortlisted: model.ApplicationStatusShortlisted,
	StepFinal:       model.ApplicationStatusAccepted,
	StepAccepted:    model.ApplicationStatusAccepted,
	StepRejected:    model.ApplicationStatusAccepted,
}

// stepReachedBy lists the statuses that confirm a step has been reached.
var stepReachedBy = map[string][]model.ApplicationStatus{
	StepReviewing: {
		model.ApplicationStatusReviewing,
		model.ApplicationStatusShortlisted,
		model.ApplicationStatusAccepted,
		model.ApplicationStatusRejected,
	},
	StepShortlisted: {
		model.ApplicationStatusShortlisted,
		model.ApplicationStatusAccepted,
		model.ApplicationStatusRejected,
	},
	StepFinal:    {model.ApplicationStatusAccepted, model.ApplicationStatusRejected},
	StepRejected: {model.ApplicationStatusRejected},
	StepAccepted: {model.ApplicationStatusAccepted},
}

type stepState struct {
	completed bool
	current   bool
	icon      model.StepIcon
}

var (
	completedState = stepState{completed: true, icon: model.StepIconCheck}
	currentState   = stepState{current: true, icon: model.StepIconCurrent}
	pendingState   = stepState{icon: model.StepIconPending}
)

// BuildSteps expands the flow into timeline steps for an application in the
// given status. Steps without a template are logged and skipped.
func (g *Generator) BuildSteps(flow model.StatusFlow, status model.ApplicationStatus, appliedAt, updatedAt time.Time) []model.TimelineStep {
	steps := make([]model.TimelineStep, 0, len(flow.Steps))
	for i, stepID := range flow.Steps {
		tpl, ok := resolveTemplate(stepID, status)
		if !ok {
			g.logger.Warningf("skipping unknown step %q in flow %q", stepID, flow.ID)
			continue
		}

		state := resolveStepState(stepID, i, flow, status)
		steps = append(steps, model.TimelineStep{
			ID:          stepID,
			Status:      tpl.status,
			Label:       tpl.label,
			Description: tpl.description,
			IsCompleted: state.completed,
			IsCurrent:   state.current,
			Icon:        state.icon,
			Timestamp:   resolveStepTimestamp(stepID, i, status, appliedAt, updatedAt),
		})
	}

	return steps
}

func resolveStepState(stepID string, index int, flow model.StatusFlow, status model.ApplicationStatus) stepState {
	switch status {
	case model.ApplicationStatusRejected:
		switch {
		case stepID == StepApplied:
			return completedState
		case stepID == StepRejected || stepID == StepFinal:
			return stepState{completed: true, icon: model.StepIconRejected}
		case index < len(flow.Steps)-1:
			return completedState
		default:
			return pendingState
		}

	case model.ApplicationStatusAccepted:
		if stepID == StepAccepted || stepID == StepFinal {
			return stepState{completed: true, icon: model.StepIconAccepted}
		}
		return completedState
	}

	if stepID == StepApplied {
		return completedState
	}

	stepStatus, ok := stepComparatorStatus[stepID]
	if !ok {
		return pendingState
	}

	live, ok := statusOrder[status]
	if !ok {
		// Unknown statuses don't have a position, only the submission is known.
		return pendingState
	}
	// A pending application is waiting in the review queue.
	if status == model.ApplicationStatusPending {
		live = statusOrder[model.ApplicationStatusReviewing]
	}

	stepPos := statusOrder[stepStatus]
	switch {
	case stepPos < live:
		return completedState
	case stepPos == live, stepID == string(status):
		return currentState
	default:
		return pendingState
	}
}

func resolveStepTimestamp(stepID string, index int, status model.ApplicationStatus, appliedAt, updatedAt time.Time) *time.Time {
	if stepID == StepApplied {
		return timePtr(appliedAt)
	}
	if index == 0 {
		return timePtr(updatedAt)
	}

	for _, s := range stepReachedBy[stepID] {
		if s == status {
			return timePtr(updatedAt)
		}
	}

	return nil
}

func timePtr(t time.Time) *time.Time { return &t }
