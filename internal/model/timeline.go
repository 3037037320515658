package model

import "time"

// StatusFlow is a named ordered template of step identifiers that narrates
// one path through the hiring process.
type StatusFlow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Steps always begin with the "applied" step.
	Steps []string `json:"steps"`
}

// HasStep returns true if the flow includes the step.
func (f StatusFlow) HasStep(stepID string) bool {
	for _, s := range f.Steps {
		if s == stepID {
			return true
		}
	}
	return false
}

// StepIcon is the visual marker of a timeline step.
type StepIcon string

const (
	StepIconCheck    StepIcon = "check"
	StepIconCurrent  StepIcon = "current"
	StepIconRejected StepIcon = "rejected"
	StepIconAccepted StepIcon = "accepted"
	StepIconPending  StepIcon = "pending"
)

// TimelineStep is one node of an application timeline.
// A step is never completed and current at the same time.
type TimelineStep struct {
	ID          string            `json:"id"`
	Status      ApplicationStatus `json:"status"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	IsCompleted bool              `json:"isCompleted"`
	IsCurrent   bool              `json:"isCurrent"`
	Icon        StepIcon          `json:"icon"`
	// Timestamp is only set when the step has been reached.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Progress is the completion state of an application inside its flow.
type Progress struct {
	Percentage     int `json:"percentage"`
	CompletedSteps int `json:"completedSteps"`
	TotalSteps     int `json:"totalSteps"`
}

// Timeline is the aggregate handed to the presentation layer.
type Timeline struct {
	Steps         []TimelineStep    `json:"steps"`
	CurrentStatus ApplicationStatus `json:"currentStatus"`
	AppliedAt     time.Time         `json:"appliedAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	NextAction    string            `json:"nextAction"`

	// Metadata, only set when requested.
	FlowID          string    `json:"flowId,omitempty"`
	FlowDescription string    `json:"flowDescription,omitempty"`
	Progress        *Progress `json:"progress,omitempty"`
}

// CurrentStep returns the step marked as current, if any.
func (t Timeline) CurrentStep() (TimelineStep, bool) {
	for _, s := range t.Steps {
		if s.IsCurrent {
			return s, true
		}
	}
	return TimelineStep{}, false
}

// Tone is a coarse sentiment used to style status messages.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
	ToneWarning  Tone = "warning"
)

// StatusMessage is the human readable summary of an application status.
type StatusMessage struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tone      Tone   `json:"tone"`
}

// ETA is the expected time until the next status change.
type ETA struct {
	Days      int    `json:"days"`
	Message   string `json:"message"`
	IsOverdue bool   `json:"isOverdue"`
}

// Duration is the time an application has been in the process.
type Duration struct {
	TotalDays         int    `json:"totalDays"`
	FormattedDuration string `json:"formattedDuration"`
}
