package lib

import (
	"github.com/slok/hiretrack/internal/model"
)

// ApplicationStatus is the lifecycle state of an application.
//
// The lifecycle is:
//
//	pending -> reviewing -> shortlisted -> accepted|rejected
//
// Reviewing applications can also be accepted or rejected directly.
type ApplicationStatus = model.ApplicationStatus

const (
	StatusPending     = model.ApplicationStatusPending
	StatusReviewing   = model.ApplicationStatusReviewing
	StatusShortlisted = model.ApplicationStatusShortlisted
	StatusAccepted    = model.ApplicationStatusAccepted
	StatusRejected    = model.ApplicationStatusRejected
)

type (
	// Application is a job application as returned by the SDK.
	Application = model.Application
	// StatusChange is an entry of the status history of an application.
	StatusChange = model.StatusChange
	// Flow is a named ordered list of steps used to narrate a timeline.
	Flow = model.StatusFlow
	// Timeline is the ordered list of steps of an application.
	Timeline = model.Timeline
	// TimelineStep is one node of a timeline.
	TimelineStep = model.TimelineStep
	// Progress is the completion of an application inside its flow.
	Progress = model.Progress
	// StatusMessage is the human readable summary of a status.
	StatusMessage = model.StatusMessage
	// ETA is the estimated time until the next status change.
	ETA = model.ETA
	// Duration is the time the application has been in the hiring process.
	Duration = model.Duration
)

var (
	// ErrNotFound is returned when the application does not exist.
	ErrNotFound = model.ErrNotFound
	// ErrAlreadyExists is returned when an application with the same ID already exists.
	ErrAlreadyExists = model.ErrAlreadyExists
	// ErrNotValid is returned for invalid input or status transitions.
	ErrNotValid = model.ErrNotValid
)

// ApplyOpts are the options to submit an application.
type ApplyOpts struct {
	// JobID is the job posting ID (required).
	JobID    string
	JobTitle string
	Company  string
	// Applicant identifies who applies (required).
	Applicant string
}

// ListApplicationsOpts are the options to list applications.
type ListApplicationsOpts struct {
	// Status filters the applications by status when set.
	Status *ApplicationStatus
}

// TimelineOpts are the options to get a timeline.
type TimelineOpts struct {
	// WithoutMetadata omits the flow and progress information.
	WithoutMetadata bool
}

// ApplicationTimeline is an application timeline with its insights and
// status history.
type ApplicationTimeline struct {
	Application   Application
	Timeline      Timeline
	StatusMessage StatusMessage
	ETA           ETA
	Duration      Duration
	Suggestions   []string
	History       []StatusChange
}
