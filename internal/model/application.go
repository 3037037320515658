package model

import (
	"fmt"
	"slices"
	"time"
)

// ApplicationStatus represents the hiring status of a job application.
type ApplicationStatus string

const (
	// ApplicationStatusPending indicates the application was submitted and nobody looked at it yet.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusReviewing indicates the employer is reviewing the application.
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	// ApplicationStatusShortlisted indicates the applicant was selected for the next round.
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	// ApplicationStatusRejected indicates the applicant was not selected (terminal).
	ApplicationStatusRejected ApplicationStatus = "rejected"
	// ApplicationStatusAccepted indicates an offer was made (terminal).
	ApplicationStatusAccepted ApplicationStatus = "accepted"
)

// ApplicationStatuses are all the known statuses in lifecycle order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewing,
	ApplicationStatusShortlisted,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// validTransitions lists every allowed (from -> to) pair.
// Accepted and rejected are terminal, they have no outgoing transitions.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusReviewing},
	ApplicationStatusReviewing:   {ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted:    {},
	ApplicationStatusRejected:    {},
}

// ParseApplicationStatus converts a raw string into a known status.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.IsKnown() {
		return "", fmt.Errorf("unknown application status %q: %w", s, ErrNotValid)
	}
	return status, nil
}

// IsKnown returns true when the status is part of the application lifecycle.
func (s ApplicationStatus) IsKnown() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal returns true for statuses that can't transition anymore.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// IsValidTransition returns true when moving an application from one status
// to the other is allowed by the lifecycle.
func IsValidTransition(from, to ApplicationStatus) bool {
	return slices.Contains(validTransitions[from], to)
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from ApplicationStatus) []ApplicationStatus {
	return slices.Clone(validTransitions[from])
}

// Application represents a job seeker's submission against a job posting.
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	JobTitle  string            `json:"jobTitle"`
	Company   string            `json:"company"`
	Applicant string            `json:"applicant"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Validate validates the application.
func (a *Application) Validate() error {
	if a.JobID == "" {
		return fmt.Errorf("job id is required: %w", ErrNotValid)
	}
	if a.Applicant == "" {
		return fmt.Errorf("applicant is required: %w", ErrNotValid)
	}
	if !a.Status.IsKnown() {
		return fmt.Errorf("unknown status %q: %w", a.Status, ErrNotValid)
	}
	if a.AppliedAt.IsZero() {
		return fmt.Errorf("applied at is required: %w", ErrNotValid)
	}
	if !a.UpdatedAt.IsZero() && a.UpdatedAt.Before(a.AppliedAt) {
		return fmt.Errorf("updated at can't be before applied at: %w", ErrNotValid)
	}

	return nil
}

// StatusChange is an entry of the status history of an application.
type StatusChange struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	// From is empty for the entry that records the submission.
	From      ApplicationStatus `json:"from"`
	To        ApplicationStatus `json:"to"`
	ChangedAt time.Time         `json:"changedAt"`
}
