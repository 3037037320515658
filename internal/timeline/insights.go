package timeline

import (
	"fmt"
	"time"

	"github.com/slok/hiretrack/internal/model"
)

const unknownDuration = "Unknown"

// Duration returns how long an application has been in the process. A zero
// updatedAt means the application is still open and now is used instead.
func (g *Generator) Duration(appliedAt, updatedAt time.Time) model.Duration {
	if appliedAt.IsZero() {
		return model.Duration{TotalDays: 0, FormattedDuration: unknownDuration}
	}
	if updatedAt.IsZero() {
		updatedAt = g.now()
	}

	days := daysBetween(appliedAt, updatedAt)
	return model.Duration{TotalDays: days, FormattedDuration: formatDays(days)}
}

// DurationFromStrings is like Duration with ISO-8601 inputs. An empty updatedAt
// means now, unparseable dates return an unknown duration.
func (g *Generator) DurationFromStrings(appliedAt, updatedAt string) model.Duration {
	applied, ok := ParseTimestamp(appliedAt)
	if !ok {
		return model.Duration{TotalDays: 0, FormattedDuration: unknownDuration}
	}

	var updated time.Time
	if updatedAt != "" {
		updated, ok = ParseTimestamp(updatedAt)
		if !ok {
			return model.Duration{TotalDays: 0, FormattedDuration: unknownDuration}
		}
	}

	return g.Duration(applied, updated)
}

func formatDays(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

type etaEntry struct {
	days    int
	message string
}

var etas = map[model.ApplicationStatus]etaEntry{
	model.ApplicationStatusPending:     {days: 3, message: "Employers usually start reviewing applications within 3 days"},
	model.ApplicationStatusReviewing:   {days: 7, message: "Reviews usually take up to a week"},
	model.ApplicationStatusShortlisted: {days: 10, message: "A final decision usually arrives within 10 days"},
	model.ApplicationStatusAccepted:    {days: 0, message: "The hiring process is complete"},
	model.ApplicationStatusRejected:    {days: 0, message: "The hiring process is complete"},
}

// EstimateETA returns the expected wait for the next status change and if
// the application has been waiting longer than usual.
func (g *Generator) EstimateETA(status model.ApplicationStatus, appliedAt time.Time) model.ETA {
	e, ok := etas[status]
	if !ok {
		return model.ETA{Message: "No estimate available"}
	}

	overdue := false
	if e.days > 0 && !appliedAt.IsZero() {
		overdue = g.elapsedDays(appliedAt) > e.days
	}

	return model.ETA{Days: e.days, Message: e.message, IsOverdue: overdue}
}

const (
	pendingWarningDays   = 5
	reviewingWarningDays = 7
)

// StatusMessage returns the summary shown next to the timeline. Pending and
// reviewing applications switch to a warning tone when they stall.
func (g *Generator) StatusMessage(status model.ApplicationStatus, appliedAt, updatedAt time.Time) model.StatusMessage {
	sinceApplied := g.elapsedDays(appliedAt)
	sinceUpdated := g.elapsedDays(updatedAt)

	switch status {
	case model.ApplicationStatusPending:
		tone := model.ToneNeutral
		if sinceApplied > pendingWarningDays {
			tone = model.ToneWarning
		}
		return model.StatusMessage{
			Primary:   "Application submitted",
			Secondary: fmt.Sprintf("Submitted %s, waiting for the employer to review it", daysAgo(sinceApplied)),
			Tone:      tone,
		}

	case model.ApplicationStatusReviewing:
		tone := model.ToneNeutral
		if sinceUpdated > reviewingWarningDays {
			tone = model.ToneWarning
		}
		return model.StatusMessage{
			Primary:   "Application under review",
			Secondary: fmt.Sprintf("Review started %s", daysAgo(sinceUpdated)),
			Tone:      tone,
		}

	case model.ApplicationStatusShortlisted:
		return model.StatusMessage{
			Primary:   "You have been shortlisted",
			Secondary: fmt.Sprintf("Shortlisted %s, a final decision is coming", daysAgo(sinceUpdated)),
			Tone:      model.TonePositive,
		}

	case model.ApplicationStatusAccepted:
		return model.StatusMessage{
			Primary:   "Offer received",
			Secondary: fmt.Sprintf("Accepted %s", daysAgo(sinceUpdated)),
			Tone:      model.TonePositive,
		}

	case model.ApplicationStatusRejected:
		return model.StatusMessage{
			Primary:   "Not selected this time",
			Secondary: fmt.Sprintf("Decision made %s", daysAgo(sinceUpdated)),
			Tone:      model.ToneNegative,
		}
	}

	return model.StatusMessage{
		Primary:   "Status unavailable",
		Secondary: fmt.Sprintf("Last updated %s", daysAgo(sinceUpdated)),
		Tone:      model.ToneNeutral,
	}
}

var suggestions = map[model.ApplicationStatus][]string{
	model.ApplicationStatusPending: {
		"Make sure your profile and resume are up to date",
		"Research the company while you wait",
	},
	model.ApplicationStatusReviewing: {
		"Prepare for a possible interview",
		"Review the job description and your application",
	},
	model.ApplicationStatusShortlisted: {
		"Prepare questions for the hiring team",
		"Gather references and work samples",
	},
	model.ApplicationStatusAccepted: {
		"Review the offer details carefully",
		"Reply to the employer promptly",
	},
	model.ApplicationStatusRejected: {
		"Ask the employer for feedback if appropriate",
		"Keep applying to similar roles",
	},
}

const (
	pendingFollowUpDays   = 7
	reviewingFollowUpDays = 10

	pendingFollowUp   = "Consider a polite follow-up with the employer"
	reviewingFollowUp = "The review is taking a while, a short follow-up email may help"
)

// Suggestions returns what the applicant can do next.
func (g *Generator) Suggestions(status model.ApplicationStatus, updatedAt time.Time) []string {
	res := append([]string{}, suggestions[status]...)

	sinceUpdated := g.elapsedDays(updatedAt)
	switch {
	case status == model.ApplicationStatusPending && sinceUpdated > pendingFollowUpDays:
		res = append(res, pendingFollowUp)
	case status == model.ApplicationStatusReviewing && sinceUpdated > reviewingFollowUpDays:
		res = append(res, reviewingFollowUp)
	}

	return res
}

// elapsedDays returns the whole days between t and now, zero times have no age.
func (g *Generator) elapsedDays(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return daysBetween(t, g.now())
}

func daysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	if diff < 0 {
		return 0
	}
	return int(diff / (24 * time.Hour))
}

func daysAgo(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
