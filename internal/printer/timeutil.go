package printer

import (
	"time"

	"github.com/slok/hiretrack/internal/timeline"
)

// TimeAgo returns a human-readable relative time string of t seen at now.
// Examples: "just now", "2 minutes ago", "3 days ago".
func TimeAgo(now, t time.Time) string {
	return timeline.RelativeTime(now.UTC(), t.UTC())
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// FormatStepTime returns the date of a timeline step, empty if the step
// has not been reached yet.
func FormatStepTime(now time.Time, t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return timeline.FormatTime(now.UTC(), *t, timeline.FormatCombined)
}
