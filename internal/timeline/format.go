package timeline

import (
	"fmt"
	"strings"
	"time"
)

// TimestampFormat is the textual form used to show a timeline timestamp.
type TimestampFormat string

const (
	// FormatRelative shows timestamps like "3 days ago".
	FormatRelative TimestampFormat = "relative"
	// FormatAbsolute shows timestamps like "Jan 5, 2024".
	FormatAbsolute TimestampFormat = "absolute"
	// FormatCombined shows timestamps like "Jan 5, 2024 (3 days ago)".
	FormatCombined TimestampFormat = "combined"
	// FormatSmart is relative for recent timestamps and absolute for old ones.
	FormatSmart TimestampFormat = "smart"
)

// InvalidDate is returned when a timestamp can't be formatted.
const InvalidDate = "Invalid date"

const (
	absoluteLayout  = "Jan 2, 2006"
	smartRecentDays = 7
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp parses an ISO-8601 timestamp, timestamps without zone are
// considered UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp formats an ISO-8601 timestamp string. Unparseable values
// return InvalidDate.
func (g *Generator) FormatTimestamp(value string, format TimestampFormat) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return InvalidDate
	}
	return FormatTime(g.now(), t, format)
}

// FormatTime formats a timestamp relative to the generator clock.
func (g *Generator) FormatTime(t time.Time, format TimestampFormat) string {
	return FormatTime(g.now(), t, format)
}

// FormatTime formats t using now as the reference for relative forms. Zero
// times return InvalidDate.
func FormatTime(now, t time.Time, format TimestampFormat) string {
	if t.IsZero() {
		return InvalidDate
	}

	switch format {
	case FormatRelative:
		return RelativeTime(now, t)
	case FormatCombined:
		return fmt.Sprintf("%s (%s)", AbsoluteTime(t), RelativeTime(now, t))
	case FormatSmart:
		if now.Sub(t) < smartRecentDays*24*time.Hour {
			return RelativeTime(now, t)
		}
		return AbsoluteTime(t)
	default:
		return AbsoluteTime(t)
	}
}

// AbsoluteTime returns the UTC calendar date of t, e.g. "Jan 5, 2024".
func AbsoluteTime(t time.Time) string {
	return t.UTC().Format(absoluteLayout)
}

// RelativeTime returns a human-readable relative time string.
// Examples: "just now", "5 minutes ago", "3 days ago", "2 months ago".
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)

	if diff < 0 {
		return "in the future"
	}

	if diff < time.Minute {
		return "just now"
	}

	if diff < time.Hour {
		return plural(int(diff.Minutes()), "minute") + " ago"
	}

	if diff < 24*time.Hour {
		return plural(int(diff.Hours()), "hour") + " ago"
	}

	days := int(diff.Hours() / 24)
	switch {
	case days < 30:
		return plural(days, "day") + " ago"
	case days < 365:
		return plural(days/30, "month") + " ago"
	default:
		return plural(days/365, "year") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
