package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/hiretrack/internal/printer"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		time     time.Time
		expected string
	}{
		"seconds ago": {
			time:     now.Add(-10 * time.Second),
			expected: "just now",
		},
		"1 minute ago": {
			time:     now.Add(-90 * time.Second),
			expected: "1 minute ago",
		},
		"45 minutes ago": {
			time:     now.Add(-45 * time.Minute),
			expected: "45 minutes ago",
		},
		"5 hours ago": {
			time:     now.Add(-5*time.Hour - time.Minute),
			expected: "5 hours ago",
		},
		"3 days ago": {
			time:     now.Add(-72*time.Hour - time.Minute),
			expected: "3 days ago",
		},
		"future": {
			time:     now.Add(time.Hour),
			expected: "in the future",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.TimeAgo(now, test.time))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 5, 13, 4, 5, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-01-05 12:04:05 UTC", printer.FormatTimestamp(ts))
}

func TestFormatStepTime(t *testing.T) {
	now := time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		time     *time.Time
		expected string
	}{
		"A step not reached yet should show a dash.": {
			time:     nil,
			expected: "-",
		},
		"A reached step should show the date and how long ago it was.": {
			time:     &ts,
			expected: "Mar 1, 2020 (3 days ago)",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatStepTime(now, test.time))
		})
	}
}
