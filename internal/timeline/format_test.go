package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/hiretrack/internal/timeline"
)

func TestGeneratorFormatTimestamp(t *testing.T) {
	tests := map[string]struct {
		value  string
		format timeline.TimestampFormat
		exp    string
	}{
		"Not a date should be invalid.": {
			value:  "not-a-date",
			format: timeline.FormatRelative,
			exp:    "Invalid date",
		},
		"Empty value should be invalid.": {
			value:  "",
			format: timeline.FormatAbsolute,
			exp:    "Invalid date",
		},
		"Relative just now.": {
			value:  "2024-01-10T11:59:30Z",
			format: timeline.FormatRelative,
			exp:    "just now",
		},
		"Relative minutes.": {
			value:  "2024-01-10T11:55:00Z",
			format: timeline.FormatRelative,
			exp:    "5 minutes ago",
		},
		"Relative single hour.": {
			value:  "2024-01-10T11:00:00Z",
			format: timeline.FormatRelative,
			exp:    "1 hour ago",
		},
		"Relative days.": {
			value:  "2024-01-07T12:00:00Z",
			format: timeline.FormatRelative,
			exp:    "3 days ago",
		},
		"Relative months.": {
			value:  "2023-11-01T12:00:00Z",
			format: timeline.FormatRelative,
			exp:    "2 months ago",
		},
		"Relative years.": {
			value:  "2022-01-01T12:00:00Z",
			format: timeline.FormatRelative,
			exp:    "2 years ago",
		},
		"Relative future.": {
			value:  "2024-02-01T12:00:00Z",
			format: timeline.FormatRelative,
			exp:    "in the future",
		},
		"Absolute with fractional seconds and offset.": {
			value:  "2024-01-05T23:30:00.123+02:00",
			format: timeline.FormatAbsolute,
			exp:    "Jan 5, 2024",
		},
		"Absolute without zone.": {
			value:  "2024-01-05T10:00:00",
			format: timeline.FormatAbsolute,
			exp:    "Jan 5, 2024",
		},
		"Absolute date only.": {
			value:  "2024-01-05",
			format: timeline.FormatAbsolute,
			exp:    "Jan 5, 2024",
		},
		"Combined.": {
			value:  "2024-01-07T12:00:00Z",
			format: timeline.FormatCombined,
			exp:    "Jan 7, 2024 (3 days ago)",
		},
		"Smart recent should be relative.": {
			value:  "2024-01-07T12:00:00Z",
			format: timeline.FormatSmart,
			exp:    "3 days ago",
		},
		"Smart old should be absolute.": {
			value:  "2023-12-01T12:00:00Z",
			format: timeline.FormatSmart,
			exp:    "Dec 1, 2023",
		},
		"Unknown format should be absolute.": {
			value:  "2024-01-07T12:00:00Z",
			format: "fancy",
			exp:    "Jan 7, 2024",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			g := newTestGenerator(t)
			assert.Equal(t, test.exp, g.FormatTimestamp(test.value, test.format))
		})
	}
}

func TestFormatTimeZero(t *testing.T) {
	assert.Equal(t, "Invalid date", timeline.FormatTime(testNow, time.Time{}, timeline.FormatRelative))
}
