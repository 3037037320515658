package printer

import (
	"encoding/json"
	"io"

	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/model"
)

// JSONPrinter prints application information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintList prints applications in JSON format.
func (j *JSONPrinter) PrintList(apps []model.Application) error {
	items := make([]model.Application, len(apps))
	for i, a := range apps {
		items[i] = utcApplication(a)
	}

	return j.encode(items)
}

// PrintApplication prints a single application in JSON format.
func (j *JSONPrinter) PrintApplication(app model.Application) error {
	return j.encode(utcApplication(app))
}

// PrintTimeline prints the timeline of an application in JSON format.
func (j *JSONPrinter) PrintTimeline(res apptimeline.Result) error {
	res.Application = utcApplication(res.Application)
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	if res.History == nil {
		res.History = []model.StatusChange{}
	}

	return j.encode(res)
}

// PrintFlows prints the status flows in JSON format.
func (j *JSONPrinter) PrintFlows(flows []model.StatusFlow) error {
	if flows == nil {
		flows = []model.StatusFlow{}
	}
	return j.encode(flows)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func utcApplication(a model.Application) model.Application {
	a.AppliedAt = a.AppliedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a
}
