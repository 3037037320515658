package printer

import (
	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/model"
)

// Printer knows how to print application information in different formats.
type Printer interface {
	PrintList(apps []model.Application) error
	PrintApplication(app model.Application) error
	PrintTimeline(res apptimeline.Result) error
	PrintFlows(flows []model.StatusFlow) error
	PrintMessage(msg string) error
}
