package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
	"github.com/slok/hiretrack/internal/model"
)

// TablePrinter prints application information in a table format.
type TablePrinter struct {
	writer io.Writer
	now    func() time.Time
}

// NewTablePrinter creates a new table printer. Relative times are computed
// against now, time.Now is used when nil.
func NewTablePrinter(w io.Writer, now func() time.Time) *TablePrinter {
	if now == nil {
		now = time.Now
	}
	return &TablePrinter{writer: w, now: now}
}

// PrintList prints applications in a table format.
func (t *TablePrinter) PrintList(apps []model.Application) error {
	if len(apps) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tJOB\tCOMPANY\tAPPLICANT\tSTATUS\tAPPLIED\tUPDATED")

	// Print rows
	now := t.now()
	for _, a := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			jobTitle(a),
			orDash(a.Company),
			a.Applicant,
			a.Status,
			TimeAgo(now, a.AppliedAt),
			TimeAgo(now, a.UpdatedAt),
		)
	}

	return nil
}

// PrintApplication prints detailed application information.
func (t *TablePrinter) PrintApplication(app model.Application) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", app.ID)
	fmt.Fprintf(t.writer, "Job:        %s\n", jobName(app))
	if app.Company != "" {
		fmt.Fprintf(t.writer, "Company:    %s\n", app.Company)
	}
	fmt.Fprintf(t.writer, "Applicant:  %s\n", app.Applicant)
	fmt.Fprintf(t.writer, "Status:     %s\n", app.Status)
	fmt.Fprintf(t.writer, "Applied:    %s\n", FormatTimestamp(app.AppliedAt))
	fmt.Fprintf(t.writer, "Updated:    %s\n", FormatTimestamp(app.UpdatedAt))

	return nil
}

var stepMarks = map[model.StepIcon]string{
	model.StepIconCheck:    "[x]",
	model.StepIconCurrent:  "[>]",
	model.StepIconRejected: "[-]",
	model.StepIconAccepted: "[*]",
	model.StepIconPending:  "[ ]",
}

// PrintTimeline prints the timeline of an application with its insights.
func (t *TablePrinter) PrintTimeline(res apptimeline.Result) error {
	app := res.Application
	tl := res.Timeline

	fmt.Fprintf(t.writer, "Application:  %s (%s)\n", app.ID, jobName(app))
	fmt.Fprintf(t.writer, "Status:       %s\n", tl.CurrentStatus)
	if tl.FlowID != "" {
		fmt.Fprintf(t.writer, "Flow:         %s (%s)\n", tl.FlowID, tl.FlowDescription)
	}
	if tl.Progress != nil {
		fmt.Fprintf(t.writer, "Progress:     %d%% (%d/%d steps)\n", tl.Progress.Percentage, tl.Progress.CompletedSteps, tl.Progress.TotalSteps)
	}
	fmt.Fprintf(t.writer, "Duration:     %s\n", res.Duration.FormattedDuration)
	fmt.Fprintln(t.writer)

	now := t.now()
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tSTEP\tDESCRIPTION\tDATE")
	for _, s := range tl.Steps {
		mark, ok := stepMarks[s.Icon]
		if !ok {
			mark = "[?]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, s.Label, s.Description, FormatStepTime(now, s.Timestamp))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(t.writer)
	fmt.Fprintf(t.writer, "%s: %s\n", res.StatusMessage.Primary, res.StatusMessage.Secondary)
	fmt.Fprintf(t.writer, "Next:         %s\n", tl.NextAction)
	if res.ETA.Days > 0 {
		overdue := ""
		if res.ETA.IsOverdue {
			overdue = " (overdue)"
		}
		fmt.Fprintf(t.writer, "ETA:          %s%s\n", res.ETA.Message, overdue)
	}

	if len(res.Suggestions) > 0 {
		fmt.Fprintln(t.writer, "Suggestions:")
		for _, s := range res.Suggestions {
			fmt.Fprintf(t.writer, "  - %s\n", s)
		}
	}

	if len(res.History) > 0 {
		fmt.Fprintln(t.writer, "History:")
		for _, c := range res.History {
			from := string(c.From)
			if from == "" {
				from = "submitted"
			}
			fmt.Fprintf(t.writer, "  %s  %s -> %s\n", FormatTimestamp(c.ChangedAt), from, c.To)
		}
	}

	return nil
}

// PrintFlows prints the status flows in a table format.
func (t *TablePrinter) PrintFlows(flows []model.StatusFlow) error {
	if len(flows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tSTEPS\tDESCRIPTION")
	for _, f := range flows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, orDash(f.Name), strings.Join(f.Steps, " > "), orDash(f.Description))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func jobName(a model.Application) string {
	switch {
	case a.JobTitle != "" && a.Company != "":
		return fmt.Sprintf("%s at %s", a.JobTitle, a.Company)
	default:
		return jobTitle(a)
	}
}

func jobTitle(a model.Application) string {
	if a.JobTitle != "" {
		return a.JobTitle
	}
	return a.JobID
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
