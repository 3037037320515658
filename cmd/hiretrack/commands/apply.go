package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/hiretrack/internal/app/apply"
)

type ApplyCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	jobID     string
	jobTitle  string
	company   string
	applicant string
	format    string
}

// NewApplyCommand returns the apply command.
func NewApplyCommand(rootCmd *RootCommand, app *kingpin.Application) *ApplyCommand {
	c := &ApplyCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("apply", "Submit a job application.")
	c.Cmd.Flag("job-id", "ID of the job posting.").Required().StringVar(&c.jobID)
	c.Cmd.Flag("job-title", "Title of the job posting.").StringVar(&c.jobTitle)
	c.Cmd.Flag("company", "Company offering the job.").StringVar(&c.company)
	c.Cmd.Flag("applicant", "Applicant identifier (e.g. email).").Required().StringVar(&c.applicant)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ApplyCommand) Name() string { return c.Cmd.FullCommand() }

func (c ApplyCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := apply.NewService(apply.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	app, err := svc.Run(ctx, apply.Request{
		JobID:     c.jobID,
		JobTitle:  c.jobTitle,
		Company:   c.company,
		Applicant: c.applicant,
	})
	if err != nil {
		return fmt.Errorf("could not submit application: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintApplication(*app); err != nil {
		return fmt.Errorf("could not print application: %w", err)
	}

	return nil
}
