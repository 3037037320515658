package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	apptimeline "github.com/slok/hiretrack/internal/app/timeline"
)

type TimelineCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	applicationID string
	noMetadata    bool
	format        string
}

// NewTimelineCommand returns the timeline command.
func NewTimelineCommand(rootCmd *RootCommand, app *kingpin.Application) *TimelineCommand {
	c := &TimelineCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("timeline", "Show the status timeline of an application.")
	c.Cmd.Arg("id", "Application ID.").Required().StringVar(&c.applicationID)
	c.Cmd.Flag("no-metadata", "Don't include the flow and progress information.").BoolVar(&c.noMetadata)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c TimelineCommand) Name() string { return c.Cmd.FullCommand() }

func (c TimelineCommand) Run(ctx context.Context) error {
	gen, err := c.rootCmd.newGenerator(ctx)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := apptimeline.NewService(apptimeline.ServiceConfig{
		Repository: repo,
		Generator:  gen,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, apptimeline.Request{
		ApplicationID: c.applicationID,
		WithMetadata:  !c.noMetadata,
	})
	if err != nil {
		return fmt.Errorf("could not get timeline: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintTimeline(*res); err != nil {
		return fmt.Errorf("could not print timeline: %w", err)
	}

	return nil
}
