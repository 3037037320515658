package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	applicationID string
	format        string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Show an application.")
	c.Cmd.Arg("id", "Application ID.").Required().StringVar(&c.applicationID)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	app, err := repo.GetApplication(ctx, c.applicationID)
	if err != nil {
		return fmt.Errorf("could not get application: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintApplication(*app); err != nil {
		return fmt.Errorf("could not print application: %w", err)
	}

	return nil
}
