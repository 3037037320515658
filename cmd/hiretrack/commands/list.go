package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/hiretrack/internal/app/list"
	"github.com/slok/hiretrack/internal/model"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	format       string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all applications.")
	c.Cmd.Flag("status", "Filter by status (pending, reviewing, shortlisted, accepted, rejected).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	var statusFilter *model.ApplicationStatus
	if c.statusFilter != "" {
		status, err := model.ParseApplicationStatus(strings.ToLower(c.statusFilter))
		if err != nil {
			return fmt.Errorf("invalid status filter: %w", err)
		}
		statusFilter = &status
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := list.NewService(list.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	apps, err := svc.Run(ctx, list.Request{StatusFilter: statusFilter})
	if err != nil {
		return fmt.Errorf("could not list applications: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintList(apps); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
