package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/hiretrack/internal/app/transition"
	"github.com/slok/hiretrack/internal/model"
)

type MoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	applicationID string
	status        string
}

// NewMoveCommand returns the move command.
func NewMoveCommand(rootCmd *RootCommand, app *kingpin.Application) *MoveCommand {
	c := &MoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("move", "Move an application to a new status.")
	c.Cmd.Arg("id", "Application ID.").Required().StringVar(&c.applicationID)
	c.Cmd.Arg("status", "New status (reviewing, shortlisted, accepted, rejected).").Required().StringVar(&c.status)

	return c
}

func (c MoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c MoveCommand) Run(ctx context.Context) error {
	status, err := model.ParseApplicationStatus(strings.ToLower(c.status))
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := transition.NewService(transition.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	prev, err := repo.GetApplication(ctx, c.applicationID)
	if err != nil {
		return fmt.Errorf("could not get application: %w", err)
	}

	app, err := svc.Run(ctx, transition.Request{
		ApplicationID: c.applicationID,
		Status:        status,
	})
	if err != nil {
		return fmt.Errorf("could not move application: %w", err)
	}

	msg := fmt.Sprintf("Moved application %s: %s -> %s", app.ID, prev.Status, app.Status)
	if err := newPrinter(formatTable, c.rootCmd.Stdout).PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
