package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/hiretrack/internal/model"
)

type FlowsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewFlowsCommand returns the flows command.
func NewFlowsCommand(rootCmd *RootCommand, app *kingpin.Application) *FlowsCommand {
	c := &FlowsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("flows", "List the status flows used to build timelines.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c FlowsCommand) Name() string { return c.Cmd.FullCommand() }

func (c FlowsCommand) Run(ctx context.Context) error {
	gen, err := c.rootCmd.newGenerator(ctx)
	if err != nil {
		return err
	}

	flows := make([]model.StatusFlow, 0)
	for _, f := range gen.Flows() {
		flows = append(flows, f)
	}
	slices.SortFunc(flows, func(a, b model.StatusFlow) int { return strings.Compare(a.ID, b.ID) })

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintFlows(flows); err != nil {
		return fmt.Errorf("could not print flows: %w", err)
	}

	return nil
}
