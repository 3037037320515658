package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/hiretrack/internal/api"
	"github.com/slok/hiretrack/internal/conventions"
)

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listenAddress string
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Serve the applications JSON API.")
	c.Cmd.Flag("listen-address", "Address the API listens on.").Default(conventions.DefaultListenAddress).StringVar(&c.listenAddress)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
	gen, err := c.rootCmd.newGenerator(ctx)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	srv, err := api.NewServer(api.ServerConfig{
		ListenAddress: c.listenAddress,
		Repository:    repo,
		Generator:     gen,
		Logger:        c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create API server: %w", err)
	}

	return srv.Run(ctx)
}
