package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/hiretrack/internal/conventions"
	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/printer"
	storageio "github.com/slok/hiretrack/internal/storage/io"
	"github.com/slok/hiretrack/internal/storage/sqlite"
	"github.com/slok/hiretrack/internal/timeline"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	FlowsFile  string

	defaultFlowsFile string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	home := homedir.HomeDir()
	c := &RootCommand{defaultFlowsFile: conventions.FlowsPath(home)}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("db-path", "Path to the SQLite database file.").Default(conventions.DBPath(home)).StringVar(&c.DBPath)
	app.Flag("flows-file", "Path to a YAML file with custom status flow definitions.").Default(c.defaultFlowsFile).StringVar(&c.FlowsFile)

	return c
}

// newRepository opens the SQLite application store, callers must close it.
func (c *RootCommand) newRepository(ctx context.Context) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// newGenerator creates the timeline generator with the built-in flows and the
// custom ones from the flows file.
func (c *RootCommand) newGenerator(ctx context.Context) (*timeline.Generator, error) {
	flows, err := c.loadFlows(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := timeline.NewGenerator(timeline.GeneratorConfig{
		Flows:  flows,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create timeline generator: %w", err)
	}
	return gen, nil
}

// loadFlows returns the built-in flows overridden by the flows file ones. A
// missing file at the default location is not an error.
func (c *RootCommand) loadFlows(ctx context.Context) (map[string]model.StatusFlow, error) {
	base := timeline.DefaultFlows()
	if c.FlowsFile == "" {
		return base, nil
	}

	path, err := filepath.Abs(c.FlowsFile)
	if err != nil {
		return nil, fmt.Errorf("invalid flows file path: %w", err)
	}

	repo := storageio.NewFlowYAMLRepository(os.DirFS(filepath.Dir(path)))
	custom, err := repo.ListFlows(ctx, filepath.Base(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && c.FlowsFile == c.defaultFlowsFile {
			c.Logger.Debugf("No custom flows file at %s", path)
			return base, nil
		}
		return nil, fmt.Errorf("could not load flows: %w", err)
	}

	c.Logger.Debugf("Loaded %d custom flows from %s", len(custom), path)
	flows := timeline.MergeFlows(base, custom)
	if err := timeline.ValidateFlows(flows); err != nil {
		return nil, fmt.Errorf("invalid flows file %s: %w", path, err)
	}
	return flows, nil
}

func newPrinter(format string, w io.Writer) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(w)
	}
	return printer.NewTablePrinter(w, time.Now)
}
