package lib

import (
	"context"
	"fmt"
	"time"

	"k8s.io/client-go/util/homedir"

	"github.com/slok/hiretrack/internal/conventions"
	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/storage"
	"github.com/slok/hiretrack/internal/storage/memory"
	"github.com/slok/hiretrack/internal/storage/sqlite"
	"github.com/slok/hiretrack/internal/timeline"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses ~/.hiretrack/hiretrack.db
// for storage and the built-in flows.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.hiretrack/hiretrack.db.
	DBPath string

	// InMemory stores the applications in memory instead of SQLite. DBPath is
	// ignored when set.
	InMemory bool

	// Flows override the built-in flows that share their ID and add new ones.
	Flows []Flow

	// Now returns the current time. Default: time.Now.
	Now func() time.Time

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DBPath == "" && !c.InMemory {
		c.DBPath = conventions.DBPath(homedir.HomeDir())
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point to manage applications programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	repo    storage.Repository
	gen     *timeline.Generator
	now     func() time.Time
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	flows := timeline.DefaultFlows()
	if len(cfg.Flows) > 0 {
		custom := make(map[string]Flow, len(cfg.Flows))
		for _, f := range cfg.Flows {
			custom[f.ID] = f
		}
		flows = timeline.MergeFlows(flows, custom)
	}

	gen, err := timeline.NewGenerator(timeline.GeneratorConfig{
		Flows:  flows,
		Now:    cfg.Now,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create timeline generator: %w", err)
	}

	c := &Client{
		gen:    gen,
		now:    cfg.Now,
		logger: cfg.Logger,
	}

	if cfg.InMemory {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo
		return c, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	c.repo = repo
	c.closeFn = repo.Close

	return c, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
