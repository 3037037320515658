package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/timeline"
)

// FlowYAMLRepository loads status flow definitions from YAML files.
type FlowYAMLRepository struct {
	fs fs.FS
}

// NewFlowYAMLRepository creates a new YAML flow repository.
func NewFlowYAMLRepository(filesystem fs.FS) *FlowYAMLRepository {
	return &FlowYAMLRepository{fs: filesystem}
}

// ListFlows loads the flows defined in a YAML file and returns them validated
// and keyed by ID.
func (r *FlowYAMLRepository) ListFlows(ctx context.Context, path string) (map[string]model.StatusFlow, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading flows file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var file FlowsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	flows := make(map[string]model.StatusFlow, len(file.Flows))
	for i, f := range file.Flows {
		flow := f.toModel()
		if err := timeline.ValidateFlow(flow); err != nil {
			return nil, fmt.Errorf("invalid flow %d (%q): %w", i, f.ID, err)
		}
		if _, ok := flows[flow.ID]; ok {
			return nil, fmt.Errorf("flow %q defined more than once: %w", flow.ID, model.ErrNotValid)
		}
		flows[flow.ID] = flow
	}

	return flows, nil
}

// FlowsFile represents the YAML structure of a flows file.
type FlowsFile struct {
	Flows []FlowConfig `yaml:"flows"`
}

// FlowConfig represents the YAML structure of a single flow.
type FlowConfig struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Steps       []string `yaml:"steps"`
}

func (c FlowConfig) toModel() model.StatusFlow {
	return model.StatusFlow{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Steps:       c.Steps,
	}
}
