package hiretrack_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inthiretrack "github.com/slok/hiretrack/test/integration/hiretrack"
)

type applicationItem struct {
	ID     string `json:"id"`
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

type timelineResult struct {
	Timeline struct {
		FlowID string `json:"flowId"`
		Steps  []struct {
			ID        string `json:"id"`
			IsCurrent bool   `json:"isCurrent"`
		} `json:"steps"`
		Progress struct {
			Percentage int `json:"percentage"`
		} `json:"progress"`
	} `json:"timeline"`
	History []struct {
		To string `json:"to"`
	} `json:"history"`
}

func TestIntegrationApplicationLifecycle(t *testing.T) {
	config := inthiretrack.NewConfig(t)
	dbPath := filepath.Join(t.TempDir(), "test-hiretrack.db")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Apply.
	stdout, stderr, err := inthiretrack.Run(ctx, config, dbPath, "apply --job-id job-42 --applicant jane@example.com --format json")
	require.NoError(t, err, "stderr: %s", stderr)
	var app applicationItem
	require.NoError(t, json.Unmarshal(stdout, &app))
	assert.Equal(t, "pending", app.Status)

	// Move through the lifecycle.
	_, stderr, err = inthiretrack.Run(ctx, config, dbPath, "move "+app.ID+" reviewing")
	require.NoError(t, err, "stderr: %s", stderr)
	_, stderr, err = inthiretrack.Run(ctx, config, dbPath, "move "+app.ID+" shortlisted")
	require.NoError(t, err, "stderr: %s", stderr)

	// Invalid moves fail.
	_, _, err = inthiretrack.Run(ctx, config, dbPath, "move "+app.ID+" pending")
	assert.Error(t, err)

	// List.
	stdout, stderr, err = inthiretrack.Run(ctx, config, dbPath, "list --status shortlisted --format json")
	require.NoError(t, err, "stderr: %s", stderr)
	var apps []applicationItem
	require.NoError(t, json.Unmarshal(stdout, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)

	// Timeline.
	stdout, stderr, err = inthiretrack.Run(ctx, config, dbPath, "timeline "+app.ID+" --format json")
	require.NoError(t, err, "stderr: %s", stderr)
	var tl timelineResult
	require.NoError(t, json.Unmarshal(stdout, &tl))
	assert.Equal(t, "standard", tl.Timeline.FlowID)
	assert.Equal(t, 75, tl.Timeline.Progress.Percentage)
	assert.Len(t, tl.History, 3)

	// Remove.
	_, stderr, err = inthiretrack.Run(ctx, config, dbPath, "rm "+app.ID)
	require.NoError(t, err, "stderr: %s", stderr)
	_, _, err = inthiretrack.Run(ctx, config, dbPath, "status "+app.ID)
	assert.Error(t, err)
}
