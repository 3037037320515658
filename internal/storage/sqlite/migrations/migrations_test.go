package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/storage/sqlite/migrations"
)

func TestMigratorUpDown(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	m, err := migrations.NewMigrator(db, log.Noop)
	require.NoError(t, err)

	v, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	require.NoError(t, m.Up(ctx))
	// Applying twice is a no-op.
	require.NoError(t, m.Up(ctx))

	v, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(2), v)

	_, err = db.ExecContext(ctx, `SELECT id FROM status_changes`)
	require.NoError(t, err)

	require.NoError(t, m.Down(ctx))
	_, err = db.ExecContext(ctx, `SELECT id FROM applications`)
	assert.Error(t, err)
}

func TestNewMigratorRequiresDB(t *testing.T) {
	_, err := migrations.NewMigrator(nil, nil)
	assert.Error(t, err)
}
