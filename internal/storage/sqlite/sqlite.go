package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/hiretrack/internal/log"
	"github.com/slok/hiretrack/internal/model"
	"github.com/slok/hiretrack/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository, the schema is migrated on creation.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

const applicationColumns = `id, job_id, job_title, company, applicant, status, applied_at, updated_at`

// CreateApplication creates a new application in the repository.
func (r *Repository) CreateApplication(ctx context.Context, a model.Application) error {
	if err := insertApplication(ctx, r.db, a); err != nil {
		return err
	}

	r.logger.Debugf("Created application in repository: %s", a.ID)
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertApplication(ctx context.Context, e execer, a model.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := e.ExecContext(
		ctx,
		query,
		a.ID,
		a.JobID,
		a.JobTitle,
		a.Company,
		a.Applicant,
		a.Status,
		a.AppliedAt.UnixNano(),
		a.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("application %s: %w", a.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert application: %w", err)
	}

	return nil
}

// GetApplication retrieves an application by ID.
func (r *Repository) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query application: %w", err)
	}

	return &app, nil
}

// ListApplications returns all applications, newest applied first.
func (r *Repository) ListApplications(ctx context.Context) ([]model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		ORDER BY applied_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query applications: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return apps, nil
}

// UpdateApplication updates an existing application.
func (r *Repository) UpdateApplication(ctx context.Context, a model.Application) error {
	query := `
		UPDATE applications
		SET
			job_id = ?,
			job_title = ?,
			company = ?,
			applicant = ?,
			status = ?,
			applied_at = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		a.JobID,
		a.JobTitle,
		a.Company,
		a.Applicant,
		a.Status,
		a.AppliedAt.UnixNano(),
		a.UpdatedAt.UnixNano(),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update application: %w", err)
	}

	if err := checkAffected(result, a.ID); err != nil {
		return err
	}

	r.logger.Debugf("Updated application in repository: %s", a.ID)
	return nil
}

// DeleteApplication deletes an application, its status history is removed by cascade.
func (r *Repository) DeleteApplication(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete application: %w", err)
	}

	if err := checkAffected(result, id); err != nil {
		return err
	}

	r.logger.Debugf("Deleted application from repository: %s", id)
	return nil
}

func checkAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("application %s: %w", id, model.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(s scanner) (model.Application, error) {
	var app model.Application
	var appliedAt, updatedAt int64

	err := s.Scan(
		&app.ID,
		&app.JobID,
		&app.JobTitle,
		&app.Company,
		&app.Applicant,
		&app.Status,
		&appliedAt,
		&updatedAt,
	)
	if err != nil {
		return model.Application{}, err
	}

	app.AppliedAt = timeFromUnixNano(appliedAt)
	app.UpdatedAt = timeFromUnixNano(updatedAt)

	return app, nil
}

func isUniqueErr(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyErr(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func timeFromUnixNano(n int64) time.Time { return time.Unix(0, n).UTC() }
