package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/slok/hiretrack/internal/model"
)

// AddStatusChange appends an entry to the status history of an application.
func (r *Repository) AddStatusChange(ctx context.Context, c model.StatusChange) error {
	if err := insertStatusChange(ctx, r.db, c); err != nil {
		return err
	}

	r.logger.Debugf("Added status change %s -> %s for application %s", c.From, c.To, c.ApplicationID)
	return nil
}

// SubmitApplication stores a new application and its first status change in
// a single transaction.
func (r *Repository) SubmitApplication(ctx context.Context, a model.Application, c model.StatusChange) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := insertApplication(ctx, tx, a); err != nil {
			return err
		}
		return insertStatusChange(ctx, tx, c)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Submitted application in repository: %s", a.ID)
	return nil
}

// ChangeStatus moves the application to c.To only if it is still in c.From,
// the status change is recorded in the same transaction.
func (r *Repository) ChangeStatus(ctx context.Context, a model.Application, c model.StatusChange) error {
	if c.ApplicationID != a.ID {
		return fmt.Errorf("status change %s belongs to application %s: %w", c.ID, c.ApplicationID, model.ErrNotValid)
	}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE applications
			SET status = ?, updated_at = ?
			WHERE id = ? AND status = ?
		`
		result, err := tx.ExecContext(ctx, query, c.To, a.UpdatedAt.UnixNano(), a.ID, c.From)
		if err != nil {
			return fmt.Errorf("could not update application status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not get rows affected: %w", err)
		}
		if rows == 0 {
			var status model.ApplicationStatus
			err := tx.QueryRowContext(ctx, `SELECT status FROM applications WHERE id = ?`, a.ID).Scan(&status)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("application %s: %w", a.ID, model.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("could not query application status: %w", err)
			}
			return fmt.Errorf("application %s is %s, not %s: %w", a.ID, status, c.From, model.ErrNotValid)
		}

		return insertStatusChange(ctx, tx, c)
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Changed application %s status %s -> %s", a.ID, c.From, c.To)
	return nil
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

func insertStatusChange(ctx context.Context, e execer, c model.StatusChange) error {
	query := `
		INSERT INTO status_changes (id, application_id, from_status, to_status, changed_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := e.ExecContext(ctx, query, c.ID, c.ApplicationID, c.From, c.To, c.ChangedAt.UnixNano())
	if err != nil {
		switch {
		case isUniqueErr(err):
			return fmt.Errorf("status change %s: %w", c.ID, model.ErrAlreadyExists)
		case isForeignKeyErr(err):
			return fmt.Errorf("application %s: %w", c.ApplicationID, model.ErrNotFound)
		}
		return fmt.Errorf("could not insert status change: %w", err)
	}

	return nil
}

// ListStatusChanges returns the status history of an application, oldest first.
func (r *Repository) ListStatusChanges(ctx context.Context, applicationID string) ([]model.StatusChange, error) {
	query := `
		SELECT id, application_id, from_status, to_status, changed_at
		FROM status_changes
		WHERE application_id = ?
		ORDER BY changed_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("could not query status changes: %w", err)
	}
	defer rows.Close()

	changes := []model.StatusChange{}
	for rows.Next() {
		var c model.StatusChange
		var changedAt int64
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.From, &c.To, &changedAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		c.ChangedAt = timeFromUnixNano(changedAt)
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return changes, nil
}
