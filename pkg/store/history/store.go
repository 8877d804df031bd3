package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/ai-foundry/pkg/models/store"
	"github.com/de-tools/ai-foundry/pkg/store/sqlite"
)

var ErrRunNotFound = errors.New("deployment run not found")

type Store interface {
	RecordRun(ctx context.Context, run *store.DeploymentRun) error
	ListRuns(ctx context.Context, limit int) ([]*store.DeploymentRun, error)
	GetRun(ctx context.Context, runID string) (*store.DeploymentRun, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

// RecordRun joins the transaction carried by ctx, if any.
func (s *defaultStore) RecordRun(ctx context.Context, run *store.DeploymentRun) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO deployment_runs (run_id, started_at, resource_group, location, dry_run, succeeded)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.RunID, run.StartedAt, run.ResourceGroup, run.Location, run.DryRun, run.Succeeded,
		)
		if err != nil {
			return fmt.Errorf("failed to insert run %s: %w", run.RunID, err)
		}

		for _, step := range run.Steps {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO deployment_steps (run_id, position, resource, name, type, status, error)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				run.RunID, step.Position, step.Resource, step.Name, step.Type, step.Status, step.Error,
			)
			if err != nil {
				return fmt.Errorf("failed to insert step %d of run %s: %w", step.Position, run.RunID, err)
			}
		}
		return nil
	})
}

func (s *defaultStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if tx := sqlite.GetTransaction(ctx); tx != nil {
		return fn(tx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first, steps included.
func (s *defaultStore) ListRuns(ctx context.Context, limit int) ([]*store.DeploymentRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, started_at, resource_group, location, dry_run, succeeded
		FROM deployment_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := []*store.DeploymentRun{}
	for rows.Next() {
		run := &store.DeploymentRun{}
		if err := rows.Scan(&run.RunID, &run.StartedAt, &run.ResourceGroup, &run.Location, &run.DryRun, &run.Succeeded); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// steps are read after the run cursor is closed; the pool holds one connection
	for _, run := range runs {
		if run.Steps, err = s.steps(ctx, run.RunID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *defaultStore) GetRun(ctx context.Context, runID string) (*store.DeploymentRun, error) {
	run := &store.DeploymentRun{}
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, resource_group, location, dry_run, succeeded
		FROM deployment_runs WHERE run_id = ?`, runID).
		Scan(&run.RunID, &run.StartedAt, &run.ResourceGroup, &run.Location, &run.DryRun, &run.Succeeded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}

	if run.Steps, err = s.steps(ctx, runID); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *defaultStore) steps(ctx context.Context, runID string) ([]store.DeploymentStep, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, resource, name, type, status, error
		FROM deployment_steps WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list steps of run %s: %w", runID, err)
	}
	defer rows.Close()

	var steps []store.DeploymentStep
	for rows.Next() {
		var step store.DeploymentStep
		if err := rows.Scan(&step.Position, &step.Resource, &step.Name, &step.Type, &step.Status, &step.Error); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
