package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const DeploymentRunsSchema = `
	CREATE TABLE IF NOT EXISTS deployment_runs (
		run_id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		resource_group TEXT NOT NULL,
		location TEXT NOT NULL,
		dry_run BOOLEAN NOT NULL,
		succeeded BOOLEAN NOT NULL
	);
`

const DeploymentStepsSchema = `
	CREATE TABLE IF NOT EXISTS deployment_steps (
		run_id TEXT NOT NULL REFERENCES deployment_runs(run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		resource TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NULL,
		PRIMARY KEY (run_id, position)
	);
`

var bootQueries = []string{
	DeploymentRunsSchema,
	DeploymentStepsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database file, creating its directory and the schema when
// missing.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if dir := filepath.Dir(settings.DbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", settings.DbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return db, nil
}
