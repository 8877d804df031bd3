package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ai-foundry/pkg/models/store"
	"github.com/de-tools/ai-foundry/pkg/store/sqlite"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(context.Background(), sqlite.Settings{
		DbPath: filepath.Join(t.TempDir(), "state", "history.db"),
	})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{
		db:    db,
		store: s,
	}
}

func testRun(id string, startedAt time.Time) *store.DeploymentRun {
	failure := "quota exceeded"
	return &store.DeploymentRun{
		RunID:         id,
		StartedAt:     startedAt,
		ResourceGroup: "rg-ai-contoso01",
		Location:      "eastus2",
		Succeeded:     false,
		Steps: []store.DeploymentStep{
			{Position: 0, Resource: "Resource Group", Name: "rg-ai-contoso01", Type: "Microsoft.Resources/resourceGroups", Status: "existing"},
			{Position: 1, Resource: "OpenAI Service", Name: "openai-contoso01", Type: "Microsoft.CognitiveServices/accounts", Status: "failed", Error: &failure},
		},
	}
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_RecordAndListRuns(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	older := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, f.store.RecordRun(ctx, testRun("run-1", older)))
	require.NoError(t, f.store.RecordRun(ctx, testRun("run-2", older.Add(time.Hour))))

	t.Run("newest first", func(t *testing.T) {
		runs, err := f.store.ListRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-2", runs[0].RunID)
		assert.True(t, runs[1].StartedAt.Equal(older))
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := f.store.ListRuns(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("steps in order", func(t *testing.T) {
		run, err := f.store.GetRun(ctx, "run-1")
		require.NoError(t, err)
		require.Len(t, run.Steps, 2)
		assert.Nil(t, run.Steps[0].Error)
		assert.Equal(t, "failed", run.Steps[1].Status)
		require.NotNil(t, run.Steps[1].Error)
		assert.Equal(t, "quota exceeded", *run.Steps[1].Error)
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := f.store.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("duplicate run id", func(t *testing.T) {
		err := f.store.RecordRun(ctx, testRun("run-1", older))
		assert.Error(t, err)
	})
}

func TestStore_RecordRunRollsBackOnStepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO deployment_runs").
		WithArgs("run-1", sqlmock.AnyArg(), "rg-ai-contoso01", "eastus2", false, false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO deployment_steps").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.RecordRun(context.Background(), testRun("run-1", time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordRunJoinsContextTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO deployment_runs").WillReturnResult(sqlmock.NewResult(1, 1))

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := sqlite.WithTransaction(context.Background(), tx)

	s, err := NewStore(db)
	require.NoError(t, err)

	run := testRun("run-1", time.Now())
	run.Steps = nil
	require.NoError(t, s.RecordRun(ctx, run))

	// the caller owns the transaction, nothing was committed
	assert.NoError(t, mock.ExpectationsWereMet())
}
