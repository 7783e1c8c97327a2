package store_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayjaychukwu/reconcilation/internal/store"
	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/logging"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleJobResult() *reconcile.Result {
	return &reconcile.Result{
		MissingInTarget: []reconcile.Row{{ID: 1.0, Name: "a", Date: "2024-01-01", Amount: 100.0}},
		MissingInSource: []reconcile.Row{},
		Discrepancies:   []reconcile.Discrepancy{},
		Status:          reconcile.StatusSuccess,
	}
}

func TestCreateAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "/data/src.csv", "/data/tgt.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.TaskID)
	assert.Equal(t, reconcile.StatusProcessing, rec.Status)

	got, err := s.Get(ctx, rec.TaskID)
	require.NoError(t, err)
	assert.Equal(t, rec.TaskID, got.TaskID)
	assert.Equal(t, "/data/src.csv", got.SourceFile)
	assert.Equal(t, "/data/tgt.csv", got.TargetFile)
	assert.Nil(t, got.MissingInTarget)
}

func TestGetUnknownTask(t *testing.T) {
	s := openStore(t)

	_, err := s.Get(context.Background(), "no-such-task")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMarkSuccess(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "src", "tgt")
	require.NoError(t, err)

	require.NoError(t, s.MarkSuccess(ctx, rec.TaskID, sampleJobResult()))

	got, err := s.Get(ctx, rec.TaskID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusSuccess, got.Status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(got.MissingInTarget, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0]["name"])

	assert.Equal(t, "[]", string(got.MissingInSource))
	assert.Equal(t, "[]", string(got.Discrepancies))
}

func TestMarkFailed(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "src", "tgt")
	require.NoError(t, err)

	require.NoError(t, s.MarkFailed(ctx, rec.TaskID, "schema error in source dataset"))

	got, err := s.Get(ctx, rec.TaskID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusFailed, got.Status)
	assert.Equal(t, "schema error in source dataset", got.ErrorMessage)
}

func TestTerminalTransitionIsGuarded(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "src", "tgt")
	require.NoError(t, err)

	require.NoError(t, s.MarkSuccess(ctx, rec.TaskID, sampleJobResult()))

	err = s.MarkFailed(ctx, rec.TaskID, "late failure")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyProcessed(err))

	err = s.MarkSuccess(ctx, rec.TaskID, sampleJobResult())
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyProcessed(err))

	got, err := s.Get(ctx, rec.TaskID)
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusSuccess, got.Status)
	assert.Empty(t, got.ErrorMessage)
}

func TestTransitionUnknownTask(t *testing.T) {
	s := openStore(t)

	err := s.MarkFailed(context.Background(), "missing", "boom")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteOlderThan(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "src", "tgt")
	require.NoError(t, err)

	// Nothing is older than a cutoff in the past.
	old, err := s.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, old)

	// A future cutoff sweeps the record.
	old, err = s.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, rec.TaskID, old[0].TaskID)

	_, err = s.Get(ctx, rec.TaskID)
	assert.True(t, errors.IsNotFound(err))
}

func TestFilesSaveReadRemove(t *testing.T) {
	files, err := store.NewFiles(t.TempDir())
	require.NoError(t, err)

	path, err := files.SaveSource("../sneaky.csv", []byte("id,name,date,amount\n"))
	require.NoError(t, err)
	assert.Contains(t, path, store.SourceUploadDir)
	assert.NotContains(t, filepath.Base(path), "..")

	data, err := files.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name,date,amount\n", string(data))

	require.NoError(t, files.Remove(path))
	require.NoError(t, files.Remove(path), "removing twice is not an error")

	_, err = files.Read(path)
	require.Error(t, err)
}

func TestCleanerSweep(t *testing.T) {
	s := openStore(t)
	dir := t.TempDir()
	files, err := store.NewFiles(dir)
	require.NoError(t, err)

	srcPath, err := files.SaveSource("a.csv", []byte("x"))
	require.NoError(t, err)
	tgtPath, err := files.SaveTarget("b.csv", []byte("y"))
	require.NoError(t, err)

	_, err = s.Create(context.Background(), srcPath, tgtPath)
	require.NoError(t, err)

	cleaner := store.NewCleaner(s, files, -time.Hour, logging.NewNopLogger())
	removed := cleaner.Sweep(context.Background())
	assert.Equal(t, 1, removed)

	_, err = files.Read(srcPath)
	assert.Error(t, err)
	_, err = files.Read(tgtPath)
	assert.Error(t, err)
}
