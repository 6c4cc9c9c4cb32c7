package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*SQLStore)
}

func TestSQLiteStoreRunLifecycle(t *testing.T) {
	store := newTestStore(t)
	start := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)

	id, err := store.BeginRun("run-abc", start, "/work/demo", map[string]any{"workers": 4})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	score := 0.9
	metric := schema.Metric{
		ID:       schema.MetricGitRecency,
		Category: schema.GitCategory,
		Value:    schema.NumberValue(2),
		Score:    &score,
	}
	require.NoError(t, store.RecordMetric(id, metric, 0.20))
	require.NoError(t, store.EndRun(id, start.Add(time.Minute), 84, "Excellent", 1))

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-abc", runs[0].RunID)
	assert.Equal(t, "/work/demo", runs[0].ProjectRoot)
	assert.Equal(t, 84, runs[0].Score)
	assert.Equal(t, "Excellent", runs[0].Band)
	assert.Equal(t, 1, runs[0].TotalMetrics)
	assert.True(t, runs[0].StartTime.Equal(start))
	require.NotNil(t, runs[0].EndTime)
	assert.Contains(t, runs[0].ConfigParams, `"workers":4`)

	metrics, err := store.MetricsForRun(id)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, schema.MetricGitRecency, metrics[0].MetricID)
	assert.Equal(t, "git", metrics[0].Category)
	assert.Equal(t, "2", metrics[0].RawValue)
	assert.Equal(t, 0.9, metrics[0].Score)
	assert.Equal(t, 0.20, metrics[0].Weight)
}

func TestSQLiteStoreRecentRunsOrder(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		id, err := store.BeginRun("run", base.Add(time.Duration(i)*time.Hour), "/p", nil)
		require.NoError(t, err)
		require.NoError(t, store.EndRun(id, base.Add(time.Duration(i)*time.Hour+time.Minute), 50+i, "Fair", 0))
	}

	runs, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, 52, runs[0].Score)
	assert.Equal(t, 51, runs[1].Score)
}

func TestSQLiteStoreStatusAndClear(t *testing.T) {
	store := newTestStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 0, status.TotalRuns)

	start := time.Now().UTC()
	id, err := store.BeginRun("run-1", start, "/p", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordMetric(id, schema.Metric{
		ID: schema.MetricLintErrors, Category: schema.LintCategory, Value: schema.CountValue(0),
	}, 0.20))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 1, status.TotalMetrics)
	assert.False(t, status.LastRunTime.IsZero())
	assert.Greater(t, status.TableSizeBytes, int64(0))

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, 0, status.TotalMetrics)
}

func TestNoneBackendIsNoOp(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.BeginRun("run", time.Now(), "/p", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	require.NoError(t, store.RecordMetric(0, schema.Metric{ID: "x"}, 0))
	require.NoError(t, store.EndRun(0, time.Now(), 0, "", 0))

	runs, err := store.RecentRuns(5)
	require.NoError(t, err)
	assert.Nil(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Close())
}

func TestNewStoreRejectsUnknownBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
