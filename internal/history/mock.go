package history

import (
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock for the HistoryStore interface.
type MockStore struct {
	mock.Mock
}

var _ contract.HistoryStore = (*MockStore)(nil) // Compile-time check

// BeginRun implements the contract.HistoryStore interface.
func (m *MockStore) BeginRun(runID string, startTime time.Time, projectRoot string, configParams map[string]any) (int64, error) {
	ret := m.Called(runID, startTime, projectRoot, configParams)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndRun implements the contract.HistoryStore interface.
func (m *MockStore) EndRun(id int64, endTime time.Time, score int, band string, totalMetrics int) error {
	ret := m.Called(id, endTime, score, band, totalMetrics)
	return ret.Error(0)
}

// RecordMetric implements the contract.HistoryStore interface.
func (m *MockStore) RecordMetric(id int64, metric schema.Metric, weight float64) error {
	ret := m.Called(id, metric, weight)
	return ret.Error(0)
}

// RecentRuns implements the contract.HistoryStore interface.
func (m *MockStore) RecentRuns(limit int) ([]schema.RunRecord, error) {
	ret := m.Called(limit)
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// MetricsForRun implements the contract.HistoryStore interface.
func (m *MockStore) MetricsForRun(id int64) ([]schema.MetricRecord, error) {
	ret := m.Called(id)
	records, _ := ret.Get(0).([]schema.MetricRecord)
	return records, ret.Error(1)
}

// GetStatus implements the contract.HistoryStore interface.
func (m *MockStore) GetStatus() (schema.HistoryStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.HistoryStatus)
	return status, ret.Error(1)
}

// Clear implements the contract.HistoryStore interface.
func (m *MockStore) Clear() error {
	return m.Called().Error(0)
}

// Close implements the contract.HistoryStore interface.
func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
