package schema

import "time"

// RunRecord is one persisted scoring run.
type RunRecord struct {
	ID           int64      `json:"id"`
	RunID        string     `json:"run_id"`
	ProjectRoot  string     `json:"project_root"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Score        int        `json:"score"`
	Band         string     `json:"band"`
	TotalMetrics int        `json:"total_metrics"`
	ConfigParams string     `json:"config_params,omitempty"`
}

// MetricRecord is one persisted enriched metric row.
type MetricRecord struct {
	RunID      int64     `json:"run_id"`
	MetricID   string    `json:"metric_id"`
	Category   string    `json:"category"`
	RawValue   string    `json:"raw_value"`
	Score      float64   `json:"score"`
	Weight     float64   `json:"weight"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HistoryStatus summarizes the state of the history store.
type HistoryStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalRuns      int       `json:"total_runs"`
	TotalMetrics   int       `json:"total_metrics"`
	LastRunTime    time.Time `json:"last_run_time,omitzero"`
	OldestRunTime  time.Time `json:"oldest_run_time,omitzero"`
	TableSizeBytes int64     `json:"table_size_bytes,omitempty"`
}
