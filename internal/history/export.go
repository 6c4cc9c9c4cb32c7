package history

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// RunRow is one scoring run in the Parquet export.
type RunRow struct {
	ID           int64      `parquet:"id,snappy"`
	RunID        string     `parquet:"run_id,snappy"`
	ProjectRoot  string     `parquet:"project_root,snappy"`
	StartTime    time.Time  `parquet:"start_time,snappy"`
	EndTime      *time.Time `parquet:"end_time,optional,snappy"`
	Score        int32      `parquet:"score,snappy"`
	Band         string     `parquet:"band,snappy"`
	TotalMetrics int32      `parquet:"total_metrics,snappy"`
	ConfigParams *string    `parquet:"config_params,optional,snappy"`
}

// MetricRow is one stored metric in the Parquet export.
type MetricRow struct {
	RunID      int64     `parquet:"run_id,snappy"`
	MetricID   string    `parquet:"metric_id,snappy"`
	Category   string    `parquet:"category,snappy"`
	RawValue   string    `parquet:"raw_value,snappy"`
	Score      float64   `parquet:"score,snappy"`
	Weight     float64   `parquet:"weight,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// convertRunRecords maps stored runs into their Parquet shape.
func convertRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, 0, len(records))
	for _, r := range records {
		row := RunRow{
			ID:           r.ID,
			RunID:        r.RunID,
			ProjectRoot:  r.ProjectRoot,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Score:        int32(r.Score),
			Band:         r.Band,
			TotalMetrics: int32(r.TotalMetrics),
		}
		if r.ConfigParams != "" {
			params := r.ConfigParams
			row.ConfigParams = &params
		}
		rows = append(rows, row)
	}
	return rows
}

// convertMetricRecords maps stored metrics into their Parquet shape.
func convertMetricRecords(records []schema.MetricRecord) []MetricRow {
	rows := make([]MetricRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, MetricRow{
			RunID:      r.RunID,
			MetricID:   r.MetricID,
			Category:   r.Category,
			RawValue:   r.RawValue,
			Score:      r.Score,
			Weight:     r.Weight,
			RecordedAt: r.RecordedAt,
		})
	}
	return rows
}

// writeParquet writes rows to a Parquet file using struct schema inference.
func writeParquet[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// ExportRuns exports the full history to a pair of Parquet files named after
// outputFile.
func ExportRuns(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no score history found to export")
	}

	runs, err := store.RecentRuns(status.TotalRuns)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	var metrics []schema.MetricRecord
	for _, r := range runs {
		rows, err := store.MetricsForRun(r.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve metrics for run %d: %w", r.ID, err)
		}
		metrics = append(metrics, rows...)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := writeParquet(convertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	metricsFile := outputFile + ".metrics.parquet"
	if err := writeParquet(convertMetricRecords(metrics), metricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	fmt.Printf("Exported %d metric rows to: %s\n", len(metrics), metricsFile)

	return nil
}
