package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// WriteRunHistory outputs recent runs in the configured format.
func WriteRunHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"run_id", "project_root", "start_time", "score", "band", "metrics"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, r := range runs {
					row := []string{
						r.RunID,
						r.ProjectRoot,
						r.StartTime.Format(time.RFC3339),
						strconv.Itoa(r.Score),
						r.Band,
						strconv.Itoa(r.TotalMetrics),
					}
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunHistoryTable(w, runs, cfg)
		}, "Wrote table")
	}
}

func writeRunHistoryTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"When", "Project", "Score", "Band", "Metrics"})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			r.StartTime.Local().Format(historyTimeFormat),
			contract.TruncateMiddle(r.ProjectRoot, 40),
			strconv.Itoa(r.Score),
			r.Band,
			strconv.Itoa(r.TotalMetrics),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(runs))
	return err
}

// WriteHistoryStatus prints the history store status summary.
func WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend:       %s\n", status.Backend)
		fmt.Fprintf(w, "Connected:     %t\n", status.Connected)
		fmt.Fprintf(w, "Total runs:    %d\n", status.TotalRuns)
		fmt.Fprintf(w, "Total metrics: %d\n", status.TotalMetrics)
		if !status.LastRunTime.IsZero() {
			fmt.Fprintf(w, "Last run:      %s\n", status.LastRunTime.Local().Format(historyTimeFormat))
		}
		if !status.OldestRunTime.IsZero() {
			fmt.Fprintf(w, "Oldest run:    %s\n", status.OldestRunTime.Local().Format(historyTimeFormat))
		}
		if status.TableSizeBytes > 0 {
			fmt.Fprintf(w, "Storage size:  %d bytes\n", status.TableSizeBytes)
		}
		return nil
	}, "Wrote status")
}
