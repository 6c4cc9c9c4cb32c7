package render

import (
	"encoding/csv"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// MetricDefinition is one row of the metric catalog, with the effective
// weight after the sharing rule is applied.
type MetricDefinition struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Scored bool    `json:"scored"`
}

// BuildMetricDefinitions derives the metric catalog from the registered
// normalizers and the configured weights.
func BuildMetricDefinitions(health *contract.HealthConfig) []MetricDefinition {
	ids := core.RegisteredMetricIDs()
	defs := make([]MetricDefinition, 0, len(ids))
	for _, id := range ids {
		w := core.WeightFor(id, health.Weights)
		defs = append(defs, MetricDefinition{ID: id, Weight: w, Scored: w > 0})
	}
	return defs
}

// WriteMetricDefinitions outputs the metric catalog in the configured format.
func WriteMetricDefinitions(cfg *contract.Config) error {
	defs := BuildMetricDefinitions(cfg.Health)
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"id", "weight", "scored"}, func(csvWriter *csv.Writer) error {
				for _, d := range defs {
					row := []string{d.ID, fmtFloat(d.Weight), boolWord(d.Scored)}
					if err := csvWriter.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricDefinitionsTable(w, defs, fmtFloat)
		}, "Wrote table")
	}
}

func writeMetricDefinitionsTable(w io.Writer, defs []MetricDefinition, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Weight", "Scored"})

	var data [][]string
	for _, d := range defs {
		data = append(data, []string{d.ID, fmtFloat(d.Weight), boolWord(d.Scored)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
