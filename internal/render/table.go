package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"golang.org/x/term"
)

// writeReportTable generates and writes the human-readable score table.
func writeReportTable(w io.Writer, report *schema.Report, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Title", "Value", "Unit", "Score"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxTitleWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	for _, m := range report.Metrics {
		score := "-"
		if m.Score != nil {
			score = fmtFloat(*m.Score)
		}
		data = append(data, []string{
			m.ID,
			contract.TruncateMiddle(m.Title, maxTitleWidth),
			core.EncodeValue(m.Value),
			m.Unit,
			score,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	band := schema.BandForScore(report.NormalizedScore)
	label := band.Label()
	if cfg.UseColors {
		label = contract.GetColorBandLabel(band)
	}
	if _, err := fmt.Fprintf(w, "Health score: %d/100 (%s)\n", report.Score, label); err != nil {
		return err
	}
	if len(report.ProjectTypes) > 0 {
		if _, err := fmt.Fprintf(w, "Project types: %v\n", report.ProjectTypes); err != nil {
			return err
		}
	}

	for _, d := range report.Diagnostics {
		line := fmt.Sprintf("[%s] %s", d.Level, d.Message)
		if d.Hint != "" {
			line += " (" + d.Hint + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeReportCSV writes one row per metric plus the report summary row.
func writeReportCSV(w io.Writer, report *schema.Report, fmtFloat func(float64) string) error {
	header := []string{"id", "title", "category", "value", "unit", "score"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, m := range report.Metrics {
			score := ""
			if m.Score != nil {
				score = fmtFloat(*m.Score)
			}
			row := []string{
				m.ID,
				m.Title,
				string(m.Category),
				core.EncodeValue(m.Value),
				m.Unit,
				score,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		summary := []string{
			"total", "Health score", "", strconv.Itoa(report.Score), "points", report.Band,
		}
		return csvWriter.Write(summary)
	})
}

// getMaxTableTitleWidth calculates the maximum width for metric titles in
// table output based on terminal width.
func getMaxTableTitleWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (id, value, unit, score) plus
	// borders and padding.
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
