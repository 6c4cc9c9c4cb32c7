// Package schema has models, constants and pure lookup tables for all parts of repopulse.
package schema

import (
	"errors"
	"fmt"
	"time"
)

// MetricValue is a closed tagged union for a single raw measurement.
// Exactly one payload field is meaningful, selected by Kind. Consumers must
// switch on Kind and treat an unexpected variant as "not normalizable",
// never as a fatal error.
type MetricValue struct {
	Kind     ValueKind
	Number   float64 // valid when Kind == NumberKind
	Count    int64   // valid when Kind == CountKind
	Label    string  // valid when Kind == LabelKind
	Ratio    float64 // valid when Kind == RatioKind, in [0,1]
	Duration float64 // valid when Kind == DurationKind, in seconds
}

// NumberValue wraps a float measurement.
func NumberValue(v float64) MetricValue { return MetricValue{Kind: NumberKind, Number: v} }

// CountValue wraps an integer measurement.
func CountValue(v int64) MetricValue { return MetricValue{Kind: CountKind, Count: v} }

// LabelValue wraps a string measurement.
func LabelValue(v string) MetricValue { return MetricValue{Kind: LabelKind, Label: v} }

// RatioValue wraps a unit-interval measurement.
func RatioValue(v float64) MetricValue { return MetricValue{Kind: RatioKind, Ratio: v} }

// DurationValue wraps a measurement in seconds.
func DurationValue(seconds float64) MetricValue {
	return MetricValue{Kind: DurationKind, Duration: seconds}
}

// AsNumber returns the numeric payload and whether the variant matched.
func (v MetricValue) AsNumber() (float64, bool) {
	return v.Number, v.Kind == NumberKind
}

// AsCount returns the count payload and whether the variant matched.
func (v MetricValue) AsCount() (int64, bool) {
	return v.Count, v.Kind == CountKind
}

// AsLabel returns the label payload and whether the variant matched.
func (v MetricValue) AsLabel() (string, bool) {
	return v.Label, v.Kind == LabelKind
}

// AsRatio returns the ratio payload and whether the variant matched.
func (v MetricValue) AsRatio() (float64, bool) {
	return v.Ratio, v.Kind == RatioKind
}

// AsDuration returns the duration payload in seconds and whether the variant matched.
func (v MetricValue) AsDuration() (float64, bool) {
	return v.Duration, v.Kind == DurationKind
}

// Metric is a single named, typed measurement of project state.
// Score is nil until the engine assigns it; once set it lies in [0,1].
// Metric producers never populate Score.
type Metric struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Category MetricCategory    `json:"category"`
	Value    MetricValue       `json:"value"`
	Unit     string            `json:"unit,omitempty"`
	Score    *float64          `json:"score,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// WithScore returns a copy of the metric with the given normalized score attached.
// The receiver is left untouched so analyzer output stays immutable.
func (m Metric) WithScore(score float64) Metric {
	enriched := m
	enriched.Score = &score
	if m.Details != nil {
		enriched.Details = make(map[string]string, len(m.Details))
		for k, v := range m.Details {
			enriched.Details[k] = v
		}
	}
	return enriched
}

// Validate reports whether a produced metric is well formed enough to score:
// a non-empty id and a known category.
func (m Metric) Validate() error {
	if m.ID == "" {
		return errors.New("metric id is empty")
	}
	if _, ok := ValidCategories[m.Category]; !ok {
		return fmt.Errorf("unknown metric category %q", m.Category)
	}
	return nil
}

// Diagnostic is a severity-leveled advisory note from the measurement process.
// Diagnostics are carried through to the report, never mutated or interpreted.
type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
	Hint    string          `json:"hint,omitempty"`
}

// Report is the full payload handed to rendering and persistence collaborators.
type Report struct {
	Tool            string       `json:"tool"`
	ToolVersion     string       `json:"tool_version"`
	RunID           string       `json:"run_id"`
	ProjectRoot     string       `json:"project_root"`
	ProjectTypes    []string     `json:"project_types,omitempty"`
	Metrics         []Metric     `json:"metrics"`
	Score           int          `json:"score"`
	NormalizedScore float64      `json:"normalized_score"`
	Band            string       `json:"band"`
	Diagnostics     []Diagnostic `json:"diagnostics,omitempty"`
	GeneratedAt     time.Time    `json:"generated_at"`
}
