package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBandForScore checks the fixed band boundaries, including edge values.
func TestBandForScore(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected ScoreBand
	}{
		{"perfect", 1.0, ExcellentBand},
		{"excellent lower bound", 0.80, ExcellentBand},
		{"just under excellent", 0.7999999, GoodBand},
		{"good lower bound", 0.60, GoodBand},
		{"fair lower bound", 0.40, FairBand},
		{"just under fair", 0.3999999, PoorBand},
		{"zero", 0.0, PoorBand},
		{"negative clamps to poor", -1.0, PoorBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BandForScore(tt.score))
		})
	}
}

// TestBandLabelsAndBounds pins the label and bound tables.
func TestBandLabelsAndBounds(t *testing.T) {
	assert.Equal(t, "Excellent", ExcellentBand.Label())
	assert.Equal(t, "Good", GoodBand.Label())
	assert.Equal(t, "Fair", FairBand.Label())
	assert.Equal(t, "Poor", PoorBand.Label())

	assert.Equal(t, 0.80, ExcellentBand.Bound())
	assert.Equal(t, 0.60, GoodBand.Bound())
	assert.Equal(t, 0.40, FairBand.Bound())
	assert.Equal(t, 0.0, PoorBand.Bound())

	// Total order by bound, best first.
	assert.True(t, ExcellentBand.Bound() > GoodBand.Bound())
	assert.True(t, GoodBand.Bound() > FairBand.Bound())
	assert.True(t, FairBand.Bound() > PoorBand.Bound())
}
