package schema

// ScoreBand is a discrete quality label derived from the final normalized score.
// Bands are totally ordered by their lower bound.
type ScoreBand int

// All score bands, best first.
const (
	ExcellentBand ScoreBand = iota
	GoodBand
	FairBand
	PoorBand
)

// bandBound pairs a band with its inclusive lower bound on the normalized score.
type bandBound struct {
	band  ScoreBand
	bound float64
	label string
}

// bandBounds is ordered from best to worst; classification walks it top down.
var bandBounds = []bandBound{
	{ExcellentBand, 0.80, "Excellent"},
	{GoodBand, 0.60, "Good"},
	{FairBand, 0.40, "Fair"},
	{PoorBand, 0.0, "Poor"},
}

// Label returns the human-readable name of the band.
func (b ScoreBand) Label() string {
	for _, bb := range bandBounds {
		if bb.band == b {
			return bb.label
		}
	}
	return "Poor"
}

// Bound returns the inclusive lower bound of the band on the normalized score.
func (b ScoreBand) Bound() float64 {
	for _, bb := range bandBounds {
		if bb.band == b {
			return bb.bound
		}
	}
	return 0.0
}

// BandForScore classifies a normalized score into a ScoreBand.
// Total over all float inputs; anything below the Fair bound is Poor.
func BandForScore(score float64) ScoreBand {
	for _, bb := range bandBounds[:len(bandBounds)-1] {
		if score >= bb.bound {
			return bb.band
		}
	}
	return PoorBand
}
