package metrics

import "math"

const (
	gaugeMinFraction    = 0.5
	lowBoundaryFraction = 0.75
	midBoundaryFraction = 0.90
)

// BandSpan is one colored section of the gauge axis, in gauge units
type BandSpan struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// GaugeDomain is the numeric domain and color-band layout of one gauge. LowBoundary and MidBoundary
// are the floored label values; Bands carries the exact band edges computed over the Min..Max span.
// The two coincide only for targets where the floored fractions land on the span fractions.
type GaugeDomain struct {
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	LowBoundary float64     `json:"lowBoundary"`
	MidBoundary float64     `json:"midBoundary"`
	Bands       [3]BandSpan `json:"bands"`
}

// Domain computes the gauge domain for a resolved target. A zero (or negative) target collapses the
// span; the gauge is then flat and all bands degenerate to a point instead of dividing by zero.
func Domain(target float64) GaugeDomain {
	domain := GaugeDomain{
		Min:         math.Floor(target * gaugeMinFraction),
		Max:         target,
		LowBoundary: math.Floor(target * lowBoundaryFraction),
		MidBoundary: math.Floor(target * midBoundaryFraction),
	}

	span := domain.Max - domain.Min
	if span <= 0 {
		flat := BandSpan{From: domain.Min, To: domain.Min}
		domain.Bands = [3]BandSpan{flat, flat, flat}
		return domain
	}

	lowEdge := domain.Min + span*lowBoundaryFraction
	midEdge := domain.Min + span*midBoundaryFraction
	domain.Bands = [3]BandSpan{
		{From: domain.Min, To: lowEdge},
		{From: lowEdge, To: midEdge},
		{From: midEdge, To: domain.Max},
	}

	return domain
}

// IsFlat returns true when the domain carries no span to render
func (domain GaugeDomain) IsFlat() bool {
	return domain.Max-domain.Min <= 0
}

// Labels returns the axis label values in display order: the domain minimum, the two floored
// boundaries and the target itself
func (domain GaugeDomain) Labels() []float64 {
	return []float64{domain.Min, domain.LowBoundary, domain.MidBoundary, domain.Max}
}
