package models

import "sort"

// Confidence grades how much weight a valuation or score deserves.
type Confidence string

const (
	ConfidenceHigh        Confidence = "HIGH"
	ConfidenceMedium      Confidence = "MEDIUM"
	ConfidenceLow         Confidence = "LOW"
	ConfidenceSpeculative Confidence = "SPECULATIVE"
)

// Weight returns the blending weight used when combining method base values.
func (c Confidence) Weight() float64 {
	switch c {
	case ConfidenceHigh:
		return 1.5
	case ConfidenceMedium:
		return 1.0
	case ConfidenceLow:
		return 0.5
	default:
		return 0.25
	}
}

// Valuation method names.
const (
	MethodDCF              = "dcf"
	MethodPAD              = "payback_adjusted_dividend"
	MethodEarningsMultiple = "earnings_multiple"
	MethodBookMultiple     = "book_multiple"
	MethodOwnerEarnings    = "owner_earnings"
)

// ValuationRange is one method's per-share scenario triple.
type ValuationRange struct {
	Method       string         `json:"method"`
	Conservative float64        `json:"conservative"`
	Base         float64        `json:"base"`
	Optimistic   float64        `json:"optimistic"`
	Confidence   Confidence     `json:"confidence"`
	Assumptions  map[string]any `json:"assumptions,omitempty"`
}

// NewValuationRange builds a range with the scenario ordering invariant
// conservative <= base <= optimistic enforced by sorting the triple.
func NewValuationRange(method string, conservative, base, optimistic float64, confidence Confidence, assumptions map[string]any) ValuationRange {
	vals := []float64{conservative, base, optimistic}
	sort.Float64s(vals)
	return ValuationRange{
		Method:       method,
		Conservative: vals[0],
		Base:         vals[1],
		Optimistic:   vals[2],
		Confidence:   confidence,
		Assumptions:  assumptions,
	}
}

// RangeWidth is (optimistic - conservative) / base, undefined when base is 0.
func (r ValuationRange) RangeWidth() Ratio {
	return NewRatio(r.Optimistic-r.Conservative, r.Base)
}

// Midpoint of the scenario band.
func (r ValuationRange) Midpoint() float64 {
	return (r.Conservative + r.Optimistic) / 2
}

// MarginOfSafety is price / conservative. Infinite when conservative is not
// positive: the stock has no floor to measure against.
func (r ValuationRange) MarginOfSafety(price float64) Ratio {
	if r.Conservative <= 0 {
		return InfiniteRatio()
	}
	return DefinedRatio(price / r.Conservative)
}

// ValueBand is a bare scenario triple without method metadata.
type ValueBand struct {
	Conservative float64 `json:"conservative"`
	Base         float64 `json:"base"`
	Optimistic   float64 `json:"optimistic"`
}

// CompositeValuationRange blends every applicable method into one band.
type CompositeValuationRange struct {
	Ticker          string           `json:"ticker"`
	Composite       ValueBand        `json:"composite_range"`
	Confidence      Confidence       `json:"confidence"`
	ConfidenceScore float64          `json:"confidence_score"`
	QualityScore    float64          `json:"quality_score"`
	Methods         []ValuationRange `json:"individual_valuations"`
	RangeWidthPct   float64          `json:"range_width_pct"`
}

// MarginOfSafety is price / composite conservative, infinite when the
// conservative floor is not positive.
func (c CompositeValuationRange) MarginOfSafety(price float64) Ratio {
	if c.Composite.Conservative <= 0 {
		return InfiniteRatio()
	}
	return DefinedRatio(price / c.Composite.Conservative)
}

// BuyBelowPrice is the conservative floor discounted by the required
// margin of safety.
func (c CompositeValuationRange) BuyBelowPrice(requiredMoS float64) float64 {
	return c.Composite.Conservative * requiredMoS
}

// MethodCount reports how many estimators produced a usable range.
func (c CompositeValuationRange) MethodCount() int {
	return len(c.Methods)
}
