package valuation

import (
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Valuate runs every method that has inputs and triangulates the results.
func (e *Engine) Valuate(m *models.FinancialMetrics, qualityScore float64) models.CompositeValuationRange {
	var ranges []models.ValuationRange

	if r, ok := e.DCFRange(m); ok {
		ranges = append(ranges, r)
	}
	if r, ok := e.PADRange(m); ok {
		ranges = append(ranges, r)
	}
	if r, ok := e.EarningsRange(m, qualityScore); ok {
		ranges = append(ranges, r)
	}
	if r, ok := e.BookRange(m, qualityScore); ok {
		ranges = append(ranges, r)
	}
	if r, ok := e.OwnerEarningsRange(m); ok {
		ranges = append(ranges, r)
	}

	composite := e.Compose(m.Ticker, ranges, qualityScore)
	if e.logger != nil {
		e.logger.Debug().
			Str("ticker", m.Ticker).
			Int("methods", len(ranges)).
			Str("confidence", string(composite.Confidence)).
			Float64("base", composite.Composite.Base).
			Msg("valuation composed")
	}
	return composite
}

// Compose triangulates method ranges into one band. The conservative end
// is the lowest method floor, the base a confidence-weighted mean, the
// optimistic end a plain mean so one exuberant method cannot anchor it.
// Quality then clamps how far the band may stray from base.
func (e *Engine) Compose(ticker string, ranges []models.ValuationRange, qualityScore float64) models.CompositeValuationRange {
	composite := models.CompositeValuationRange{
		Ticker:       ticker,
		Confidence:   models.ConfidenceSpeculative,
		QualityScore: qualityScore,
		Methods:      ranges,
	}

	var valid []models.ValuationRange
	for _, r := range ranges {
		if r.Conservative > 0 && r.Base > 0 {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return composite
	}

	conservative := valid[0].Conservative
	var weightedBase, totalWeight, optimisticSum float64
	for _, r := range valid {
		if r.Conservative < conservative {
			conservative = r.Conservative
		}
		w := r.Confidence.Weight()
		weightedBase += r.Base * w
		totalWeight += w
		optimisticSum += r.Optimistic
	}
	base := weightedBase / totalWeight
	optimistic := optimisticSum / float64(len(valid))

	// Predictable businesses get a narrow band, shaky ones a wide one.
	uncertainty := uncertaintyFactor(qualityScore)
	if floor := base * (1 - uncertainty); conservative > floor {
		conservative = floor
	}
	if ceiling := base * (1 + uncertainty); optimistic > ceiling {
		optimistic = ceiling
	}

	composite.Composite = models.ValueBand{
		Conservative: conservative,
		Base:         base,
		Optimistic:   optimistic,
	}
	if base > 0 {
		composite.RangeWidthPct = models.Round((optimistic-conservative)/base*100, 1)
	}

	composite.ConfidenceScore = confidenceScore(ranges, qualityScore)
	composite.Confidence = confidenceTier(composite.ConfidenceScore)
	return composite
}

func uncertaintyFactor(qualityScore float64) float64 {
	switch {
	case qualityScore >= 80:
		return 0.15
	case qualityScore >= 60:
		return 0.25
	case qualityScore >= 40:
		return 0.35
	default:
		return 0.50
	}
}

// confidenceScore rewards method agreement, business quality, and the
// number of methods that produced a range.
func confidenceScore(ranges []models.ValuationRange, qualityScore float64) float64 {
	var bases []float64
	for _, r := range ranges {
		if r.Base > 0 {
			bases = append(bases, r.Base)
		}
	}

	cv := 0.5
	if len(bases) >= 2 {
		var mean float64
		for _, b := range bases {
			mean += b
		}
		mean /= float64(len(bases))
		if mean > 0 {
			var variance float64
			for _, b := range bases {
				d := b - mean
				variance += d * d
			}
			variance /= float64(len(bases))
			cv = math.Sqrt(variance) / mean
		} else {
			cv = 1
		}
	}

	var score float64
	switch {
	case cv < 0.2:
		score += 40
	case cv < 0.4:
		score += 25
	case cv < 0.6:
		score += 10
	}
	score += qualityScore * 0.4
	score += min20(float64(len(ranges)) * 5)
	return score
}

func confidenceTier(score float64) models.Confidence {
	switch {
	case score >= 70:
		return models.ConfidenceHigh
	case score >= 50:
		return models.ConfidenceMedium
	case score >= 30:
		return models.ConfidenceLow
	default:
		return models.ConfidenceSpeculative
	}
}

func min20(v float64) float64 {
	if v > 20 {
		return 20
	}
	return v
}
