package metrics

import "math"

// Margin trend labels.
const (
	TrendImproving = "Improving"
	TrendStable    = "Stable"
	TrendDeclining = "Declining"
	TrendUnknown   = "Unknown"
)

// MarginTrend fits a line through an oldest-first margin series and labels
// the direction. The slope is normalised by the absolute mean margin; a
// move above 5% per year relative to the mean counts as a real trend. The
// score is the normalised slope scaled by 5 and clamped to [-1, 1].
func MarginTrend(margins []float64) (string, float64) {
	if len(margins) < 2 {
		return TrendUnknown, 0
	}

	fit := FitWeightedTrend(margins, 1) // unweighted fit
	if fit.Mean == 0 {
		return TrendStable, 0
	}
	normalized := fit.Slope / math.Abs(fit.Mean)

	switch {
	case normalized > 0.05:
		return TrendImproving, math.Min(1, normalized*5)
	case normalized < -0.05:
		return TrendDeclining, math.Max(-1, normalized*5)
	default:
		return TrendStable, 0
	}
}

// ReinvestmentEfficiency is earnings growth per unit of retained earnings.
func ReinvestmentEfficiency(earningsGrowth, retentionRatio float64) float64 {
	if retentionRatio <= 0 {
		return 0
	}
	return earningsGrowth / retentionRatio
}

// SustainableGrowthRate is ROE times the retention ratio, the fastest a
// company can grow without outside financing.
func SustainableGrowthRate(roe, retentionRatio float64) float64 {
	return roe * retentionRatio
}

// RetentionRatio averages 1 - payout over paired oldest-first dividend and
// net income series, skipping loss years. Defaults to 0.5 with no usable
// pairs, clamped to [0, 1].
func RetentionRatio(dividends, netIncome []float64) float64 {
	n := len(dividends)
	if len(netIncome) < n {
		n = len(netIncome)
	}
	var sum float64
	count := 0
	for i := 0; i < n; i++ {
		if netIncome[i] <= 0 {
			continue
		}
		payout := dividends[i] / netIncome[i]
		if payout < 0 {
			payout = 0
		}
		if payout > 1 {
			payout = 1
		}
		sum += payout
		count++
	}
	if count == 0 {
		return 0.5
	}
	return 1 - sum/float64(count)
}

// GrowthQualityScore blends sales growth (40 points, 20% CAGR for full
// marks), margin trend (30 points centred at 15), growth consistency
// (20 points) and an ROE bonus (10 points, 20% ROE for full marks).
func GrowthQualityScore(salesCAGR, marginTrendScore, growthConsistency, roe float64) float64 {
	score := math.Min(40, math.Max(0, salesCAGR*200))
	score += 15 + marginTrendScore*15
	score += growthConsistency * 20
	if roe > 0 {
		score += math.Min(10, roe*50)
	}
	return math.Min(100, math.Max(0, score))
}
