// Package metrics extracts fundamental metrics and fitted trends from
// financial statements.
package metrics

import "math"

// TrendFit is the result of a weighted linear fit over an annual series.
type TrendFit struct {
	Slope     float64
	Intercept float64
	Mean      float64
	// Growth is slope normalised by the series mean. Zero when the
	// series has fewer than two points or a zero mean.
	Growth float64
	Points int
}

// FitWeightedTrend fits a weighted least-squares line through an
// oldest-first annual series. Weights are decayRate^i by position, so the
// most recent year carries the most weight when decayRate > 1. A series
// with fewer than two points yields a flat fit at its own value.
func FitWeightedTrend(series []float64, decayRate float64) TrendFit {
	n := len(series)
	if n == 0 {
		return TrendFit{}
	}
	if n == 1 {
		return TrendFit{Intercept: series[0], Mean: series[0], Points: 1}
	}
	if decayRate <= 0 {
		decayRate = 1
	}

	var sw, swx, swy, swxx, swxy float64
	for i, y := range series {
		w := math.Pow(decayRate, float64(i))
		x := float64(i)
		sw += w
		swx += w * x
		swy += w * y
		swxx += w * x * x
		swxy += w * x * y
	}

	denom := sw*swxx - swx*swx
	fit := TrendFit{Points: n}
	for _, y := range series {
		fit.Mean += y
	}
	fit.Mean /= float64(n)

	if denom == 0 {
		fit.Intercept = swy / sw
		return fit
	}

	fit.Slope = (sw*swxy - swx*swy) / denom
	fit.Intercept = (swy - fit.Slope*swx) / sw
	if fit.Mean != 0 {
		fit.Growth = fit.Slope / fit.Mean
	}
	return fit
}

// Project extrapolates the fitted line for years beyond the series end.
// With fewer than two points the projection is flat at the series value.
func (f TrendFit) Project(years int) []float64 {
	if years <= 0 {
		return nil
	}
	out := make([]float64, years)
	if f.Points < 2 {
		for i := range out {
			out[i] = f.Intercept
		}
		return out
	}
	last := float64(f.Points - 1)
	for i := range out {
		out[i] = f.Intercept + f.Slope*(last+float64(i+1))
	}
	return out
}

// CAGR is the compound annual growth rate between two positive endpoints.
func CAGR(start, end float64, years int) float64 {
	if start <= 0 || end <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(end/start, 1/float64(years)) - 1
}

// SeriesCAGR is CAGR over an oldest-first series, using its endpoints.
func SeriesCAGR(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	return CAGR(series[0], series[len(series)-1], len(series)-1)
}

// GrowthConsistency scores year-over-year growth stability in [0, 1].
// It is 1 minus the coefficient of variation of YoY growth, floored at 0.
func GrowthConsistency(series []float64) float64 {
	if len(series) < 3 {
		return 0
	}
	var growths []float64
	for i := 1; i < len(series); i++ {
		if series[i-1] == 0 {
			continue
		}
		growths = append(growths, (series[i]-series[i-1])/series[i-1])
	}
	if len(growths) < 2 {
		return 0
	}

	var mean float64
	for _, g := range growths {
		mean += g
	}
	mean /= float64(len(growths))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, g := range growths {
		d := g - mean
		variance += d * d
	}
	variance /= float64(len(growths))
	cv := math.Sqrt(variance) / math.Abs(mean)
	return math.Max(0, 1-cv)
}
