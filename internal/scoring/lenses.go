// Package scoring grades a ticker 0-100 through five classic investing
// lenses and blends them by style.
package scoring

import (
	"fmt"
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// GrahamScore rewards defensive-criteria compliance, discount to the
// Graham number, and cheap P/E and P/B multiples.
func GrahamScore(m *models.FinancialMetrics) models.ComponentScore {
	var score float64
	parts := make(map[string]float64)
	details := make(map[string]string)

	criteria := float64(m.GrahamCriteriaScore) / 7 * 40
	score += criteria
	parts["criteria"] = criteria
	details["criteria"] = fmt.Sprintf("%d/7 criteria passed", m.GrahamCriteriaScore)

	if m.GrahamMoS.Defined && !m.GrahamMoS.Infinite && m.GrahamMoS.Value > 0 {
		mos := m.GrahamMoS.Value
		var mosScore float64
		switch {
		case mos < 0.5:
			mosScore = 30
		case mos < 0.75:
			mosScore = 25
		case mos < 1.0:
			mosScore = 15
		default:
			mosScore = math.Max(0, 30-(mos-1)*15)
		}
		score += mosScore
		parts["graham_mos"] = mosScore
		details["graham_mos"] = fmt.Sprintf("%.2f", mos)
	}

	if m.PE.Defined && !m.PE.Infinite && m.PE.Value > 0 {
		pe := m.PE.Value
		var peScore float64
		switch {
		case pe <= 10:
			peScore = 15
		case pe <= 15:
			peScore = 12
		case pe <= 20:
			peScore = 8
		case pe <= 25:
			peScore = 4
		}
		score += peScore
		parts["pe"] = peScore
		details["pe"] = fmt.Sprintf("%.1f", pe)
	}

	if m.PB.Defined && !m.PB.Infinite && m.PB.Value > 0 {
		pb := m.PB.Value
		var pbScore float64
		switch {
		case pb <= 1.0:
			pbScore = 15
		case pb <= 1.5:
			pbScore = 12
		case pb <= 2.0:
			pbScore = 8
		case pb <= 3.0:
			pbScore = 4
		}
		score += pbScore
		parts["pb"] = pbScore
		details["pb"] = fmt.Sprintf("%.2f", pb)
	}

	return models.ComponentScore{
		Lens:    models.LensGraham,
		Score:   math.Min(100, score),
		Parts:   parts,
		Details: details,
	}
}

// BuffettScore rewards returns on equity and capital, low leverage,
// comfortable interest coverage, and a high owner earnings yield.
func BuffettScore(m *models.FinancialMetrics) models.ComponentScore {
	var score float64
	parts := make(map[string]float64)
	details := make(map[string]string)

	if m.ROE.Defined {
		roe := m.ROE.Value
		var roeScore float64
		switch {
		case roe >= 0.20:
			roeScore = 25
		case roe >= 0.15:
			roeScore = 20
		case roe >= 0.10:
			roeScore = 12
		case roe >= 0.05:
			roeScore = 5
		}
		score += roeScore
		parts["roe"] = roeScore
		details["roe"] = fmt.Sprintf("%.1f%%", roe*100)
	}

	if m.ROIC.Defined {
		roic := m.ROIC.Value
		var roicScore float64
		switch {
		case roic >= 0.20:
			roicScore = 25
		case roic >= 0.15:
			roicScore = 20
		case roic >= 0.10:
			roicScore = 15
		case roic >= 0.05:
			roicScore = 8
		}
		score += roicScore
		parts["roic"] = roicScore
		details["roic"] = fmt.Sprintf("%.1f%%", roic*100)
	}

	if m.DebtToEquity.Defined && !m.DebtToEquity.Infinite {
		de := m.DebtToEquity.Value
		var deScore float64
		switch {
		case de <= 0.3:
			deScore = 20
		case de <= 0.5:
			deScore = 15
		case de <= 1.0:
			deScore = 10
		case de <= 2.0:
			deScore = 5
		}
		score += deScore
		parts["debt_to_equity"] = deScore
		details["debt_to_equity"] = fmt.Sprintf("%.2f", de)
	}

	// Infinite coverage means no interest burden at all.
	if m.InterestCoverage.Defined || m.InterestCoverage.Infinite {
		var icScore float64
		if m.InterestCoverage.Infinite {
			icScore = 15
			details["interest_coverage"] = "no interest burden"
		} else {
			ic := m.InterestCoverage.Value
			switch {
			case ic >= 10:
				icScore = 15
			case ic >= 5:
				icScore = 12
			case ic >= 3:
				icScore = 8
			case ic >= 1.5:
				icScore = 4
			}
			details["interest_coverage"] = fmt.Sprintf("%.1fx", ic)
		}
		score += icScore
		parts["interest_coverage"] = icScore
	}

	if m.OwnerEarningsYield.Defined && !m.OwnerEarningsYield.Infinite {
		oey := m.OwnerEarningsYield.Value
		var oeyScore float64
		switch {
		case oey >= 0.10:
			oeyScore = 15
		case oey >= 0.07:
			oeyScore = 12
		case oey >= 0.05:
			oeyScore = 8
		case oey >= 0.03:
			oeyScore = 4
		}
		score += oeyScore
		parts["owner_earnings_yield"] = oeyScore
		details["owner_earnings_yield"] = fmt.Sprintf("%.1f%%", oey*100)
	}

	return models.ComponentScore{
		Lens:    models.LensBuffett,
		Score:   math.Min(100, score),
		Parts:   parts,
		Details: details,
	}
}

// LynchScore leans on the PEG ratio, the growth rate itself, and the net
// cash cushion relative to price.
func LynchScore(m *models.FinancialMetrics) models.ComponentScore {
	var score float64
	parts := make(map[string]float64)
	details := make(map[string]string)

	if m.PEG.Defined && !m.PEG.Infinite && m.PEG.Value > 0 {
		peg := m.PEG.Value
		var pegScore float64
		switch {
		case peg < 0.5:
			pegScore = 50
		case peg < 1.0:
			pegScore = 40
		case peg < 1.5:
			pegScore = 25
		case peg < 2.0:
			pegScore = 10
		}
		score += pegScore
		parts["peg"] = pegScore
		details["peg"] = fmt.Sprintf("%.2f", peg)
	}

	growth := m.EarningsGrowth
	var growthScore float64
	switch {
	case growth >= 0.20:
		growthScore = 30
	case growth >= 0.15:
		growthScore = 25
	case growth >= 0.10:
		growthScore = 18
	case growth >= 0.05:
		growthScore = 10
	}
	score += growthScore
	parts["growth"] = growthScore
	details["growth"] = fmt.Sprintf("%.1f%%", growth*100)

	if m.CurrentPrice > 0 {
		cashPct := m.NetCashPerShare / m.CurrentPrice
		var cashScore float64
		switch {
		case cashPct > 0.3:
			cashScore = 20
		case cashPct > 0.1:
			cashScore = 15
		case cashPct > 0:
			cashScore = 10
		case cashPct > -0.2:
			cashScore = 5
		}
		score += cashScore
		parts["net_cash"] = cashScore
		details["net_cash"] = fmt.Sprintf("%.1f%% of price", cashPct*100)
	}

	return models.ComponentScore{
		Lens:    models.LensLynch,
		Score:   math.Min(100, score),
		Parts:   parts,
		Details: details,
	}
}

// GreenblattScore uses the magic formula percentile when the ticker was
// ranked in a universe, otherwise bands earnings yield and return on
// capital directly.
func GreenblattScore(m *models.FinancialMetrics) models.ComponentScore {
	parts := make(map[string]float64)
	details := make(map[string]string)

	if m.MagicFormulaPercentile.Defined && !m.MagicFormulaPercentile.Infinite {
		pct := m.MagicFormulaPercentile.Value
		details["magic_formula_percentile"] = fmt.Sprintf("%.0f%%", pct)
		return models.ComponentScore{
			Lens:    models.LensGreenblatt,
			Score:   math.Min(100, pct),
			Parts:   map[string]float64{"percentile": pct},
			Details: details,
		}
	}

	var score float64
	if m.EarningsYield.Defined && !m.EarningsYield.Infinite {
		ey := m.EarningsYield.Value
		var eyScore float64
		switch {
		case ey >= 0.15:
			eyScore = 50
		case ey >= 0.10:
			eyScore = 40
		case ey >= 0.07:
			eyScore = 28
		case ey >= 0.05:
			eyScore = 18
		}
		score += eyScore
		parts["earnings_yield"] = eyScore
		details["earnings_yield"] = fmt.Sprintf("%.1f%%", ey*100)
	}

	if m.ReturnOnCapital.Defined && !m.ReturnOnCapital.Infinite {
		roc := m.ReturnOnCapital.Value
		var rocScore float64
		switch {
		case roc >= 0.30:
			rocScore = 50
		case roc >= 0.20:
			rocScore = 40
		case roc >= 0.15:
			rocScore = 30
		case roc >= 0.10:
			rocScore = 20
		}
		score += rocScore
		parts["return_on_capital"] = rocScore
		details["return_on_capital"] = fmt.Sprintf("%.1f%%", roc*100)
	}

	return models.ComponentScore{
		Lens:    models.LensGreenblatt,
		Score:   math.Min(100, score),
		Parts:   parts,
		Details: details,
	}
}

// FisherScore uses the blended growth quality score when present, falling
// back to banded sales CAGR plus the margin trend.
func FisherScore(m *models.FinancialMetrics) models.ComponentScore {
	details := map[string]string{
		"sales_cagr":   fmt.Sprintf("%.1f%%", m.SalesCAGR*100),
		"margin_trend": m.MarginTrend,
	}

	if m.GrowthQualityScore > 0 {
		return models.ComponentScore{
			Lens:    models.LensFisher,
			Score:   math.Min(100, m.GrowthQualityScore),
			Parts:   map[string]float64{"growth_quality": m.GrowthQualityScore},
			Details: details,
		}
	}

	var score float64
	parts := make(map[string]float64)

	var cagrScore float64
	switch {
	case m.SalesCAGR >= 0.20:
		cagrScore = 50
	case m.SalesCAGR >= 0.15:
		cagrScore = 40
	case m.SalesCAGR >= 0.10:
		cagrScore = 30
	case m.SalesCAGR >= 0.05:
		cagrScore = 18
	}
	score += cagrScore
	parts["sales_cagr"] = cagrScore

	trendScore := 25 + m.MarginTrendScore*25
	score += trendScore
	parts["margin_trend"] = trendScore

	return models.ComponentScore{
		Lens:    models.LensFisher,
		Score:   math.Min(100, math.Max(0, score)),
		Parts:   parts,
		Details: details,
	}
}
