package intelligence

import (
	"fmt"
	"math"
	"strings"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// GrahamLens judges the stock on defensive criteria and discount to value.
func GrahamLens(m *models.FinancialMetrics, mosRatio float64) models.InvestmentLens {
	criteria := m.GrahamCriteriaScore

	var verdict, grade string
	switch {
	case criteria >= 5 && mosRatio <= 0.7:
		verdict, grade = "Strong Buy", "A"
	case criteria >= 4 && mosRatio <= 0.85:
		verdict, grade = "Buy", "B"
	case criteria >= 3 && mosRatio <= 1.0:
		verdict, grade = "Hold", "C"
	case criteria >= 2:
		verdict, grade = "Avoid", "D"
	default:
		verdict, grade = "Avoid", "F"
	}

	score := float64(criteria)/7*50 + (1-math.Min(mosRatio, 2)/2)*50

	insight := fmt.Sprintf("Passes %d/7 defensive criteria.", criteria)
	if m.PE.Defined && !m.PE.Infinite {
		if m.PE.Value <= 15 {
			insight += fmt.Sprintf(" P/E of %.1f is attractive.", m.PE.Value)
		} else if m.PE.Value > 25 {
			insight += fmt.Sprintf(" P/E of %.1f is expensive by Graham standards.", m.PE.Value)
		}
	}

	return models.InvestmentLens{
		Philosopher: "Graham",
		Score:       score,
		Grade:       grade,
		KeyMetric:   fmt.Sprintf("Defensive Score: %d/7", criteria),
		Verdict:     verdict,
		Insight:     insight,
	}
}

// BuffettLens judges business economics, quality first.
func BuffettLens(m *models.FinancialMetrics, qualityScore float64) models.InvestmentLens {
	roe := m.ROE.Or(0)
	roic := m.ROIC.Or(0)
	debtToEquity := m.DebtToEquity.Or(1)

	var verdict, grade, insight string
	switch {
	case roe >= 0.15 && roic >= 0.12 && debtToEquity < 0.5:
		verdict = "Quality Business"
		grade = "B"
		if qualityScore >= 75 {
			grade = "A"
		}
		insight = fmt.Sprintf("Excellent economics: ROE %.1f%%, ROIC %.1f%%, manageable debt.", roe*100, roic*100)
	case roe >= 0.12 && roic >= 0.10:
		verdict = "Good Business"
		grade = "C"
		if qualityScore >= 60 {
			grade = "B"
		}
		insight = fmt.Sprintf("Good economics: ROE %.1f%%, ROIC %.1f%%.", roe*100, roic*100)
	default:
		verdict = "Mediocre Business"
		grade = "D"
		if roe >= 0.08 {
			grade = "C"
		}
		insight = fmt.Sprintf("Average economics: ROE %.1f%%. Buffett would want better.", roe*100)
	}

	return models.InvestmentLens{
		Philosopher: "Buffett",
		Score:       qualityScore,
		Grade:       grade,
		KeyMetric:   fmt.Sprintf("ROE: %.1f%%, ROIC: %.1f%%", roe*100, roic*100),
		Verdict:     verdict,
		Insight:     insight,
	}
}

// LynchLens judges price against growth through the PEG ratio.
func LynchLens(m *models.FinancialMetrics) models.InvestmentLens {
	if !m.PEG.Defined || m.PEG.Infinite || m.PEG.Value <= 0 {
		return models.InvestmentLens{
			Philosopher: "Lynch",
			Score:       50,
			Grade:       "C",
			KeyMetric:   "PEG: N/A",
			Verdict:     "Cannot Assess",
			Insight:     "Insufficient data for PEG analysis.",
		}
	}

	peg := m.PEG.Value
	growth := m.EarningsGrowth

	var verdict, grade, insight string
	var score float64
	switch {
	case peg < 0.5:
		verdict, grade, score = "Strong Buy", "A", 95
		insight = fmt.Sprintf("Exceptional PEG of %.2f. Growth of %.1f%% at a bargain price.", peg, growth*100)
	case peg < 1.0:
		verdict, grade, score = "Buy", "B", 80
		insight = fmt.Sprintf("Good PEG of %.2f. Reasonable price for %.1f%% growth.", peg, growth*100)
	case peg < 1.5:
		verdict, grade, score = "Fair", "C", 60
		insight = fmt.Sprintf("PEG of %.2f is fair. Not a bargain, but not overpriced.", peg)
	case peg < 2.0:
		verdict, grade, score = "Expensive", "D", 40
		insight = fmt.Sprintf("PEG of %.2f suggests overvaluation relative to growth.", peg)
	default:
		verdict, grade, score = "Avoid", "F", 20
		insight = fmt.Sprintf("PEG of %.2f is too high. Price doesn't justify growth.", peg)
	}

	return models.InvestmentLens{
		Philosopher: "Lynch",
		Score:       score,
		Grade:       grade,
		KeyMetric:   fmt.Sprintf("PEG: %.2f (%s)", peg, m.LynchCategory),
		Verdict:     verdict,
		Insight:     insight,
	}
}

// GreenblattLens judges the cheap-and-good combination.
func GreenblattLens(m *models.FinancialMetrics) models.InvestmentLens {
	ey := m.EarningsYield.Or(0)
	roc := m.ReturnOnCapital.Or(0)

	var verdict, grade, insight string
	var score float64
	switch {
	case ey >= 0.10 && roc >= 0.20:
		verdict, grade, score = "Magic Formula Buy", "A", 90
		insight = fmt.Sprintf("Good company at a cheap price: %.1f%% earnings yield, %.1f%% return on capital.", ey*100, roc*100)
	case ey >= 0.10:
		verdict, grade, score = "Cheap", "B", 65
		insight = fmt.Sprintf("Cheap at a %.1f%% earnings yield but quality is middling.", ey*100)
	case roc >= 0.20:
		verdict, grade, score = "Quality but Pricey", "C", 55
		insight = fmt.Sprintf("Strong %.1f%% return on capital but the price is not cheap.", roc*100)
	default:
		verdict, grade, score = "Pass", "D", 30
		insight = "Neither cheap nor high quality by magic formula standards."
	}

	return models.InvestmentLens{
		Philosopher: "Greenblatt",
		Score:       score,
		Grade:       grade,
		KeyMetric:   fmt.Sprintf("EY: %.1f%%, ROC: %.1f%%", ey*100, roc*100),
		Verdict:     verdict,
		Insight:     insight,
	}
}

// FisherLens judges growth durability.
func FisherLens(m *models.FinancialMetrics) models.InvestmentLens {
	cagr := m.SalesCAGR
	trend := m.MarginTrend

	var verdict, grade, insight string
	switch {
	case cagr >= 0.15 && trend == "Improving":
		verdict, grade = "Excellent Growth", "A"
		insight = fmt.Sprintf("Strong %.1f%% sales growth with improving margins. Fisher ideal.", cagr*100)
	case cagr >= 0.10:
		verdict, grade = "Good Growth", "B"
		if trend == "Declining" {
			grade = "C"
		}
		insight = fmt.Sprintf("Solid %.1f%% sales growth. Margins are %s.", cagr*100, strings.ToLower(trend))
	case cagr >= 0.05:
		verdict, grade = "Moderate Growth", "C"
		insight = fmt.Sprintf("Moderate %.1f%% growth. Fisher would want more.", cagr*100)
	case cagr > 0:
		verdict, grade = "Slow/No Growth", "D"
		insight = fmt.Sprintf("Minimal growth (%.1f%%). Not a Fisher-style investment.", cagr*100)
	default:
		verdict, grade = "Slow/No Growth", "F"
		insight = fmt.Sprintf("Minimal growth (%.1f%%). Not a Fisher-style investment.", cagr*100)
	}

	return models.InvestmentLens{
		Philosopher: "Fisher",
		Score:       m.GrowthQualityScore,
		Grade:       grade,
		KeyMetric:   fmt.Sprintf("Sales CAGR: %.1f%%", cagr*100),
		Verdict:     verdict,
		Insight:     insight,
	}
}
