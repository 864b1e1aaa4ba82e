// Package valuation builds per-method intrinsic value ranges and blends
// them into a composite band.
package valuation

import (
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Engine runs every applicable valuation method for a ticker.
type Engine struct {
	config *common.AnalysisConfig
	logger *common.Logger
}

// NewEngine creates a valuation engine.
func NewEngine(config *common.AnalysisConfig, logger *common.Logger) *Engine {
	return &Engine{config: config, logger: logger}
}

// dcfValue discounts n years of growing cash flow plus a terminal value.
// The terminal value is zero when the discount rate does not exceed
// terminal growth.
func dcfValue(cf, g, r, tg float64, n int, shares float64) float64 {
	if shares <= 0 {
		return 0
	}
	var value float64
	for i := 1; i <= n; i++ {
		value += cf * math.Pow(1+g, float64(i)) / math.Pow(1+r, float64(i))
	}
	if r > tg {
		terminal := cf * math.Pow(1+g, float64(n)) * (1 + tg) / (r - tg)
		value += terminal / math.Pow(1+r, float64(n))
	}
	return value / shares
}

// DCFRange values discounted cash flows under three scenarios. The
// conservative case trims cash flow 10%, growth 30%, terminal growth 20%
// and adds 2% of discount; the optimistic case moves each the other way.
func (e *Engine) DCFRange(m *models.FinancialMetrics) (models.ValuationRange, bool) {
	if m.FreeCashFlow <= 0 || m.SharesOutstanding <= 0 {
		return models.ValuationRange{}, false
	}

	cf := m.FreeCashFlow
	g := m.EarningsGrowth
	r := e.config.DiscountRate
	tg := e.config.TerminalGrowth
	n := e.config.ProjectionYears
	shares := m.SharesOutstanding

	conservative := dcfValue(cf*0.9, g*0.7, r+0.02, tg*0.8, n, shares)
	base := dcfValue(cf, g, r, tg, n, shares)
	optimistic := dcfValue(cf*1.1, g*1.2, r-0.01, tg*1.1, n, shares)

	return models.NewValuationRange(models.MethodDCF, conservative, base, optimistic,
		models.ConfidenceMedium, map[string]any{
			"base_cashflow": cf,
			"growth_rate":   g,
			"discount_rate": r,
			"years":         n,
		}), true
}

// PADRange discounts average earnings grown at the fitted rate back at the
// risk-free rate. A single scenario, so the band is flat.
func (e *Engine) PADRange(m *models.FinancialMetrics) (models.ValuationRange, bool) {
	if m.NetIncomeAverage <= 0 || m.SharesOutstanding <= 0 {
		return models.ValuationRange{}, false
	}

	g := m.EarningsGrowth
	rf := e.config.RiskFreeRate
	var value float64
	for i := 1; i <= e.config.ProjectionYears; i++ {
		value += m.NetIncomeAverage * math.Pow(1+g, float64(i)) / math.Pow(1+rf, float64(i))
	}
	perShare := value / m.SharesOutstanding

	return models.NewValuationRange(models.MethodPAD, perShare, perShare, perShare,
		models.ConfidenceMedium, map[string]any{
			"average_earnings": m.NetIncomeAverage,
			"growth_rate":      g,
			"risk_free_rate":   rf,
			"years":            e.config.ProjectionYears,
		}), true
}

// EarningsRange prices EPS at a quality- and growth-adjusted industry
// multiple, banded 30% either side.
func (e *Engine) EarningsRange(m *models.FinancialMetrics, qualityScore float64) (models.ValuationRange, bool) {
	if m.EPS <= 0 {
		return models.ValuationRange{}, false
	}

	var qualityMultiple float64
	switch {
	case qualityScore >= 80:
		qualityMultiple = 1.5
	case qualityScore >= 60:
		qualityMultiple = 1.2
	case qualityScore >= 40:
		qualityMultiple = 1.0
	default:
		qualityMultiple = 0.7
	}

	growthMultiple := math.Min(2.0, math.Max(0.5, 1+m.EarningsGrowth))
	fairPE := e.config.IndustryPE * qualityMultiple * growthMultiple
	base := m.EPS * fairPE

	confidence := models.ConfidenceMedium
	if qualityScore < 50 {
		confidence = models.ConfidenceLow
	}

	return models.NewValuationRange(models.MethodEarningsMultiple, base*0.7, base, base*1.3,
		confidence, map[string]any{
			"eps":              m.EPS,
			"fair_pe":          models.Round(fairPE, 1),
			"quality_multiple": qualityMultiple,
			"growth_multiple":  models.Round(growthMultiple, 2),
		}), true
}

// BookRange prices book value at an ROE-driven multiple adjusted for
// quality, banded 40% either side.
func (e *Engine) BookRange(m *models.FinancialMetrics, qualityScore float64) (models.ValuationRange, bool) {
	if m.BookValuePerShare <= 0 {
		return models.ValuationRange{}, false
	}

	roe := m.ROE.Or(0)
	var roeMultiple float64
	switch {
	case roe >= 0.20:
		roeMultiple = 3.0
	case roe >= 0.15:
		roeMultiple = 2.0
	case roe >= 0.10:
		roeMultiple = 1.5
	default:
		roeMultiple = math.Max(0.5, 1+roe*5)
	}

	qualityAdj := 0.7 + (qualityScore/100)*0.6
	fairMultiple := roeMultiple * qualityAdj
	base := m.BookValuePerShare * fairMultiple

	confidence := models.ConfidenceMedium
	if qualityScore >= 60 {
		confidence = models.ConfidenceHigh
	}

	return models.NewValuationRange(models.MethodBookMultiple, base*0.6, base, base*1.4,
		confidence, map[string]any{
			"book_value_per_share": m.BookValuePerShare,
			"roe":                  models.Round(roe, 3),
			"fair_pb_multiple":     models.Round(fairMultiple, 2),
		}), true
}

// perpetuityValue is a growing perpetuity, capped at 20x when growth meets
// or beats the required return.
func perpetuityValue(oe, g, r float64) float64 {
	if r <= g {
		return oe * 20
	}
	return oe / (r - g)
}

// OwnerEarningsRange values owner earnings as a growing perpetuity under
// three scenarios.
func (e *Engine) OwnerEarningsRange(m *models.FinancialMetrics) (models.ValuationRange, bool) {
	if m.OwnerEarningsPerShare <= 0 {
		return models.ValuationRange{}, false
	}

	oe := m.OwnerEarningsPerShare
	g := m.EarningsGrowth
	r := e.config.RequiredReturn

	conservative := perpetuityValue(oe*0.85, g*0.6, r+0.03)
	base := perpetuityValue(oe, g, r)
	optimistic := perpetuityValue(oe*1.15, math.Min(g*1.3, r-0.01), r-0.02)

	return models.NewValuationRange(models.MethodOwnerEarnings, conservative, base, optimistic,
		models.ConfidenceMedium, map[string]any{
			"owner_earnings_per_share": oe,
			"growth_rate":              g,
			"required_return":          r,
		}), true
}
