package metrics

import (
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Extractor turns raw financial statements into the metric bundle consumed
// by the valuation and scoring layers.
type Extractor struct {
	config *common.AnalysisConfig
	logger *common.Logger
}

// NewExtractor creates a metric extractor.
func NewExtractor(config *common.AnalysisConfig, logger *common.Logger) *Extractor {
	return &Extractor{config: config, logger: logger}
}

// Extract computes every fundamental metric from the statements. Missing
// line items produce zero or undefined fields rather than errors.
func (e *Extractor) Extract(fs models.FinancialStatements) *models.FinancialMetrics {
	m := &models.FinancialMetrics{
		Ticker:            fs.Ticker,
		CurrentPrice:      fs.CurrentPrice,
		AveragePrice:      fs.AveragePrice,
		MarketCap:         fs.MarketCap,
		SharesOutstanding: fs.SharesOutstanding,
	}

	netIncome := fs.CashFlow.Line(models.LineNetIncome)
	if len(netIncome) == 0 {
		netIncome = fs.Income.Line(models.LineNetIncome)
	}
	revenue := fs.Income.Line(models.LineRevenue)
	dividends := fs.CashFlow.Line(models.LineDividendsPaid)

	m.Revenue = revenue.Latest()
	m.NetIncome = netIncome.Latest()
	m.NetIncomeAverage = netIncome.Mean()
	m.EBIT = fs.Income.Line(models.LineEBIT).Latest()
	m.Cash = fs.BalanceSheet.Line(models.LineCash).Latest()
	m.TotalDebt = fs.BalanceSheet.Line(models.LineTotalDebt).Latest()
	m.CurrentAssets = fs.BalanceSheet.Line(models.LineCurrentAssets).Latest()
	m.CurrentLiabilities = fs.BalanceSheet.Line(models.LineCurrentLiabilities).Latest()
	m.Inventory = fs.BalanceSheet.Line(models.LineInventory).Latest()
	m.NetPPE = fs.BalanceSheet.Line(models.LineNetPPE).Latest()
	m.BookValue = fs.BalanceSheet.Line(models.LineEquity).Latest()
	m.InterestExpense = fs.Income.Line(models.LineInterestExpense).Latest()

	intangibles := fs.BalanceSheet.Line(models.LineIntangibleAssets).Latest()
	m.TangibleBookValue = m.BookValue - intangibles
	totalLiabilities := fs.BalanceSheet.Line(models.LineTotalLiabilities).Latest()
	m.NetNetWorkingCap = m.CurrentAssets - totalLiabilities

	depreciation := fs.CashFlow.Line(models.LineDepreciation).Latest()
	capex := math.Abs(fs.CashFlow.Line(models.LineCapex).Latest())
	m.OwnerEarnings = m.NetIncome + depreciation - capex
	m.FreeCashFlow = fs.CashFlow.Line(models.LineFreeCashFlow).Latest()
	if m.FreeCashFlow == 0 {
		m.FreeCashFlow = m.OwnerEarnings
	}

	if fs.SharesOutstanding > 0 {
		m.EPS = m.NetIncome / fs.SharesOutstanding
		m.BookValuePerShare = m.BookValue / fs.SharesOutstanding
		m.OwnerEarningsPerShare = m.OwnerEarnings / fs.SharesOutstanding
	}
	m.NetCashPerShare = NetCashPerShare(m.Cash, m.TotalDebt, fs.SharesOutstanding)
	if fs.MarketCap > 0 {
		m.DividendYield = math.Abs(dividends.Latest()) / fs.MarketCap
	}

	// Fitted trends
	fit := FitWeightedTrend(netIncome, e.config.DecayRate)
	m.EarningsGrowth = fit.Growth
	m.ExpectedNetIncome = fit.Project(e.config.ProjectionYears)
	m.DividendGrowth = FitWeightedTrend(absSeries(dividends), e.config.DecayRate).Growth
	m.SalesCAGR = SeriesCAGR(revenue)
	m.EarningsCAGR = SeriesCAGR(clipPositive(netIncome))
	m.GrowthConsistency = GrowthConsistency(revenue)

	// Ratios
	if m.EPS > 0 {
		m.PE = models.DefinedRatio(fs.CurrentPrice / m.EPS)
	} else {
		m.PE = models.UndefinedRatio()
	}
	if m.BookValuePerShare > 0 {
		m.PB = models.DefinedRatio(fs.CurrentPrice / m.BookValuePerShare)
	} else {
		m.PB = models.UndefinedRatio()
	}
	m.PEG = PEGRatio(m.PE, m.EarningsGrowth)
	m.CurrentRatio = models.NewRatio(m.CurrentAssets, m.CurrentLiabilities)
	if m.BookValue > 0 {
		m.DebtToEquity = models.DefinedRatio(m.TotalDebt / m.BookValue)
		m.ROE = models.DefinedRatio(m.NetIncome / m.BookValue)
	} else {
		m.DebtToEquity = models.UndefinedRatio()
		m.ROE = models.UndefinedRatio()
	}
	if m.InterestExpense <= 0 {
		m.InterestCoverage = models.InfiniteRatio()
	} else {
		m.InterestCoverage = models.DefinedRatio(m.EBIT / m.InterestExpense)
	}

	nopat := m.EBIT * (1 - e.config.EffectiveTax)
	investedCapital := m.BookValue + m.TotalDebt - m.Cash
	if investedCapital > 0 {
		m.ROIC = models.DefinedRatio(nopat / investedCapital)
	} else {
		m.ROIC = models.UndefinedRatio()
	}

	m.EnterpriseValue = EnterpriseValue(fs.MarketCap, m.TotalDebt, m.Cash)
	m.EarningsYield = EarningsYield(m.EBIT, m.EnterpriseValue)
	m.ReturnOnCapital = ReturnOnCapital(m.EBIT, m.CurrentAssets-m.CurrentLiabilities, m.NetPPE)
	m.OwnerEarningsYield = models.NewRatio(m.OwnerEarnings, fs.MarketCap)
	m.EarningsEquity = models.NewRatio(m.NetIncomeAverage, fs.MarketCap)
	tangibleAssets := fs.BalanceSheet.Line(models.LineTotalAssets).Latest() - intangibles
	m.AssetsLight = models.NewRatio(m.NetIncomeAverage, tangibleAssets)
	m.MagicFormulaPercentile = models.UndefinedRatio()

	e.extractGraham(m, fs, netIncome, dividends)
	e.extractLynch(m)
	e.extractFisher(m, fs, revenue, netIncome, dividends)

	score, missing := DataQualityScore(fs)
	m.DataQualityScore = score
	m.StatementYears = fs.CashFlow.Years()
	if e.logger != nil {
		e.logger.Debug().
			Str("ticker", fs.Ticker).
			Float64("data_quality", score).
			Int("statement_years", m.StatementYears).
			Strs("missing_fields", missing).
			Msg("metrics extracted")
	}
	return m
}

func (e *Extractor) extractGraham(m *models.FinancialMetrics, fs models.FinancialStatements, netIncome, dividends models.Series) {
	m.GrahamNumber = GrahamNumber(m.EPS, m.BookValuePerShare)
	m.GrahamMoS = GrahamMarginOfSafety(fs.CurrentPrice, m.GrahamNumber)

	var epsStart float64
	if len(netIncome) > 0 && fs.SharesOutstanding > 0 {
		epsStart = netIncome[0] / fs.SharesOutstanding
	}
	criteria := EvaluateGrahamCriteria(
		m.Revenue,
		m.CurrentAssets, m.CurrentLiabilities,
		netIncome, absSeries(dividends),
		epsStart, m.EPS,
		fs.CurrentPrice, m.BookValuePerShare,
	)
	m.GrahamCriteriaScore = criteria.Score
	m.GrahamCriteria = criteria.Passed
}

func (e *Extractor) extractLynch(m *models.FinancialMetrics) {
	m.LynchCategory = ClassifyLynchCategory(m.EarningsGrowth)
	m.LynchFairValue = LynchFairValue(m.EPS, m.EarningsGrowth, m.DividendYield)
	m.LynchMoS = LynchMarginOfSafety(m.CurrentPrice, m.LynchFairValue)
	m.InventorySalesRatio = InventorySalesRatio(m.Inventory, m.Revenue)
}

func (e *Extractor) extractFisher(m *models.FinancialMetrics, fs models.FinancialStatements, revenue, netIncome, dividends models.Series) {
	margins := marginSeries(fs, revenue)
	m.MarginTrend, m.MarginTrendScore = MarginTrend(margins)

	retention := RetentionRatio(absSeries(dividends), netIncome)
	m.ReinvestmentEfficiency = ReinvestmentEfficiency(m.EarningsCAGR, retention)
	m.SustainableGrowthRate = SustainableGrowthRate(m.ROE.Or(0), retention)
	m.GrowthQualityScore = GrowthQualityScore(
		m.SalesCAGR, m.MarginTrendScore, m.GrowthConsistency, m.ROE.Or(0))
}

// marginSeries pairs the best available profit line with revenue, year by
// year: EBIT first, then gross profit, then net income.
func marginSeries(fs models.FinancialStatements, revenue models.Series) []float64 {
	var profit models.Series
	for _, line := range []string{models.LineEBIT, models.LineGrossProfit, models.LineNetIncome} {
		if s := fs.Income.Line(line); len(s) >= 2 {
			profit = s
			break
		}
	}
	if len(profit) == 0 {
		profit = fs.CashFlow.Line(models.LineNetIncome)
	}

	n := len(profit)
	if len(revenue) < n {
		n = len(revenue)
	}
	var margins []float64
	for i := 0; i < n; i++ {
		if revenue[i] == 0 {
			continue
		}
		margins = append(margins, profit[i]/revenue[i])
	}
	return margins
}

func absSeries(s models.Series) models.Series {
	out := make(models.Series, len(s))
	for i, v := range s {
		out[i] = math.Abs(v)
	}
	return out
}

func clipPositive(s models.Series) models.Series {
	out := make(models.Series, len(s))
	for i, v := range s {
		if v < 0.01 {
			v = 0.01
		}
		out[i] = v
	}
	return out
}
