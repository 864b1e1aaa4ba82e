package models

// FinancialMetrics is the flat bundle of scalars, ratios, and fitted trends
// extracted from one ticker's statements. It is built once per analysis run
// and is immutable input to every downstream component.
//
// Plain float fields default to zero when the underlying line item is
// missing; fields where zero and missing must stay distinguishable are
// Ratio values. Degraded inputs degrade confidence, never crash.
type FinancialMetrics struct {
	Ticker            string  `json:"ticker"`
	CurrentPrice      float64 `json:"current_price"`
	AveragePrice      float64 `json:"average_price"`
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding float64 `json:"shares_outstanding"`

	// Latest statement scalars
	Revenue            float64 `json:"revenue"`
	NetIncome          float64 `json:"net_income"`
	NetIncomeAverage   float64 `json:"net_income_average"`
	EBIT               float64 `json:"ebit"`
	Cash               float64 `json:"cash"`
	TotalDebt          float64 `json:"total_debt"`
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	Inventory          float64 `json:"inventory"`
	NetPPE             float64 `json:"net_ppe"`
	BookValue          float64 `json:"book_value"`
	TangibleBookValue  float64 `json:"tangible_book_value"`
	NetNetWorkingCap   float64 `json:"net_net_working_capital"`
	InterestExpense    float64 `json:"interest_expense"`

	// Per-share figures
	EPS                   float64 `json:"eps"`
	BookValuePerShare     float64 `json:"book_value_per_share"`
	NetCashPerShare       float64 `json:"net_cash_per_share"`
	OwnerEarnings         float64 `json:"owner_earnings"`
	OwnerEarningsPerShare float64 `json:"owner_earnings_per_share"`
	FreeCashFlow          float64 `json:"free_cash_flow"`
	DividendYield         float64 `json:"dividend_yield"`

	// Fitted trends and projections
	EarningsGrowth    float64   `json:"earnings_growth"`     // weighted-regression slope / mean
	DividendGrowth    float64   `json:"dividend_growth"`     // same fit on dividends paid
	ExpectedNetIncome []float64 `json:"expected_net_income"` // regression extrapolation
	SalesCAGR         float64   `json:"sales_cagr"`
	EarningsCAGR      float64   `json:"earnings_cagr"`
	GrowthConsistency float64   `json:"growth_consistency"` // 0-1, lower YoY volatility is higher

	// Ratios (undefined when inputs are missing, not zero)
	PE                 Ratio `json:"pe_ratio"`
	PB                 Ratio `json:"pb_ratio"`
	PEG                Ratio `json:"peg_ratio"`
	CurrentRatio       Ratio `json:"current_ratio"`
	DebtToEquity       Ratio `json:"debt_to_equity"`
	InterestCoverage   Ratio `json:"interest_coverage"`
	ROE                Ratio `json:"roe"`
	ROIC               Ratio `json:"roic"`
	EarningsYield      Ratio `json:"earnings_yield"`    // EBIT / enterprise value
	ReturnOnCapital    Ratio `json:"return_on_capital"` // EBIT / tangible capital
	OwnerEarningsYield Ratio `json:"owner_earnings_yield"`
	EarningsEquity     Ratio `json:"earnings_equity"` // average earnings / market cap
	AssetsLight        Ratio `json:"assets_light"`    // average earnings / tangible assets

	// Graham
	GrahamNumber        float64  `json:"graham_number"`
	GrahamCriteriaScore int      `json:"graham_criteria_score"` // 0-7 defensive criteria passed
	GrahamCriteria      []string `json:"graham_criteria_passed,omitempty"`
	GrahamMoS           Ratio    `json:"graham_mos"`

	// Lynch
	LynchCategory       string  `json:"lynch_category"`
	LynchFairValue      float64 `json:"lynch_fair_value"`
	LynchMoS            Ratio   `json:"lynch_mos"`
	InventorySalesRatio float64 `json:"inventory_sales_ratio"`

	// Fisher
	MarginTrend            string  `json:"margin_trend"`       // Improving, Stable, Declining, Unknown
	MarginTrendScore       float64 `json:"margin_trend_score"` // -1 to 1
	GrowthQualityScore     float64 `json:"growth_quality_score"`
	ReinvestmentEfficiency float64 `json:"reinvestment_efficiency"`
	SustainableGrowthRate  float64 `json:"sustainable_growth_rate"`

	// Greenblatt; percentile requires a ranked universe and is undefined
	// for a single-ticker run.
	EnterpriseValue        float64 `json:"enterprise_value"`
	MagicFormulaPercentile Ratio   `json:"magic_formula_percentile"`

	// Data completeness, 0-100 (statement years, key fields, market scalars)
	DataQualityScore float64 `json:"data_quality_score"`
	StatementYears   int     `json:"statement_years"`
}
