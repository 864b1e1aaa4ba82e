package models

import "time"

// Canonical line-item names. Vendor-specific row aliasing is the statement
// parser's job; the core only sees these keys.
const (
	LineRevenue            = "revenue"
	LineNetIncome          = "net_income"
	LineEBIT               = "ebit"
	LineDepreciation       = "depreciation_amortization"
	LineCapex              = "capital_expenditure"
	LineFreeCashFlow       = "free_cash_flow"
	LineDividendsPaid      = "dividends_paid"
	LineBuybacks           = "stock_repurchases"
	LineCash               = "cash_and_equivalents"
	LineCurrentAssets      = "total_current_assets"
	LineCurrentLiabilities = "total_current_liabilities"
	LineTotalAssets        = "total_assets"
	LineTotalLiabilities   = "total_liabilities"
	LineIntangibleAssets   = "intangible_assets"
	LineNetPPE             = "net_ppe"
	LineInventory          = "inventory"
	LineTotalDebt          = "total_debt"
	LineLongTermDebt       = "long_term_debt"
	LineEquity             = "stockholders_equity"
	LineInterestExpense    = "interest_expense"
	LineGrossProfit        = "gross_profit"
	LineIncomeTax          = "income_tax_expense"
)

// Series is a time-ordered sequence of annual values, oldest first.
type Series []float64

// Latest returns the most recent value, or 0 for an empty series.
func (s Series) Latest() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Statement maps canonical line-item names to their annual series.
type Statement map[string]Series

// Line returns the series for a line item; a missing item is an empty
// series, never an error (degraded data degrades confidence downstream).
func (st Statement) Line(name string) Series {
	if st == nil {
		return nil
	}
	return st[name]
}

// HasLine reports whether the line item is present with at least one value.
func (st Statement) HasLine(name string) bool {
	return len(st.Line(name)) > 0
}

// Years returns the longest series length in the statement.
func (st Statement) Years() int {
	max := 0
	for _, s := range st {
		if len(s) > max {
			max = len(s)
		}
	}
	return max
}

// FinancialStatements is the normalized input handed to the metric
// extractor: parsed statements plus current market scalars.
type FinancialStatements struct {
	Ticker            string    `json:"ticker"`
	BalanceSheet      Statement `json:"balance_sheet"`
	CashFlow          Statement `json:"cash_flow"`
	Income            Statement `json:"income"`
	CurrentPrice      float64   `json:"current_price"`
	AveragePrice      float64   `json:"average_price"` // mean close over the lookback window
	MarketCap         float64   `json:"market_cap"`
	SharesOutstanding float64   `json:"shares_outstanding"`
	Currency          string    `json:"currency"`
	AsOf              time.Time `json:"as_of"`
}

// CompanyInfo carries descriptive fields used for filtering and reports.
type CompanyInfo struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name,omitempty"`
	Country  string `json:"country,omitempty"`
	Industry string `json:"industry,omitempty"`
	CapSize  string `json:"cap_size,omitempty"` // mega, large, mid, small
	Currency string `json:"currency,omitempty"`
}
