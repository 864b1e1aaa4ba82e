package models

import "time"

// Verdict is the single action label produced for a ticker.
type Verdict string

const (
	VerdictStrongBuy        Verdict = "STRONG_BUY"
	VerdictBuy              Verdict = "BUY"
	VerdictAccumulate       Verdict = "ACCUMULATE"
	VerdictWatchlist        Verdict = "WATCHLIST"
	VerdictHold             Verdict = "HOLD"
	VerdictReduce           Verdict = "REDUCE"
	VerdictSell             Verdict = "SELL"
	VerdictAvoid            Verdict = "AVOID"
	VerdictInsufficientData Verdict = "INSUFFICIENT_DATA"
)

// Actionable reports whether the verdict calls for buying.
func (v Verdict) Actionable() bool {
	switch v {
	case VerdictStrongBuy, VerdictBuy, VerdictAccumulate:
		return true
	}
	return false
}

// InvestmentLens is one philosopher's view of the ticker for the report.
type InvestmentLens struct {
	Philosopher string  `json:"philosopher"`
	Score       float64 `json:"score"`
	Grade       string  `json:"grade"`
	KeyMetric   string  `json:"key_metric"`
	Verdict     string  `json:"verdict"`
	Insight     string  `json:"insight"`
}

// IntelligenceReport is the full analysis output for one ticker.
type IntelligenceReport struct {
	RunID        string    `json:"run_id"`
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
	CurrentPrice float64   `json:"current_price"`

	Valuation      CompositeValuationRange `json:"valuation"`
	Scores         CompositeScore          `json:"scores"`
	MarginOfSafety Ratio                   `json:"margin_of_safety"`
	BuyBelowPrice  float64                 `json:"buy_below_price"`

	Verdict      Verdict    `json:"verdict"`
	QualityGrade string     `json:"quality_grade"`
	Confidence   Confidence `json:"confidence"`

	Recommendation string   `json:"recommendation"`
	KeyStrengths   []string `json:"key_strengths,omitempty"`
	KeyConcerns    []string `json:"key_concerns,omitempty"`
	ActionItems    []string `json:"action_items,omitempty"`

	Lenses []InvestmentLens `json:"investment_lenses"`
}

// QualityGrade maps a 0-100 quality score to a report letter grade.
func QualityGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}
