package metrics

import (
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

const minStatementYears = 3

var balanceSheetKeyLines = []string{
	models.LineTotalAssets,
	models.LineTotalLiabilities,
	models.LineCash,
	models.LineCurrentAssets,
	models.LineCurrentLiabilities,
	models.LineEquity,
}

// DataQualityScore grades statement completeness 0-100. Cash flow depth
// and net income presence carry 40 points, balance sheet key fields 30,
// market cap and price 15 each.
func DataQualityScore(fs models.FinancialStatements) (float64, []string) {
	var score float64
	var missing []string

	years := fs.CashFlow.Years()
	if years >= minStatementYears {
		score += 25
	} else if years > 0 {
		score += 15 * float64(years) / minStatementYears
		missing = append(missing, "cash_flow_history")
	} else {
		missing = append(missing, "cash_flow_statement")
	}

	if fs.CashFlow.HasLine(models.LineNetIncome) {
		score += 15
	} else {
		missing = append(missing, models.LineNetIncome)
	}

	found := 0
	for _, line := range balanceSheetKeyLines {
		if fs.BalanceSheet.HasLine(line) {
			found++
		} else {
			missing = append(missing, line)
		}
	}
	score += float64(found) / float64(len(balanceSheetKeyLines)) * 30

	if fs.MarketCap > 0 {
		score += 15
	} else {
		missing = append(missing, "market_cap")
	}
	if fs.CurrentPrice > 0 {
		score += 15
	} else {
		missing = append(missing, "current_price")
	}

	return math.Min(score, 100), missing
}

// ConfidenceLevel maps a 0-100 confidence score to a level.
func ConfidenceLevel(score float64) models.Confidence {
	switch {
	case score >= 80:
		return models.ConfidenceHigh
	case score >= 50:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
