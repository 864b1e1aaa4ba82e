package metrics

import (
	"fmt"
	"math"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Graham's defensive criteria names.
const (
	CriterionAdequateSize      = "adequate_size"
	CriterionFinancialStrength = "strong_financial_condition"
	CriterionEarningsStability = "earnings_stability"
	CriterionDividendRecord    = "dividend_record"
	CriterionEarningsGrowth    = "earnings_growth"
	CriterionModeratePE        = "moderate_pe"
	CriterionModeratePB        = "moderate_pb"
)

const (
	grahamRevenueThreshold = 500_000_000
	grahamYearsRequired    = 5
)

// GrahamCriteria is the outcome of the seven defensive checks.
type GrahamCriteria struct {
	Score   int
	Passed  []string
	Failed  []string
	Details map[string]string
}

// GrahamNumber is sqrt(22.5 * EPS * book value per share), the most a
// defensive investor should pay. Zero when either input is not positive.
func GrahamNumber(eps, bookValuePerShare float64) float64 {
	if eps <= 0 || bookValuePerShare <= 0 {
		return 0
	}
	return math.Sqrt(22.5 * eps * bookValuePerShare)
}

// GrahamMarginOfSafety is price over the Graham number, infinite when the
// Graham number is zero.
func GrahamMarginOfSafety(price, grahamNumber float64) models.Ratio {
	if grahamNumber <= 0 {
		return models.InfiniteRatio()
	}
	return models.DefinedRatio(price / grahamNumber)
}

// EvaluateGrahamCriteria runs the seven defensive-investor checks.
// Earnings and dividend series are oldest-first; EPS growth compares the
// series endpoints and asks for 33% total growth.
func EvaluateGrahamCriteria(
	revenue float64,
	currentAssets, currentLiabilities float64,
	netIncomeHistory, dividendHistory []float64,
	epsStart, epsCurrent float64,
	price, bookValuePerShare float64,
) GrahamCriteria {
	result := GrahamCriteria{Details: make(map[string]string)}

	pass := func(name, detail string) {
		result.Passed = append(result.Passed, name)
		result.Details[name] = detail
	}
	fail := func(name, detail string) {
		result.Failed = append(result.Failed, name)
		result.Details[name] = detail
	}

	// 1. Adequate size
	if revenue >= grahamRevenueThreshold {
		pass(CriterionAdequateSize, fmt.Sprintf("revenue %.1fB meets threshold", revenue/1e9))
	} else {
		fail(CriterionAdequateSize, fmt.Sprintf("revenue %.1fB below threshold", revenue/1e9))
	}

	// 2. Current ratio >= 2
	currentRatio := 0.0
	if currentLiabilities > 0 {
		currentRatio = currentAssets / currentLiabilities
	}
	if currentRatio >= 2.0 {
		pass(CriterionFinancialStrength, fmt.Sprintf("current ratio %.2f", currentRatio))
	} else {
		fail(CriterionFinancialStrength, fmt.Sprintf("current ratio %.2f below 2.0", currentRatio))
	}

	// 3. Positive earnings every year
	if len(netIncomeHistory) >= grahamYearsRequired {
		positive := 0
		for _, ni := range netIncomeHistory {
			if ni > 0 {
				positive++
			}
		}
		if positive == len(netIncomeHistory) {
			pass(CriterionEarningsStability, fmt.Sprintf("positive earnings all %d years", positive))
		} else {
			fail(CriterionEarningsStability, fmt.Sprintf("only %d/%d years profitable", positive, len(netIncomeHistory)))
		}
	} else {
		fail(CriterionEarningsStability, "insufficient earnings history")
	}

	// 4. Uninterrupted dividends
	if len(dividendHistory) >= grahamYearsRequired {
		paid := 0
		for _, d := range dividendHistory {
			if d > 0 {
				paid++
			}
		}
		if paid >= grahamYearsRequired {
			pass(CriterionDividendRecord, fmt.Sprintf("dividends paid %d years", paid))
		} else {
			fail(CriterionDividendRecord, fmt.Sprintf("only %d years of dividends", paid))
		}
	} else {
		fail(CriterionDividendRecord, "insufficient dividend history")
	}

	// 5. EPS growth >= 33% start to end
	if epsStart > 0 && epsCurrent > 0 {
		growth := (epsCurrent - epsStart) / epsStart
		if growth >= 0.33 {
			pass(CriterionEarningsGrowth, fmt.Sprintf("EPS growth %.0f%%", growth*100))
		} else {
			fail(CriterionEarningsGrowth, fmt.Sprintf("EPS growth %.0f%% below 33%%", growth*100))
		}
	} else {
		fail(CriterionEarningsGrowth, "cannot measure EPS growth")
	}

	// 6. P/E <= 15
	pe := math.Inf(1)
	if epsCurrent > 0 {
		pe = price / epsCurrent
	}
	if pe <= 15 {
		pass(CriterionModeratePE, fmt.Sprintf("P/E %.1f", pe))
	} else {
		fail(CriterionModeratePE, fmt.Sprintf("P/E %.1f above 15", pe))
	}

	// 7. P/B <= 1.5, or P/E x P/B <= 22.5
	pb := math.Inf(1)
	if bookValuePerShare > 0 {
		pb = price / bookValuePerShare
	}
	if pb <= 1.5 || (!math.IsInf(pe, 1) && pe*pb <= 22.5) {
		pass(CriterionModeratePB, fmt.Sprintf("P/B %.2f", pb))
	} else {
		fail(CriterionModeratePB, fmt.Sprintf("P/B %.2f above 1.5", pb))
	}

	result.Score = len(result.Passed)
	return result
}
