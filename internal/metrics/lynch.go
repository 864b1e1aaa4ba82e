package metrics

import "github.com/Patrickdoranlearning/MOSEE/internal/models"

// Lynch stock categories by earnings growth rate.
const (
	LynchSlowGrower = "Slow Grower"
	LynchStalwart   = "Stalwart"
	LynchFastGrower = "Fast Grower"
)

// PEGRatio is P/E divided by the growth rate expressed as a percentage.
// Undefined when either input is not positive.
func PEGRatio(pe models.Ratio, growthRate float64) models.Ratio {
	if !pe.Defined || pe.Infinite || pe.Value <= 0 || growthRate <= 0 {
		return models.UndefinedRatio()
	}
	return models.DefinedRatio(pe.Value / (growthRate * 100))
}

// ClassifyLynchCategory buckets a stock by its earnings growth rate.
// Below 5% is a slow grower, 5-12% a stalwart, above 12% a fast grower.
func ClassifyLynchCategory(growthRate float64) string {
	switch {
	case growthRate < 0.05:
		return LynchSlowGrower
	case growthRate < 0.12:
		return LynchStalwart
	default:
		return LynchFastGrower
	}
}

// NetCashPerShare is (cash - total debt) / shares. Zero without shares.
func NetCashPerShare(cash, totalDebt, shares float64) float64 {
	if shares <= 0 {
		return 0
	}
	return (cash - totalDebt) / shares
}

// InventorySalesRatio is inventory over annual revenue. Rising inventory
// ahead of sales can signal trouble. Zero without revenue.
func InventorySalesRatio(inventory, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return inventory / revenue
}

// LynchFairValue prices the stock at a fair P/E equal to the growth rate
// plus the dividend yield, both as percentages.
func LynchFairValue(eps, growthRate, dividendYield float64) float64 {
	if eps <= 0 {
		return 0
	}
	fairPE := growthRate*100 + dividendYield*100
	return eps * fairPE
}

// LynchMarginOfSafety is price over the Lynch fair value, infinite when the
// fair value is zero.
func LynchMarginOfSafety(price, fairValue float64) models.Ratio {
	if fairValue <= 0 {
		return models.InfiniteRatio()
	}
	return models.DefinedRatio(price / fairValue)
}
