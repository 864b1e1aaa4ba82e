package metrics

import (
	"sort"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// EnterpriseValue is market cap plus total debt minus cash.
func EnterpriseValue(marketCap, totalDebt, cash float64) float64 {
	return marketCap + totalDebt - cash
}

// EarningsYield is EBIT over enterprise value. Undefined when EV is not
// positive.
func EarningsYield(ebit, enterpriseValue float64) models.Ratio {
	if enterpriseValue <= 0 {
		return models.UndefinedRatio()
	}
	return models.DefinedRatio(ebit / enterpriseValue)
}

// ReturnOnCapital is EBIT over tangible capital, where tangible capital is
// net working capital plus net fixed assets. Undefined when tangible
// capital is not positive.
func ReturnOnCapital(ebit, netWorkingCapital, netPPE float64) models.Ratio {
	capital := netWorkingCapital + netPPE
	if capital <= 0 {
		return models.UndefinedRatio()
	}
	return models.DefinedRatio(ebit / capital)
}

// MagicFormulaEntry is one ticker's standing in a ranked universe.
type MagicFormulaEntry struct {
	Ticker          string  `json:"ticker"`
	EarningsYield   float64 `json:"earnings_yield"`
	ReturnOnCapital float64 `json:"return_on_capital"`
	EYRank          int     `json:"earnings_yield_rank,omitempty"`
	ROCRank         int     `json:"return_on_capital_rank,omitempty"`
	CombinedRank    int     `json:"combined_rank,omitempty"`
	Percentile      float64 `json:"percentile,omitempty"`
}

// RankMagicFormula orders a universe by combined earnings-yield and
// return-on-capital rank, lowest combined rank first. Entries with a
// non-positive yield or return go unranked at the end. Percentile is
// measured against the ranked set only, 100 being best.
func RankMagicFormula(entries []MagicFormulaEntry) []MagicFormulaEntry {
	var valid, invalid []MagicFormulaEntry
	for _, e := range entries {
		if e.EarningsYield > 0 && e.ReturnOnCapital > 0 {
			valid = append(valid, e)
		} else {
			e.EYRank, e.ROCRank, e.CombinedRank, e.Percentile = 0, 0, 0, 0
			invalid = append(invalid, e)
		}
	}
	if len(valid) == 0 {
		return entries
	}

	byEY := make([]int, len(valid))
	for i := range byEY {
		byEY[i] = i
	}
	sort.SliceStable(byEY, func(a, b int) bool {
		return valid[byEY[a]].EarningsYield > valid[byEY[b]].EarningsYield
	})
	for rank, idx := range byEY {
		valid[idx].EYRank = rank + 1
	}

	byROC := make([]int, len(valid))
	for i := range byROC {
		byROC[i] = i
	}
	sort.SliceStable(byROC, func(a, b int) bool {
		return valid[byROC[a]].ReturnOnCapital > valid[byROC[b]].ReturnOnCapital
	})
	for rank, idx := range byROC {
		valid[idx].ROCRank = rank + 1
	}

	total := len(valid)
	for i := range valid {
		valid[i].CombinedRank = valid[i].EYRank + valid[i].ROCRank
	}
	sort.SliceStable(valid, func(a, b int) bool {
		return valid[a].CombinedRank < valid[b].CombinedRank
	})
	for i := range valid {
		valid[i].Percentile = float64(total-i) / float64(total) * 100
	}

	return append(valid, invalid...)
}
