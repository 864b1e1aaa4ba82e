// Package intelligence turns valuations and scores into a verdict and a
// readable multi-lens report.
package intelligence

import (
	"fmt"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

const qualityThreshold = 65

// DetermineVerdict applies the margin-of-safety decision table. A
// speculative valuation always yields INSUFFICIENT_DATA: quality affects
// what to pay but never removes the safety requirement.
func DetermineVerdict(hasMoS bool, qualityScore, mosRatio float64, confidence models.Confidence) models.Verdict {
	if confidence == models.ConfidenceSpeculative {
		return models.VerdictInsufficientData
	}

	isQuality := qualityScore >= qualityThreshold

	if hasMoS {
		switch {
		case mosRatio <= 0.5:
			if isQuality {
				return models.VerdictStrongBuy
			}
			return models.VerdictBuy
		case mosRatio <= 0.7:
			if isQuality {
				return models.VerdictBuy
			}
			return models.VerdictAccumulate
		default:
			if isQuality {
				return models.VerdictAccumulate
			}
			return models.VerdictHold
		}
	}

	switch {
	case mosRatio <= 1.15:
		if isQuality {
			return models.VerdictWatchlist
		}
		return models.VerdictHold
	case mosRatio <= 1.5:
		if isQuality {
			return models.VerdictHold
		}
		return models.VerdictReduce
	default:
		if isQuality {
			return models.VerdictReduce
		}
		return models.VerdictSell
	}
}

// Recommendation is the one-line explanation attached to a verdict.
func Recommendation(verdict models.Verdict, buyBelow float64) string {
	switch verdict {
	case models.VerdictStrongBuy:
		return "Strong Buy - Quality business with excellent margin of safety"
	case models.VerdictBuy:
		return "Buy - Good value with adequate margin of safety"
	case models.VerdictAccumulate:
		return "Accumulate - Building position, decent risk/reward"
	case models.VerdictWatchlist:
		return fmt.Sprintf("Watchlist - Quality company, wait for price below $%.2f", buyBelow)
	case models.VerdictHold:
		return "Hold - Fair value, no action needed"
	case models.VerdictReduce:
		return "Reduce - Overvalued, consider trimming"
	case models.VerdictSell:
		return "Sell - Significantly overvalued"
	case models.VerdictAvoid:
		return "Avoid - Poor risk/reward profile"
	default:
		return "Insufficient data for recommendation"
	}
}

// ActionItems lists the concrete follow-ups for a verdict.
func ActionItems(verdict models.Verdict, ticker string, buyBelow float64) []string {
	switch verdict {
	case models.VerdictStrongBuy, models.VerdictBuy:
		return []string{
			fmt.Sprintf("Consider initiating or adding to position in %s", ticker),
			"Review position sizing relative to portfolio",
		}
	case models.VerdictAccumulate:
		return []string{
			"Consider small position or adding on further weakness",
			fmt.Sprintf("Set alert for price drops below $%.2f", buyBelow),
		}
	case models.VerdictWatchlist:
		return []string{
			"Add to watchlist - quality company but needs better price",
			fmt.Sprintf("Set price alert at $%.2f for margin of safety", buyBelow),
			"Monitor quarterly results for any deterioration",
		}
	case models.VerdictHold:
		return []string{
			"No action needed if already owned",
			"Do not add at current prices",
		}
	case models.VerdictReduce:
		return []string{
			"Consider trimming position if significantly overweight",
			"Lock in some profits if position has appreciated substantially",
		}
	case models.VerdictSell:
		return []string{
			"Consider exiting position - overvalued with insufficient quality",
			"Reallocate capital to better opportunities",
		}
	case models.VerdictAvoid:
		return []string{"Do not invest - poor risk/reward"}
	default:
		return nil
	}
}
