package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func TestGrahamScore(t *testing.T) {
	t.Run("deep value stock", func(t *testing.T) {
		m := &models.FinancialMetrics{
			GrahamCriteriaScore: 7,
			GrahamMoS:           models.DefinedRatio(0.4),
			PE:                  models.DefinedRatio(12),
			PB:                  models.DefinedRatio(1.2),
		}

		score := GrahamScore(m)
		// 40 criteria + 30 MoS + 12 P/E + 12 P/B
		assert.InDelta(t, 94.0, score.Score, 1e-9)
		assert.Equal(t, models.LensGraham, score.Lens)
	})

	t.Run("mos above one decays linearly", func(t *testing.T) {
		m := &models.FinancialMetrics{
			GrahamMoS: models.DefinedRatio(2.0),
			PE:        models.UndefinedRatio(),
			PB:        models.UndefinedRatio(),
		}

		score := GrahamScore(m)
		// 30 - (2.0 - 1.0) x 15 = 15
		assert.InDelta(t, 15.0, score.Parts["graham_mos"], 1e-9)
	})

	t.Run("infinite mos earns nothing", func(t *testing.T) {
		m := &models.FinancialMetrics{
			GrahamMoS: models.InfiniteRatio(),
			PE:        models.UndefinedRatio(),
			PB:        models.UndefinedRatio(),
		}

		assert.Equal(t, 0.0, GrahamScore(m).Score)
	})
}

func TestBuffettScore(t *testing.T) {
	t.Run("fortress balance sheet maxes out", func(t *testing.T) {
		m := &models.FinancialMetrics{
			ROE:                models.DefinedRatio(0.25),
			ROIC:               models.DefinedRatio(0.22),
			DebtToEquity:       models.DefinedRatio(0.2),
			InterestCoverage:   models.InfiniteRatio(),
			OwnerEarningsYield: models.DefinedRatio(0.12),
		}

		// 25 + 25 + 20 + 15 + 15
		assert.InDelta(t, 100.0, BuffettScore(m).Score, 1e-9)
	})

	t.Run("leveraged low-return business", func(t *testing.T) {
		m := &models.FinancialMetrics{
			ROE:                models.DefinedRatio(0.03),
			ROIC:               models.DefinedRatio(0.02),
			DebtToEquity:       models.DefinedRatio(3.0),
			InterestCoverage:   models.DefinedRatio(1.2),
			OwnerEarningsYield: models.DefinedRatio(0.01),
		}

		assert.Equal(t, 0.0, BuffettScore(m).Score)
	})

	t.Run("undefined ratios are skipped", func(t *testing.T) {
		m := &models.FinancialMetrics{
			ROE:                models.UndefinedRatio(),
			ROIC:               models.UndefinedRatio(),
			DebtToEquity:       models.UndefinedRatio(),
			InterestCoverage:   models.UndefinedRatio(),
			OwnerEarningsYield: models.UndefinedRatio(),
		}

		score := BuffettScore(m)
		assert.Equal(t, 0.0, score.Score)
		assert.Empty(t, score.Parts)
	})
}

func TestLynchScore(t *testing.T) {
	t.Run("fast grower with cash", func(t *testing.T) {
		m := &models.FinancialMetrics{
			CurrentPrice:    50,
			PEG:             models.DefinedRatio(0.4),
			EarningsGrowth:  0.25,
			NetCashPerShare: 17.5, // 35% of price
		}

		// 50 PEG + 30 growth + 20 cash
		assert.InDelta(t, 100.0, LynchScore(m).Score, 1e-9)
	})

	t.Run("expensive slow grower in debt", func(t *testing.T) {
		m := &models.FinancialMetrics{
			CurrentPrice:    50,
			PEG:             models.DefinedRatio(3.0),
			EarningsGrowth:  0.01,
			NetCashPerShare: -15, // -30% of price
		}

		assert.Equal(t, 0.0, LynchScore(m).Score)
	})
}

func TestGreenblattScore(t *testing.T) {
	t.Run("percentile used directly", func(t *testing.T) {
		m := &models.FinancialMetrics{
			MagicFormulaPercentile: models.DefinedRatio(85),
			EarningsYield:          models.DefinedRatio(0.01),
			ReturnOnCapital:        models.DefinedRatio(0.01),
		}

		assert.InDelta(t, 85.0, GreenblattScore(m).Score, 1e-9)
	})

	t.Run("component fallback", func(t *testing.T) {
		m := &models.FinancialMetrics{
			MagicFormulaPercentile: models.UndefinedRatio(),
			EarningsYield:          models.DefinedRatio(0.12),
			ReturnOnCapital:        models.DefinedRatio(0.25),
		}

		// 40 earnings yield + 40 return on capital
		assert.InDelta(t, 80.0, GreenblattScore(m).Score, 1e-9)
	})
}

func TestFisherScore(t *testing.T) {
	t.Run("growth quality used directly", func(t *testing.T) {
		m := &models.FinancialMetrics{GrowthQualityScore: 66, SalesCAGR: 0.12}
		assert.InDelta(t, 66.0, FisherScore(m).Score, 1e-9)
	})

	t.Run("fallback bands", func(t *testing.T) {
		m := &models.FinancialMetrics{
			SalesCAGR:        0.12,
			MarginTrendScore: -0.2,
			MarginTrend:      "Declining",
		}

		// 30 CAGR + (25 - 5) margin trend
		assert.InDelta(t, 50.0, FisherScore(m).Score, 1e-9)
	})
}
