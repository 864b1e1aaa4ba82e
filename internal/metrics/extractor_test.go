package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func testAnalysisConfig() *common.AnalysisConfig {
	return &common.AnalysisConfig{
		DiscountRate:    0.10,
		RiskFreeRate:    0.04,
		TerminalGrowth:  0.03,
		RequiredReturn:  0.10,
		RequiredMoS:     0.7,
		ProjectionYears: 10,
		DecayRate:       1.25,
		IndustryPE:      15,
		EffectiveTax:    0.25,
	}
}

func testStatements() models.FinancialStatements {
	return models.FinancialStatements{
		Ticker:            "ACME",
		CurrentPrice:      50,
		MarketCap:         5_000_000_000,
		SharesOutstanding: 100_000_000,
		CashFlow: models.Statement{
			models.LineNetIncome:     {300e6, 340e6, 380e6, 420e6, 460e6},
			models.LineDepreciation:  {40e6, 42e6, 44e6, 46e6, 48e6},
			models.LineCapex:         {-50e6, -52e6, -54e6, -56e6, -58e6},
			models.LineDividendsPaid: {-80e6, -85e6, -90e6, -95e6, -100e6},
		},
		Income: models.Statement{
			models.LineRevenue:         {2.0e9, 2.2e9, 2.4e9, 2.6e9, 2.8e9},
			models.LineEBIT:            {400e6, 440e6, 480e6, 520e6, 560e6},
			models.LineInterestExpense: {0, 0, 0, 0, 20e6},
		},
		BalanceSheet: models.Statement{
			models.LineTotalAssets:        {4.0e9},
			models.LineTotalLiabilities:   {1.5e9},
			models.LineCash:               {600e6},
			models.LineTotalDebt:          {400e6},
			models.LineCurrentAssets:      {1.2e9},
			models.LineCurrentLiabilities: {600e6},
			models.LineNetPPE:             {1.0e9},
			models.LineEquity:             {2.5e9},
			models.LineIntangibleAssets:   {300e6},
		},
	}
}

func TestExtractorExtract(t *testing.T) {
	extractor := NewExtractor(testAnalysisConfig(), common.NewSilentLogger())
	m := extractor.Extract(testStatements())

	t.Run("per share figures", func(t *testing.T) {
		assert.InDelta(t, 4.6, m.EPS, 1e-9)                  // 460M / 100M shares
		assert.InDelta(t, 25.0, m.BookValuePerShare, 1e-9)   // 2.5B / 100M
		assert.InDelta(t, 2.0, m.NetCashPerShare, 1e-9)      // (600M - 400M) / 100M
		assert.InDelta(t, 4.5, m.OwnerEarningsPerShare, 1e-9) // (460 + 48 - 58)M / 100M
	})

	t.Run("ratios", func(t *testing.T) {
		require.True(t, m.PE.Defined)
		assert.InDelta(t, 50.0/4.6, m.PE.Value, 1e-9)

		require.True(t, m.PB.Defined)
		assert.InDelta(t, 2.0, m.PB.Value, 1e-9)

		require.True(t, m.CurrentRatio.Defined)
		assert.InDelta(t, 2.0, m.CurrentRatio.Value, 1e-9)

		require.True(t, m.DebtToEquity.Defined)
		assert.InDelta(t, 0.16, m.DebtToEquity.Value, 1e-9)

		require.True(t, m.ROE.Defined)
		assert.InDelta(t, 0.184, m.ROE.Value, 1e-9)

		require.True(t, m.InterestCoverage.Defined)
		assert.InDelta(t, 28.0, m.InterestCoverage.Value, 1e-9) // 560M / 20M
	})

	t.Run("growth fit", func(t *testing.T) {
		// Net income rises exactly 40M a year off a 380M mean.
		assert.InDelta(t, 40e6/380e6, m.EarningsGrowth, 1e-9)

		require.Len(t, m.ExpectedNetIncome, 10)
		assert.InDelta(t, 500e6, m.ExpectedNetIncome[0], 1)
		assert.InDelta(t, 540e6, m.ExpectedNetIncome[1], 1)
	})

	t.Run("enterprise value and yields", func(t *testing.T) {
		assert.InDelta(t, 4.8e9, m.EnterpriseValue, 1) // 5B + 400M - 600M

		require.True(t, m.EarningsYield.Defined)
		assert.InDelta(t, 560e6/4.8e9, m.EarningsYield.Value, 1e-9)

		require.True(t, m.ReturnOnCapital.Defined)
		assert.InDelta(t, 0.35, m.ReturnOnCapital.Value, 1e-9) // 560M / (600M + 1B)
	})

	t.Run("graham", func(t *testing.T) {
		assert.Positive(t, m.GrahamNumber)
		assert.GreaterOrEqual(t, m.GrahamCriteriaScore, 3)
	})

	t.Run("data quality", func(t *testing.T) {
		assert.InDelta(t, 100.0, m.DataQualityScore, 1e-9)
		assert.Equal(t, 5, m.StatementYears)
	})
}

func TestExtractorMissingData(t *testing.T) {
	extractor := NewExtractor(testAnalysisConfig(), common.NewSilentLogger())
	m := extractor.Extract(models.FinancialStatements{Ticker: "EMPTY"})

	assert.Equal(t, "EMPTY", m.Ticker)
	assert.Equal(t, 0.0, m.EPS)
	assert.False(t, m.PE.Defined)
	assert.False(t, m.PB.Defined)
	assert.False(t, m.ROE.Defined)
	assert.True(t, m.InterestCoverage.Infinite)
	assert.Equal(t, 0.0, m.EarningsGrowth)
	assert.Equal(t, 0.0, m.DataQualityScore)
}

func TestExtractorNegativeEarnings(t *testing.T) {
	fs := testStatements()
	fs.CashFlow[models.LineNetIncome] = models.Series{-100e6, -120e6, -90e6, -110e6, -105e6}

	extractor := NewExtractor(testAnalysisConfig(), common.NewSilentLogger())
	m := extractor.Extract(fs)

	assert.Negative(t, m.EPS)
	assert.False(t, m.PE.Defined)
	assert.Equal(t, 0.0, m.GrahamNumber)
}
