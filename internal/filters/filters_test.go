package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func universe() []*models.InvestmentProfile {
	return []*models.InvestmentProfile{
		{Ticker: "USA1", Country: "United States", CapSize: "mega", Industry: "Semiconductors",
			Confidence: models.ConfidenceInfo{Level: models.ConfidenceHigh}},
		{Ticker: "USA2", Country: "United States", CapSize: "small", Industry: "Widgets",
			Confidence: models.ConfidenceInfo{Level: models.ConfidenceLow}},
		{Ticker: "GER1", Country: "Germany", CapSize: "large", Industry: "Banks - Diversified",
			Confidence: models.ConfidenceInfo{Level: models.ConfidenceMedium}},
		{Ticker: "RUS1", Country: "Russia", CapSize: "mega", Industry: "Oil & Gas Integrated",
			Confidence: models.ConfidenceInfo{Level: models.ConfidenceHigh}},
	}
}

func TestApplyNilSpecPassesEverything(t *testing.T) {
	profiles := universe()
	assert.Equal(t, profiles, Apply(profiles, nil))
}

func TestApplyCountryAndCap(t *testing.T) {
	filtered := Apply(universe(), &interfaces.FilterSpec{
		Countries: []string{"United States"},
		CapSizes:  []string{"mega", "large"},
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "USA1", filtered[0].Ticker)
}

func TestApplyExclusions(t *testing.T) {
	filtered := Apply(universe(), &interfaces.FilterSpec{
		ExcludeCountries:  []string{"Russia"},
		ExcludeIndustries: []string{"Widgets"},
	})
	require.Len(t, filtered, 2)
	assert.Equal(t, "USA1", filtered[0].Ticker)
	assert.Equal(t, "GER1", filtered[1].Ticker)
}

func TestApplyMinConfidence(t *testing.T) {
	filtered := Apply(universe(), &interfaces.FilterSpec{
		MinConfidence: models.ConfidenceMedium,
	})
	require.Len(t, filtered, 3)
	for _, p := range filtered {
		assert.NotEqual(t, "USA2", p.Ticker)
	}
}

func TestPresets(t *testing.T) {
	spec := Preset("us_only")
	require.NotNil(t, spec)

	filtered := Apply(universe(), spec)
	require.Len(t, filtered, 1)
	assert.Equal(t, "USA1", filtered[0].Ticker)

	assert.Nil(t, Preset("nonexistent"))
}

func TestSummarize(t *testing.T) {
	_, summary := Summarize(universe(), Preset("global_mega"))
	assert.Equal(t, 4, summary.OriginalCount)
	assert.Equal(t, 1, summary.FilteredCount)
	assert.Equal(t, 3, summary.RemovedCount)
}
