package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func TestDetermineVerdict(t *testing.T) {
	tests := []struct {
		name       string
		hasMoS     bool
		quality    float64
		mosRatio   float64
		confidence models.Confidence
		expected   models.Verdict
	}{
		{"deep discount quality", true, 80, 0.4, models.ConfidenceHigh, models.VerdictStrongBuy},
		{"deep discount mediocre", true, 50, 0.4, models.ConfidenceHigh, models.VerdictBuy},
		{"good discount quality", true, 80, 0.65, models.ConfidenceMedium, models.VerdictBuy},
		{"good discount mediocre", true, 50, 0.65, models.ConfidenceMedium, models.VerdictAccumulate},
		{"thin discount quality", true, 80, 0.9, models.ConfidenceMedium, models.VerdictAccumulate},
		{"thin discount mediocre", true, 50, 0.9, models.ConfidenceMedium, models.VerdictHold},
		{"slightly rich quality", false, 80, 1.1, models.ConfidenceHigh, models.VerdictWatchlist},
		{"slightly rich mediocre", false, 50, 1.1, models.ConfidenceHigh, models.VerdictHold},
		{"rich quality", false, 80, 1.4, models.ConfidenceMedium, models.VerdictHold},
		{"rich mediocre", false, 50, 1.4, models.ConfidenceMedium, models.VerdictReduce},
		{"very rich quality", false, 80, 2.0, models.ConfidenceMedium, models.VerdictReduce},
		{"very rich mediocre", false, 50, 2.0, models.ConfidenceMedium, models.VerdictSell},
		{"quality boundary at 65", true, 65, 0.4, models.ConfidenceHigh, models.VerdictStrongBuy},
		{"speculative overrides everything", true, 100, 0.1, models.ConfidenceSpeculative, models.VerdictInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineVerdict(tt.hasMoS, tt.quality, tt.mosRatio, tt.confidence)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestVerdictActionable(t *testing.T) {
	assert.True(t, models.VerdictStrongBuy.Actionable())
	assert.True(t, models.VerdictAccumulate.Actionable())
	assert.False(t, models.VerdictWatchlist.Actionable())
	assert.False(t, models.VerdictInsufficientData.Actionable())
}

func TestActionItems(t *testing.T) {
	items := ActionItems(models.VerdictWatchlist, "ACME", 42.50)
	assert.Len(t, items, 3)
	assert.Contains(t, items[1], "$42.50")

	assert.Nil(t, ActionItems(models.VerdictInsufficientData, "ACME", 0))
}

func TestRecommendation(t *testing.T) {
	assert.Contains(t, Recommendation(models.VerdictWatchlist, 42.5), "$42.50")
	assert.Contains(t, Recommendation(models.VerdictStrongBuy, 0), "Strong Buy")
	assert.Contains(t, Recommendation(models.VerdictInsufficientData, 0), "Insufficient data")
}
