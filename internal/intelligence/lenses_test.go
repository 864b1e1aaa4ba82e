package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

func TestGrahamLens(t *testing.T) {
	m := &models.FinancialMetrics{
		GrahamCriteriaScore: 7,
		PE:                  models.DefinedRatio(12),
	}

	lens := GrahamLens(m, 0.5)
	assert.Equal(t, "Graham", lens.Philosopher)
	assert.Equal(t, "Strong Buy", lens.Verdict)
	assert.Equal(t, "A", lens.Grade)
	assert.InDelta(t, 87.5, lens.Score, 1e-9)
	assert.Contains(t, lens.Insight, "7/7")
	assert.Contains(t, lens.Insight, "attractive")

	m.GrahamCriteriaScore = 1
	lens = GrahamLens(m, 1.8)
	assert.Equal(t, "Avoid", lens.Verdict)
	assert.Equal(t, "F", lens.Grade)
}

func TestBuffettLens(t *testing.T) {
	quality := &models.FinancialMetrics{
		ROE:          models.DefinedRatio(0.22),
		ROIC:         models.DefinedRatio(0.18),
		DebtToEquity: models.DefinedRatio(0.3),
	}
	lens := BuffettLens(quality, 80)
	assert.Equal(t, "Quality Business", lens.Verdict)
	assert.Equal(t, "A", lens.Grade)
	assert.Equal(t, 80.0, lens.Score)

	mediocre := &models.FinancialMetrics{ROE: models.DefinedRatio(0.05)}
	lens = BuffettLens(mediocre, 30)
	assert.Equal(t, "Mediocre Business", lens.Verdict)
	assert.Equal(t, "D", lens.Grade)
}

func TestLynchLens(t *testing.T) {
	m := &models.FinancialMetrics{
		PEG:            models.DefinedRatio(0.4),
		EarningsGrowth: 0.20,
		LynchCategory:  "Fast Grower",
	}
	lens := LynchLens(m)
	assert.Equal(t, "Strong Buy", lens.Verdict)
	assert.Equal(t, 95.0, lens.Score)
	assert.Contains(t, lens.KeyMetric, "Fast Grower")

	m.PEG = models.DefinedRatio(2.5)
	assert.Equal(t, "Avoid", LynchLens(m).Verdict)

	m.PEG = models.UndefinedRatio()
	lens = LynchLens(m)
	assert.Equal(t, "Cannot Assess", lens.Verdict)
	assert.Equal(t, 50.0, lens.Score)
	assert.Equal(t, "C", lens.Grade)
}

func TestGreenblattLens(t *testing.T) {
	tests := []struct {
		name    string
		ey, roc float64
		verdict string
		score   float64
	}{
		{"cheap and good", 0.12, 0.25, "Magic Formula Buy", 90},
		{"cheap only", 0.12, 0.10, "Cheap", 65},
		{"good only", 0.05, 0.25, "Quality but Pricey", 55},
		{"neither", 0.05, 0.10, "Pass", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lens := GreenblattLens(&models.FinancialMetrics{
				EarningsYield:   models.DefinedRatio(tt.ey),
				ReturnOnCapital: models.DefinedRatio(tt.roc),
			})
			assert.Equal(t, tt.verdict, lens.Verdict)
			assert.Equal(t, tt.score, lens.Score)
		})
	}
}

func TestFisherLens(t *testing.T) {
	m := &models.FinancialMetrics{
		SalesCAGR:          0.16,
		MarginTrend:        "Improving",
		GrowthQualityScore: 78,
	}
	lens := FisherLens(m)
	assert.Equal(t, "Excellent Growth", lens.Verdict)
	assert.Equal(t, "A", lens.Grade)
	assert.Equal(t, 78.0, lens.Score)

	m.SalesCAGR = 0.11
	m.MarginTrend = "Declining"
	lens = FisherLens(m)
	assert.Equal(t, "Good Growth", lens.Verdict)
	assert.Equal(t, "C", lens.Grade)
	assert.Contains(t, lens.Insight, "declining")

	m.SalesCAGR = -0.02
	assert.Equal(t, "F", FisherLens(m).Grade)
}
