package scoring

import (
	"fmt"
	"sort"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Scorer blends the five lens scores into a style-weighted composite.
type Scorer struct {
	logger *common.Logger
}

// NewScorer creates a composite scorer.
func NewScorer(logger *common.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// Score grades the ticker through every lens and blends by style weights.
// Lenses scoring 70 or above become strengths, below 40 weaknesses.
func (s *Scorer) Score(m *models.FinancialMetrics, style models.InvestmentStyle) models.CompositeScore {
	components := map[string]models.ComponentScore{
		models.LensGraham:     GrahamScore(m),
		models.LensBuffett:    BuffettScore(m),
		models.LensLynch:      LynchScore(m),
		models.LensGreenblatt: GreenblattScore(m),
		models.LensFisher:     FisherScore(m),
	}

	weights := style.Weights()
	var total float64
	for lens, component := range components {
		total += component.Score * weights[lens]
	}

	composite := models.CompositeScore{
		Ticker:     m.Ticker,
		Style:      style,
		Score:      total,
		Grade:      models.ScoreGrade(total),
		Components: components,
	}

	// Stable order so repeated runs produce identical output.
	lenses := make([]string, 0, len(components))
	for lens := range components {
		lenses = append(lenses, lens)
	}
	sort.Strings(lenses)
	for _, lens := range lenses {
		component := components[lens]
		label := fmt.Sprintf("%s: %.0f/100", lens, component.Score)
		if component.Score >= 70 {
			composite.Strengths = append(composite.Strengths, label)
		} else if component.Score < 40 {
			composite.Weaknesses = append(composite.Weaknesses, label)
		}
	}

	if s.logger != nil {
		s.logger.Debug().
			Str("ticker", m.Ticker).
			Str("style", string(style)).
			Float64("score", total).
			Str("grade", composite.Grade).
			Msg("composite score computed")
	}
	return composite
}

// ScoreAllStyles runs the composite for every style preset, keyed by style.
func (s *Scorer) ScoreAllStyles(m *models.FinancialMetrics) map[models.InvestmentStyle]models.CompositeScore {
	out := make(map[models.InvestmentStyle]models.CompositeScore, len(models.AllStyles()))
	for _, style := range models.AllStyles() {
		out[style] = s.Score(m, style)
	}
	return out
}
