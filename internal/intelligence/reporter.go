package intelligence

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Reporter assembles the full intelligence report for a ticker.
type Reporter struct {
	config *common.AnalysisConfig
	logger *common.Logger
}

// NewReporter creates a report assembler.
func NewReporter(config *common.AnalysisConfig, logger *common.Logger) *Reporter {
	return &Reporter{config: config, logger: logger}
}

// Generate combines metrics, valuation and quality score into the final
// report. The quality score is the balanced composite, regardless of the
// style the caller screens with.
func (r *Reporter) Generate(
	m *models.FinancialMetrics,
	valuation models.CompositeValuationRange,
	quality models.CompositeScore,
	info models.CompanyInfo,
) *models.IntelligenceReport {
	qualityScore := quality.Score
	mos := valuation.MarginOfSafety(m.CurrentPrice)

	mosRatio := math.Inf(1)
	if mos.Defined && !mos.Infinite {
		mosRatio = mos.Value
	}
	hasMoS := mosRatio <= r.config.RequiredMoS
	buyBelow := valuation.BuyBelowPrice(r.config.RequiredMoS)

	verdict := DetermineVerdict(hasMoS, qualityScore, mosRatio, valuation.Confidence)

	report := &models.IntelligenceReport{
		RunID:          uuid.NewString(),
		Ticker:         m.Ticker,
		Name:           info.Name,
		GeneratedAt:    time.Now().UTC(),
		CurrentPrice:   m.CurrentPrice,
		Valuation:      valuation,
		Scores:         quality,
		MarginOfSafety: mos,
		BuyBelowPrice:  buyBelow,
		Verdict:        verdict,
		QualityGrade:   models.QualityGrade(qualityScore),
		Confidence:     valuation.Confidence,
		Recommendation: Recommendation(verdict, buyBelow),
		KeyStrengths:   r.strengths(m, qualityScore, hasMoS, mosRatio),
		KeyConcerns:    r.concerns(m, qualityScore, hasMoS, mosRatio),
		ActionItems:    ActionItems(verdict, m.Ticker, buyBelow),
		Lenses: []models.InvestmentLens{
			GrahamLens(m, mosRatio),
			BuffettLens(m, qualityScore),
			LynchLens(m),
			GreenblattLens(m),
			FisherLens(m),
		},
	}

	if r.logger != nil {
		r.logger.Info().
			Str("ticker", m.Ticker).
			Str("verdict", string(verdict)).
			Str("quality_grade", report.QualityGrade).
			Str("confidence", string(valuation.Confidence)).
			Msg("intelligence report generated")
	}
	return report
}

func (r *Reporter) strengths(m *models.FinancialMetrics, qualityScore float64, hasMoS bool, mosRatio float64) []string {
	var out []string
	if qualityScore >= 70 {
		out = append(out, fmt.Sprintf("High quality business (score: %.0f)", qualityScore))
	}
	if roe := m.ROE.Or(0); roe >= 0.15 {
		out = append(out, fmt.Sprintf("Strong ROE of %.1f%%", roe*100))
	}
	if roic := m.ROIC.Or(0); roic >= 0.12 {
		out = append(out, fmt.Sprintf("Excellent ROIC of %.1f%%", roic*100))
	}
	if hasMoS {
		out = append(out, fmt.Sprintf("Trading with margin of safety (%.0f%% of conservative value)", mosRatio*100))
	}
	if m.PEG.Defined && !m.PEG.Infinite && m.PEG.Value > 0 && m.PEG.Value < 1 {
		out = append(out, fmt.Sprintf("Attractive PEG ratio of %.2f", m.PEG.Value))
	}
	if m.InterestCoverage.Infinite || m.InterestCoverage.Or(0) >= 5 {
		out = append(out, "Strong interest coverage - low debt risk")
	}
	return out
}

func (r *Reporter) concerns(m *models.FinancialMetrics, qualityScore float64, hasMoS bool, mosRatio float64) []string {
	var out []string
	if !hasMoS {
		if math.IsInf(mosRatio, 1) {
			out = append(out, "No margin of safety - no conservative value floor to measure against")
		} else {
			out = append(out, fmt.Sprintf("No margin of safety - trading at %.0f%% of conservative value", mosRatio*100))
		}
	}
	if qualityScore < 50 {
		out = append(out, fmt.Sprintf("Below average quality (score: %.0f)", qualityScore))
	}
	if de := m.DebtToEquity.Or(0); de > 1 {
		out = append(out, fmt.Sprintf("High debt to equity: %.2f", de))
	}
	if m.ROE.Or(0) < 0.10 {
		out = append(out, fmt.Sprintf("Low ROE of %.1f%%", m.ROE.Or(0)*100))
	}
	if m.EarningsGrowth < 0 {
		out = append(out, "Declining earnings")
	}
	return out
}
