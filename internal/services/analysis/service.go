// Package analysis orchestrates the full pipeline: fetch statements,
// extract metrics, valuate, score, and produce the verdict report, with
// monthly snapshots persisted to history.
package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/filters"
	"github.com/Patrickdoranlearning/MOSEE/internal/intelligence"
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/metrics"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
	"github.com/Patrickdoranlearning/MOSEE/internal/scoring"
	"github.com/Patrickdoranlearning/MOSEE/internal/storage/historydb"
	"github.com/Patrickdoranlearning/MOSEE/internal/valuation"
)

// Service implements interfaces.AnalysisService.
type Service struct {
	client  interfaces.FundamentalsClient
	storage interfaces.StorageManager
	config  *common.Config
	logger  *common.Logger

	extractor *metrics.Extractor
	engine    *valuation.Engine
	scorer    *scoring.Scorer
	reporter  *intelligence.Reporter
}

// NewService creates the analysis service.
func NewService(
	client interfaces.FundamentalsClient,
	storage interfaces.StorageManager,
	config *common.Config,
	logger *common.Logger,
) *Service {
	return &Service{
		client:    client,
		storage:   storage,
		config:    config,
		logger:    logger,
		extractor: metrics.NewExtractor(&config.Analysis, logger),
		engine:    valuation.NewEngine(&config.Analysis, logger),
		scorer:    scoring.NewScorer(logger),
		reporter:  intelligence.NewReporter(&config.Analysis, logger),
	}
}

// analysisResult bundles one ticker's pipeline output before ranking.
type analysisResult struct {
	metrics   *models.FinancialMetrics
	info      models.CompanyInfo
	valuation models.CompositeValuationRange
	report    *models.IntelligenceReport
}

// Analyze runs the pipeline for one ticker and persists the monthly
// snapshot.
func (s *Service) Analyze(ctx context.Context, ticker string) (*models.IntelligenceReport, error) {
	result, err := s.analyzeOne(ctx, ticker, "")
	if err != nil {
		return nil, err
	}
	profile := s.buildProfile(result)
	s.saveSnapshot(ctx, profile)
	return result.report, nil
}

// Screen analyzes a universe, ranks by the magic formula across the set,
// applies the filter, and sorts by the requested metric. Tickers that
// fail to analyze are skipped with a warning.
func (s *Service) Screen(ctx context.Context, tickers []string, opts interfaces.ScreenOptions) ([]*models.InvestmentProfile, error) {
	if len(tickers) == 0 {
		tickers = s.config.Tickers
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to screen")
	}

	style := opts.Style
	if !style.Valid() {
		style = models.InvestmentStyle(s.config.Analysis.Style)
	}

	// Fetch and extract first: the magic formula percentile needs the
	// whole universe before per-ticker scoring.
	extracted := make(map[string]*models.FinancialMetrics, len(tickers))
	infos := make(map[string]models.CompanyInfo, len(tickers))
	var order []string
	for _, ticker := range tickers {
		fs, err := s.client.GetStatements(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("skipping ticker, statements unavailable")
			continue
		}
		extracted[ticker] = s.extractor.Extract(*fs)
		infos[ticker] = s.companyInfo(ctx, ticker)
		order = append(order, ticker)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no tickers could be analyzed")
	}

	s.applyMagicFormulaRanking(extracted)

	var profiles []*models.InvestmentProfile
	for _, ticker := range order {
		m := extracted[ticker]
		result := s.finishAnalysis(m, infos[ticker], style)
		profile := s.buildProfile(result)
		s.saveSnapshot(ctx, profile)
		profiles = append(profiles, profile)
	}

	profiles = filters.Apply(profiles, opts.Filter)
	rankProfiles(profiles, opts.SortBy)

	s.logger.Info().
		Int("universe", len(order)).
		Int("after_filter", len(profiles)).
		Str("style", string(style)).
		Msg("screen complete")

	return profiles, nil
}

// History lists a ticker's stored snapshots, oldest first.
func (s *Service) History(ctx context.Context, ticker string, months int) ([]*models.ProfileSnapshot, error) {
	return s.storage.HistoryStore().TickerHistory(ctx, ticker, months)
}

// MonthOverMonth compares the current month's snapshot with the previous
// one. Nil delta when there is no prior snapshot.
func (s *Service) MonthOverMonth(ctx context.Context, ticker string) (*models.SnapshotDelta, error) {
	month := currentMonth()
	current, err := s.storage.HistoryStore().GetSnapshot(ctx, ticker, month)
	if err != nil {
		return nil, err
	}
	previous, err := s.storage.HistoryStore().PreviousSnapshot(ctx, ticker, month)
	if err != nil {
		return nil, err
	}
	return historydb.Compare(current, previous), nil
}

func (s *Service) analyzeOne(ctx context.Context, ticker string, style models.InvestmentStyle) (*analysisResult, error) {
	fs, err := s.client.GetStatements(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statements for %s: %w", ticker, err)
	}
	m := s.extractor.Extract(*fs)
	return s.finishAnalysis(m, s.companyInfo(ctx, ticker), style), nil
}

// finishAnalysis runs the computation stages on extracted metrics. The
// balanced composite is always the quality input to valuation and the
// verdict; style only changes the score reported on the profile.
func (s *Service) finishAnalysis(m *models.FinancialMetrics, info models.CompanyInfo, style models.InvestmentStyle) *analysisResult {
	quality := s.scorer.Score(m, models.StyleBalanced)
	composite := s.engine.Valuate(m, quality.Score)
	report := s.reporter.Generate(m, composite, quality, info)
	if style.Valid() && style != models.StyleBalanced {
		styled := s.scorer.Score(m, style)
		report.Scores = styled
	}
	return &analysisResult{
		metrics:   m,
		info:      info,
		valuation: composite,
		report:    report,
	}
}

func (s *Service) companyInfo(ctx context.Context, ticker string) models.CompanyInfo {
	info, err := s.client.GetCompanyInfo(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("company info unavailable")
		return models.CompanyInfo{Ticker: ticker}
	}
	return *info
}

// applyMagicFormulaRanking ranks the universe by earnings yield and
// return on capital and writes each ticker's percentile back onto its
// metrics before scoring.
func (s *Service) applyMagicFormulaRanking(extracted map[string]*models.FinancialMetrics) {
	entries := make([]metrics.MagicFormulaEntry, 0, len(extracted))
	for ticker, m := range extracted {
		entries = append(entries, metrics.MagicFormulaEntry{
			Ticker:          ticker,
			EarningsYield:   m.EarningsYield.Or(0),
			ReturnOnCapital: m.ReturnOnCapital.Or(0),
		})
	}
	for _, e := range metrics.RankMagicFormula(entries) {
		if e.CombinedRank == 0 {
			continue
		}
		extracted[e.Ticker].MagicFormulaPercentile = models.DefinedRatio(e.Percentile)
	}
}

func (s *Service) buildProfile(result *analysisResult) *models.InvestmentProfile {
	m := result.metrics
	price := m.CurrentPrice

	var valuations models.Valuations
	var mos models.MOSScores
	mos.DCF = models.UndefinedRatio()
	mos.PAD = models.UndefinedRatio()
	mos.EarningsMultiple = models.UndefinedRatio()
	mos.BookMultiple = models.UndefinedRatio()
	mos.OwnerEarnings = models.UndefinedRatio()
	for _, r := range result.valuation.Methods {
		methodMoS := r.MarginOfSafety(price)
		switch r.Method {
		case models.MethodDCF:
			valuations.DCF = r.Base
			mos.DCF = methodMoS
		case models.MethodPAD:
			valuations.PAD = r.Base
			mos.PAD = methodMoS
		case models.MethodEarningsMultiple:
			valuations.EarningsMultiple = r.Base
			mos.EarningsMultiple = methodMoS
		case models.MethodBookMultiple:
			valuations.BookMultiple = r.Base
			mos.BookMultiple = methodMoS
		case models.MethodOwnerEarnings:
			valuations.OwnerEarnings = r.Base
			mos.OwnerEarnings = methodMoS
		}
	}

	// Data completeness and valuation agreement each carry half the
	// confidence weight.
	blended := 0.5*m.DataQualityScore + 0.5*result.valuation.ConfidenceScore

	return &models.InvestmentProfile{
		Ticker:       m.Ticker,
		Name:         result.info.Name,
		Country:      result.info.Country,
		Industry:     result.info.Industry,
		CapSize:      result.info.CapSize,
		CurrentPrice: price,
		AsOf:         time.Now().UTC(),
		Valuations:   valuations,
		MOSEE: models.MOSEEScores{
			MOS:            mos,
			EarningsEquity: m.EarningsEquity,
			AssetsLight:    m.AssetsLight,
		},
		QualityScore: result.report.Scores.Score,
		Verdict:      result.report.Verdict,
		Confidence: models.ConfidenceInfo{
			Score:          blended,
			Level:          metrics.ConfidenceLevel(blended),
			StatementYears: m.StatementYears,
		},
	}
}

func (s *Service) saveSnapshot(ctx context.Context, profile *models.InvestmentProfile) {
	snapshot := &models.ProfileSnapshot{
		Ticker:    profile.Ticker,
		Month:     currentMonth(),
		Profile:   *profile,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.storage.HistoryStore().SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn().Err(err).Str("ticker", profile.Ticker).Msg("failed to save history snapshot")
	}
}

// rankProfiles sorts in place by the requested metric and assigns rank
// and percentile (100 = best).
func rankProfiles(profiles []*models.InvestmentProfile, sortBy string) {
	less := func(a, b *models.InvestmentProfile) bool {
		switch sortBy {
		case "mos":
			// lower margin-of-safety ratio is cheaper
			return mosSortValue(a) < mosSortValue(b)
		case "quality":
			return a.QualityScore > b.QualityScore
		case "confidence":
			return a.Confidence.Score > b.Confidence.Score
		default: // "mosee"
			return moseeSortValue(a) > moseeSortValue(b)
		}
	}
	sort.SliceStable(profiles, func(i, j int) bool { return less(profiles[i], profiles[j]) })

	total := len(profiles)
	for i, p := range profiles {
		p.Rank = i + 1
		p.Percentile = math.Round(float64(total-i)/float64(total)*1000) / 10
	}
}

func moseeSortValue(p *models.InvestmentProfile) float64 {
	_, best := p.MOSEE.BestMOSEE()
	if !best.Defined {
		return math.Inf(-1)
	}
	return best.Value
}

func mosSortValue(p *models.InvestmentProfile) float64 {
	_, best := p.MOSEE.MOS.Best()
	if !best.Defined {
		return math.Inf(1)
	}
	return best.Value
}

func currentMonth() string {
	return time.Now().UTC().Format("2006-01")
}
