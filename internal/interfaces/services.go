// Package interfaces defines the service contracts for MOSEE
package interfaces

import (
	"context"

	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// AnalysisService runs the full pipeline for tickers.
type AnalysisService interface {
	// Analyze runs statements through extraction, valuation, scoring and
	// the verdict engine for one ticker, persisting a monthly snapshot.
	Analyze(ctx context.Context, ticker string) (*models.IntelligenceReport, error)

	// Screen analyzes a universe of tickers, ranks them by the magic
	// formula and MOSEE, and applies the filter. Tickers that fail to
	// analyze are skipped, not fatal.
	Screen(ctx context.Context, tickers []string, opts ScreenOptions) ([]*models.InvestmentProfile, error)

	// History lists a ticker's stored snapshots, oldest first.
	History(ctx context.Context, ticker string, months int) ([]*models.ProfileSnapshot, error)

	// MonthOverMonth compares the current month's snapshot with the
	// previous one. Nil delta when there is no prior snapshot.
	MonthOverMonth(ctx context.Context, ticker string) (*models.SnapshotDelta, error)
}

// ScreenOptions configures a screening run.
type ScreenOptions struct {
	Style  models.InvestmentStyle // scoring style preset; empty = config default
	SortBy string                 // "mosee" (default), "mos", "quality", "confidence"
	Filter *FilterSpec            // nil = no filtering
}

// FilterSpec narrows a screened universe. Nil or empty slices mean
// "no restriction" for that dimension.
type FilterSpec struct {
	Countries         []string
	ExcludeCountries  []string
	CapSizes          []string
	Industries        []string
	ExcludeIndustries []string
	MinConfidence     models.Confidence
}
