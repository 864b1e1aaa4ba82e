package models

import "time"

// Valuations holds the per-method base estimates for profile display.
type Valuations struct {
	DCF              float64 `json:"dcf,omitempty"`
	PAD              float64 `json:"payback_adjusted_dividend,omitempty"`
	EarningsMultiple float64 `json:"earnings_multiple,omitempty"`
	BookMultiple     float64 `json:"book_multiple,omitempty"`
	OwnerEarnings    float64 `json:"owner_earnings,omitempty"`
}

// MOSScores holds the price-to-conservative ratio per method. Each entry is
// undefined when the method produced no usable floor.
type MOSScores struct {
	DCF              Ratio `json:"dcf"`
	PAD              Ratio `json:"payback_adjusted_dividend"`
	EarningsMultiple Ratio `json:"earnings_multiple"`
	BookMultiple     Ratio `json:"book_multiple"`
	OwnerEarnings    Ratio `json:"owner_earnings"`
}

// Best returns the lowest defined margin-of-safety ratio with its method
// name. Lower is cheaper. Undefined when no method has one.
func (m MOSScores) Best() (string, Ratio) {
	best := UndefinedRatio()
	method := ""
	for _, e := range []struct {
		name string
		r    Ratio
	}{
		{MethodDCF, m.DCF},
		{MethodPAD, m.PAD},
		{MethodEarningsMultiple, m.EarningsMultiple},
		{MethodBookMultiple, m.BookMultiple},
		{MethodOwnerEarnings, m.OwnerEarnings},
	} {
		if !e.r.Defined || e.r.Infinite {
			continue
		}
		if !best.Defined || e.r.Value < best.Value {
			best = e.r
			method = e.name
		}
	}
	return method, best
}

// MOSEEScores combine the per-method margins of safety with the
// earnings-to-equity yield used for cross-ticker ranking.
type MOSEEScores struct {
	MOS            MOSScores `json:"mos"`
	EarningsEquity Ratio     `json:"earnings_equity"`
	AssetsLight    Ratio     `json:"assets_light"`
}

// MOSEE is the ranking figure for one method: earnings-to-equity yield
// divided by the method's margin-of-safety ratio. Cheap stocks with high
// earnings yield score highest. Undefined when either input is unusable.
func (s MOSEEScores) MOSEE(mos Ratio) Ratio {
	if !s.EarningsEquity.Defined || s.EarningsEquity.Infinite {
		return UndefinedRatio()
	}
	if !mos.Defined || mos.Infinite || mos.Value <= 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(s.EarningsEquity.Value / mos.Value)
}

// BestMOSEE returns the highest defined MOSEE across methods with its
// method name. Undefined when no method has one.
func (s MOSEEScores) BestMOSEE() (string, Ratio) {
	best := UndefinedRatio()
	method := ""
	for _, e := range []struct {
		name string
		r    Ratio
	}{
		{MethodDCF, s.MOS.DCF},
		{MethodPAD, s.MOS.PAD},
		{MethodEarningsMultiple, s.MOS.EarningsMultiple},
		{MethodBookMultiple, s.MOS.BookMultiple},
		{MethodOwnerEarnings, s.MOS.OwnerEarnings},
	} {
		mosee := s.MOSEE(e.r)
		if !mosee.Defined {
			continue
		}
		if !best.Defined || mosee.Value > best.Value {
			best = mosee
			method = e.name
		}
	}
	return method, best
}

// ConfidenceInfo summarises how complete the underlying data was.
type ConfidenceInfo struct {
	Score          float64    `json:"score"`
	Level          Confidence `json:"level"`
	StatementYears int        `json:"statement_years"`
	MissingFields  []string   `json:"missing_fields,omitempty"`
}

// InvestmentProfile is the compact per-ticker record used for screening
// lists and history snapshots.
type InvestmentProfile struct {
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name,omitempty"`
	Country      string    `json:"country,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	CapSize      string    `json:"cap_size,omitempty"`
	CurrentPrice float64   `json:"current_price"`
	AsOf         time.Time `json:"as_of"`

	Valuations   Valuations     `json:"valuations"`
	MOSEE        MOSEEScores    `json:"mosee"`
	QualityScore float64        `json:"quality_score"`
	Verdict      Verdict        `json:"verdict"`
	Confidence   ConfidenceInfo `json:"confidence"`

	// Filled in by universe ranking; zero until ranked.
	Rank       int     `json:"rank,omitempty"`
	Percentile float64 `json:"percentile,omitempty"`
}

// ProfileSnapshot is one stored monthly observation of a ticker's profile.
// Key is Ticker + Month so re-running an analysis within the same month
// overwrites rather than appends.
type ProfileSnapshot struct {
	ID        string            `json:"id" badgerhold:"key"`
	Ticker    string            `json:"ticker" badgerhold:"index"`
	Month     string            `json:"month"` // YYYY-MM
	Profile   InvestmentProfile `json:"profile"`
	CreatedAt time.Time         `json:"created_at"`
}

// SnapshotDelta is the month-over-month movement between two snapshots.
type SnapshotDelta struct {
	Ticker        string  `json:"ticker"`
	FromMonth     string  `json:"from_month"`
	ToMonth       string  `json:"to_month"`
	PriceChange   float64 `json:"price_change_pct"`
	QualityChange float64 `json:"quality_change"`
	VerdictFrom   Verdict `json:"verdict_from"`
	VerdictTo     Verdict `json:"verdict_to"`
	BestMoSFrom   Ratio   `json:"best_mos_from"`
	BestMoSTo     Ratio   `json:"best_mos_to"`
}
