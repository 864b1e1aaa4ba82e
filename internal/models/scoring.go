package models

// InvestmentStyle selects the lens weighting used to blend component scores.
type InvestmentStyle string

const (
	StyleDeepValue    InvestmentStyle = "deep_value"
	StyleQualityValue InvestmentStyle = "quality_value"
	StyleGARP         InvestmentStyle = "garp"
	StyleMagicFormula InvestmentStyle = "magic_formula"
	StyleGrowth       InvestmentStyle = "growth"
	StyleBalanced     InvestmentStyle = "balanced"
)

// Lens names, one per investing philosophy.
const (
	LensGraham     = "graham"
	LensBuffett    = "buffett"
	LensLynch      = "lynch"
	LensGreenblatt = "greenblatt"
	LensFisher     = "fisher"
)

// StyleWeights maps lens name to blend weight. Weights sum to 1.
type StyleWeights map[string]float64

var styleWeights = map[InvestmentStyle]StyleWeights{
	StyleDeepValue: {
		LensGraham: 0.35, LensBuffett: 0.25, LensLynch: 0.10, LensGreenblatt: 0.20, LensFisher: 0.10,
	},
	StyleQualityValue: {
		LensGraham: 0.15, LensBuffett: 0.40, LensLynch: 0.15, LensGreenblatt: 0.15, LensFisher: 0.15,
	},
	StyleGARP: {
		LensGraham: 0.15, LensBuffett: 0.20, LensLynch: 0.35, LensGreenblatt: 0.10, LensFisher: 0.20,
	},
	StyleMagicFormula: {
		LensGraham: 0.10, LensBuffett: 0.15, LensLynch: 0.15, LensGreenblatt: 0.45, LensFisher: 0.15,
	},
	StyleGrowth: {
		LensGraham: 0.10, LensBuffett: 0.15, LensLynch: 0.25, LensGreenblatt: 0.10, LensFisher: 0.40,
	},
	StyleBalanced: {
		LensGraham: 0.20, LensBuffett: 0.20, LensLynch: 0.20, LensGreenblatt: 0.20, LensFisher: 0.20,
	},
}

// Weights returns the lens weighting for the style, falling back to balanced
// for unknown styles.
func (s InvestmentStyle) Weights() StyleWeights {
	if w, ok := styleWeights[s]; ok {
		return w
	}
	return styleWeights[StyleBalanced]
}

// Valid reports whether the style is one of the known presets.
func (s InvestmentStyle) Valid() bool {
	_, ok := styleWeights[s]
	return ok
}

// AllStyles lists the style presets in a stable order.
func AllStyles() []InvestmentStyle {
	return []InvestmentStyle{
		StyleDeepValue, StyleQualityValue, StyleGARP,
		StyleMagicFormula, StyleGrowth, StyleBalanced,
	}
}

// ComponentScore is one lens's 0-100 score with its contributing parts.
type ComponentScore struct {
	Lens    string             `json:"lens"`
	Score   float64            `json:"score"`
	Parts   map[string]float64 `json:"parts,omitempty"`
	Details map[string]string  `json:"details,omitempty"`
}

// CompositeScore is the style-weighted blend of the five lens scores.
type CompositeScore struct {
	Ticker     string                    `json:"ticker"`
	Style      InvestmentStyle           `json:"style"`
	Score      float64                   `json:"score"`
	Grade      string                    `json:"grade"`
	Components map[string]ComponentScore `json:"components"`
	Strengths  []string                  `json:"strengths,omitempty"`
	Weaknesses []string                  `json:"weaknesses,omitempty"`
}

// ScoreGrade maps a 0-100 composite score to a letter grade.
func ScoreGrade(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
