// Package filters narrows a screened universe of investment profiles by
// country, market cap bucket, industry, and minimum data confidence.
package filters

import (
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
)

// Presets returns the named filter configurations.
func Presets() map[string]*interfaces.FilterSpec {
	return map[string]*interfaces.FilterSpec{
		"us_only": {
			Countries:        []string{"United States"},
			ExcludeCountries: []string{"Russia"},
			CapSizes:         []string{"mega", "large"},
		},
		"developed_markets": {
			Countries: []string{
				"United States", "United Kingdom", "Germany", "France",
				"Japan", "Canada", "Australia", "Netherlands", "Switzerland",
			},
			ExcludeCountries: []string{"Russia", "China"},
			CapSizes:         []string{"mega", "large"},
		},
		"global_mega": {
			CapSizes:         []string{"mega"},
			ExcludeCountries: []string{"Russia"},
		},
		"tech_focus": {
			Industries: []string{
				"Software - Infrastructure", "Semiconductors",
				"Internet Content & Information", "Consumer Electronics",
				"Software - Application", "Information Technology Services",
			},
			ExcludeCountries: []string{"Russia", "China"},
		},
		"dividend_stocks": {
			Industries: []string{
				"Banks - Diversified", "Insurance - Diversified",
				"Utilities - Regulated Electric", "Oil & Gas Integrated",
			},
			CapSizes: []string{"mega", "large"},
		},
	}
}

// Preset looks up a named filter. Nil when unknown.
func Preset(name string) *interfaces.FilterSpec {
	return Presets()[name]
}

// Apply returns the profiles that pass every dimension of the spec.
// A nil spec passes everything.
func Apply(profiles []*models.InvestmentProfile, spec *interfaces.FilterSpec) []*models.InvestmentProfile {
	if spec == nil {
		return profiles
	}
	var out []*models.InvestmentProfile
	for _, p := range profiles {
		if Matches(p, spec) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether one profile passes the spec.
func Matches(p *models.InvestmentProfile, spec *interfaces.FilterSpec) bool {
	if spec == nil {
		return true
	}
	if len(spec.Countries) > 0 && !contains(spec.Countries, p.Country) {
		return false
	}
	if contains(spec.ExcludeCountries, p.Country) {
		return false
	}
	if len(spec.CapSizes) > 0 && !contains(spec.CapSizes, p.CapSize) {
		return false
	}
	if len(spec.Industries) > 0 && !contains(spec.Industries, p.Industry) {
		return false
	}
	if contains(spec.ExcludeIndustries, p.Industry) {
		return false
	}
	if spec.MinConfidence != "" &&
		confidenceRank(p.Confidence.Level) < confidenceRank(spec.MinConfidence) {
		return false
	}
	return true
}

// Summary describes what a filter removed from a universe.
type Summary struct {
	OriginalCount int `json:"original_count"`
	FilteredCount int `json:"filtered_count"`
	RemovedCount  int `json:"removed_count"`
}

// Summarize applies the spec and reports the counts.
func Summarize(profiles []*models.InvestmentProfile, spec *interfaces.FilterSpec) ([]*models.InvestmentProfile, Summary) {
	filtered := Apply(profiles, spec)
	return filtered, Summary{
		OriginalCount: len(profiles),
		FilteredCount: len(filtered),
		RemovedCount:  len(profiles) - len(filtered),
	}
}

func confidenceRank(c models.Confidence) int {
	switch c {
	case models.ConfidenceHigh:
		return 3
	case models.ConfidenceMedium:
		return 2
	case models.ConfidenceLow:
		return 1
	default:
		return 0
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
