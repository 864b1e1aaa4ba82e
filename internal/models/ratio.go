// Package models defines data structures for MOSEE
package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Ratio is a financial ratio that may be undefined. A ratio is undefined
// when its denominator is zero or an input is missing; Infinite marks the
// benign flavour of division by zero (e.g. interest coverage with no
// interest expense means no debt risk, not missing data).
//
// Callers must check Defined before using Value; undefined ratios are
// excluded from scoring bands rather than scored as zero.
type Ratio struct {
	Value    float64
	Defined  bool
	Infinite bool
}

// DefinedRatio returns a defined ratio with the given value.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// UndefinedRatio returns an undefined ratio.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// InfiniteRatio returns the "no limit" sentinel (e.g. coverage with no debt).
func InfiniteRatio() Ratio {
	return Ratio{Value: math.Inf(1), Infinite: true}
}

// NewRatio divides num by den, returning an undefined ratio when den is zero.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(num / den)
}

// Or returns the ratio's value, or def when the ratio is not defined.
func (r Ratio) Or(def float64) float64 {
	if !r.Defined {
		return def
	}
	return r.Value
}

// String formats the ratio for report details.
func (r Ratio) String() string {
	if r.Infinite {
		return "inf"
	}
	if !r.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// MarshalJSON serializes defined ratios as their number and everything
// else as null, so downstream stores never see IEEE infinities.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined || r.Infinite {
		return []byte("null"), nil
	}
	return json.Marshal(Round(r.Value, 4))
}

// UnmarshalJSON accepts a number or null.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UndefinedRatio()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = DefinedRatio(v)
	return nil
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
