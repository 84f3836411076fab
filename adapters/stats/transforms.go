// Package stats provides ready-made normalization transforms for
// normalize.Normalize: reference subtraction, scaling, and standardization.
package stats

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/caseygrun/plates/domain/normalize"
	"github.com/caseygrun/plates/domain/table"
)

// Identity returns every group unchanged. Useful as a placeholder and for
// regrouping without modification.
func Identity() normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		return s, nil
	}
}

// SubtractReference subtracts the mean of each group's values at the given
// index, e.g. SubtractReference(0) zeroes each curve at its first timepoint.
func SubtractReference(at any) normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		ref, err := referenceMean(s, at)
		if err != nil {
			return nil, err
		}
		out := s.Clone()
		floats.AddConst(-ref, out.Values)
		return out, nil
	}
}

// DivideByReference divides each group by the mean of its values at the
// given index.
func DivideByReference(at any) normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		ref, err := referenceMean(s, at)
		if err != nil {
			return nil, err
		}
		if ref == 0 {
			return nil, fmt.Errorf("reference at %v is zero", at)
		}
		out := s.Clone()
		for i := range out.Values {
			out.Values[i] /= ref
		}
		return out, nil
	}
}

// PercentOf rescales each group to percent of the mean of its values at the
// given index.
func PercentOf(at any) normalize.Transform {
	divide := DivideByReference(at)
	return func(s *normalize.Series, key normalize.Key, group *table.Table) (*normalize.Series, error) {
		out, err := divide(s, key, group)
		if err != nil {
			return nil, err
		}
		for i := range out.Values {
			out.Values[i] *= 100
		}
		return out, nil
	}
}

// SubtractMin subtracts each group's smallest value, flooring the group at
// zero. Groups with no numeric values pass through unchanged.
func SubtractMin() normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		finite := s.Finite()
		if len(finite) == 0 {
			return s, nil
		}
		min, err := stats.Min(finite)
		if err != nil {
			return nil, err
		}
		out := s.Clone()
		floats.AddConst(-min, out.Values)
		return out, nil
	}
}

// MinMax rescales each group linearly onto [0, 1]. A group whose values are
// all equal has no range to scale and fails.
func MinMax() normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		finite := s.Finite()
		if len(finite) == 0 {
			return s, nil
		}
		min, err := stats.Min(finite)
		if err != nil {
			return nil, err
		}
		max, err := stats.Max(finite)
		if err != nil {
			return nil, err
		}
		if max == min {
			return nil, fmt.Errorf("cannot rescale a group with zero range (all values %v)", min)
		}
		out := s.Clone()
		for i := range out.Values {
			out.Values[i] = (out.Values[i] - min) / (max - min)
		}
		return out, nil
	}
}

// ZScore standardizes each group to zero mean and unit sample standard
// deviation.
func ZScore() normalize.Transform {
	return func(s *normalize.Series, _ normalize.Key, _ *table.Table) (*normalize.Series, error) {
		finite := s.Finite()
		if len(finite) == 0 {
			return s, nil
		}
		mean := stat.Mean(finite, nil)
		sd := stat.StdDev(finite, nil)
		if sd == 0 || math.IsNaN(sd) {
			return nil, fmt.Errorf("cannot standardize a group with zero variance")
		}
		out := s.Clone()
		for i := range out.Values {
			out.Values[i] = (out.Values[i] - mean) / sd
		}
		return out, nil
	}
}

// referenceMean averages the non-NaN values a group holds at an index value.
func referenceMean(s *normalize.Series, at any) (float64, error) {
	matched := s.At(table.ValueOf(at))
	finite := make([]float64, 0, len(matched))
	for _, v := range matched {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, fmt.Errorf("no values at reference index %v", at)
	}
	return stats.Mean(finite)
}
