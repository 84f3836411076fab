// Package normalize applies per-group transformations to one column of a
// tidy table, e.g. subtracting each growth curve's zero timepoint.
package normalize

import (
	"math"

	"github.com/caseygrun/plates/domain/table"
)

// Series is one group's numeric values paired with the index values they are
// keyed by. Cells that were Null or non-numeric appear as NaN.
type Series struct {
	Index  []table.Value
	Values []float64
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Values) }

// Clone returns a copy transforms can mutate freely.
func (s *Series) Clone() *Series {
	c := &Series{
		Index:  make([]table.Value, len(s.Index)),
		Values: make([]float64, len(s.Values)),
	}
	copy(c.Index, s.Index)
	copy(c.Values, s.Values)
	return c
}

// At returns every value whose index equals idx.
func (s *Series) At(idx table.Value) []float64 {
	var out []float64
	for i, v := range s.Index {
		if v.Equal(idx) {
			out = append(out, s.Values[i])
		}
	}
	return out
}

// Finite returns the values that are not NaN.
func (s *Series) Finite() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
