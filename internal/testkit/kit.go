// Package testkit provides testing utilities and fixtures shared by tests
// across the module.
package testkit

import (
	"math"

	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// MakeTable builds a table from column names and rows of cell values, one
// table.ValueOf per cell. Short rows leave their trailing cells Null.
func MakeTable(cols []string, rows ...[]any) *table.Table {
	t := table.New(cols...)
	for _, row := range rows {
		i := t.AppendEmptyRow()
		for j, cell := range row {
			if j >= len(cols) {
				break
			}
			t.Set(i, cols[j], table.ValueOf(cell))
		}
	}
	return t
}

// MakePlateTable is MakeTable keyed by its first column, for tidy plate
// fixtures whose rows lead with a well name.
func MakePlateTable(cols []string, rows ...[]any) *table.Table {
	t := MakeTable(cols, rows...)
	if len(cols) > 0 {
		if err := t.SetKey(cols[0]); err != nil {
			panic(err)
		}
	}
	return t
}

// ApproxEqual reports whether two floats agree within tol. Two NaNs agree.
func ApproxEqual(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol
}

// Wells expands a range expression on a standard plate, panicking on
// malformed input. Fixture construction only.
func Wells(expr string, wells int) []string {
	shape, err := well.ShapeForWells(wells)
	if err != nil {
		panic(err)
	}
	names, err := well.ExpandRanges(expr, shape)
	if err != nil {
		panic(err)
	}
	return names
}
