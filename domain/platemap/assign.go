package platemap

import (
	"fmt"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// Separation selects how AssignWells keeps sample groups apart.
type Separation int

const (
	// SeparateNone places all samples consecutively on one run of plates.
	SeparateNone Separation = iota
	// SeparatePlates starts each group on a fresh plate.
	SeparatePlates
	// SeparateRows starts each group at the beginning of the next row.
	SeparateRows
)

// AssignOptions configures AssignWells.
type AssignOptions struct {
	// Shape is the plate size; zero means 96-well.
	Shape well.Shape
	// SeparateBy names a column whose distinct values split the samples
	// into groups, kept in first-appearance order.
	SeparateBy string
	// Separation places each group on its own plate or row. Without
	// SeparateBy it is ignored.
	Separation Separation
	// StartWells gives each group its starting well under SeparatePlates
	// (missing entries default to "A1"). Otherwise only the first entry is
	// used, as the starting well of the whole walk.
	StartWells []string
	// ByColumns walks wells down columns instead of across rows.
	ByColumns bool
	// WellColumn and PlateColumn name the columns added to the output;
	// empty means "well" and "plate".
	WellColumn  string
	PlateColumn string
}

// AssignWells arranges the rows of a sample table onto one or more plates,
// adding a well name column and a zero-based plate index column. Samples
// walk the plate in order, wrapping onto further plates as needed; grouped
// samples are emitted group by group.
func AssignWells(samples *table.Table, opts AssignOptions) (*table.Table, error) {
	shape := opts.Shape
	if shape == (well.Shape{}) {
		shape = well.Shape96
	}
	wellCol := opts.WellColumn
	if wellCol == "" {
		wellCol = "well"
	}
	plateCol := opts.PlateColumn
	if plateCol == "" {
		plateCol = "plate"
	}
	for _, name := range []string{wellCol, plateCol} {
		if samples.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", core.ErrColumnExists, name)
		}
	}

	out := table.New(append(samples.Columns(), wellCol, plateCol)...)
	if samples.Key() != "" {
		out.SetKey(samples.Key())
	}
	emit := func(rowIdx int, pw well.PlateWell) {
		r := out.AppendEmptyRow()
		for _, name := range samples.Columns() {
			out.Set(r, name, samples.At(rowIdx, name))
		}
		out.Set(r, wellCol, table.StringValue(pw.Well))
		out.Set(r, plateCol, table.IntValue(int64(pw.Plate)))
	}

	startWell := func(i int) string {
		if i < len(opts.StartWells) && opts.StartWells[i] != "" {
			return opts.StartWells[i]
		}
		return "A1"
	}

	// One continuous walk when nothing separates the samples.
	if opts.SeparateBy == "" || opts.Separation == SeparateNone {
		assigned, err := well.WalkPlates(samples.Len(), startWell(0), 0, shape, opts.ByColumns)
		if err != nil {
			return nil, err
		}
		for i := 0; i < samples.Len(); i++ {
			emit(i, assigned[i])
		}
		return out, nil
	}

	groups, err := groupRowsBy(samples, opts.SeparateBy)
	if err != nil {
		return nil, err
	}

	plate := 0
	start := startWell(0)
	for gi, group := range groups {
		if opts.Separation == SeparatePlates {
			start = startWell(gi)
		}
		assigned, err := well.WalkPlates(len(group), start, plate, shape, opts.ByColumns)
		if err != nil {
			return nil, err
		}
		for k, rowIdx := range group {
			emit(rowIdx, assigned[k])
		}
		if len(assigned) == 0 {
			continue
		}

		last := assigned[len(assigned)-1]
		if opts.Separation == SeparatePlates {
			plate = last.Plate + 1
			continue
		}
		// SeparateRows: the next group begins on the row after the last
		// assigned well, spilling onto a fresh plate when the rows run out.
		c, err := well.Parse(last.Well)
		if err != nil {
			return nil, err
		}
		if c.Row+1 >= shape.Rows {
			plate = last.Plate + 1
			start = "A1"
		} else {
			plate = last.Plate
			start = well.Coordinate{Row: c.Row + 1, Col: 0}.Name()
		}
	}
	return out, nil
}

// groupRowsBy partitions row indexes by the distinct values of a column, in
// first-appearance order. Null is a value like any other.
func groupRowsBy(t *table.Table, column string) ([][]int, error) {
	if !t.HasColumn(column) {
		return nil, core.NewMissingColumnError(column, t.Columns())
	}
	var keys []table.Value
	var groups [][]int
	for i := 0; i < t.Len(); i++ {
		v := t.At(i, column)
		found := false
		for k, key := range keys {
			if key.Equal(v) {
				groups[k] = append(groups[k], i)
				found = true
				break
			}
		}
		if !found {
			keys = append(keys, v)
			groups = append(groups, []int{i})
		}
	}
	return groups, nil
}
