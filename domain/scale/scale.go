package scale

import (
	"fmt"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// Options controls rescaling output.
type Options struct {
	// IncludeRowColumn writes zero-based "row" and "column" columns for the
	// destination wells, creating them if needed. When false, any existing
	// row and column columns are dropped instead of carrying stale source
	// positions.
	IncludeRowColumn bool
}

// DefaultOptions keeps row and column position columns.
func DefaultOptions() Options {
	return Options{IncludeRowColumn: true}
}

// Plate rescales a tidy plate table with default options.
func Plate(t *table.Table, from, to well.Shape) (*table.Table, error) {
	return PlateWithOptions(t, from, to, DefaultOptions())
}

// PlateWithOptions copies every row of a tidy plate table onto the rectangle
// of destination wells its source well covers. A 24-well table scaled to 96
// yields four rows per source well. The output is keyed by "well" and sorted
// row-major by destination well.
func PlateWithOptions(t *table.Table, from, to well.Shape, opts Options) (*table.Table, error) {
	cv, err := NewConversion(from, to)
	if err != nil {
		return nil, err
	}
	ft, err := table.Fortify(t)
	if err != nil {
		return nil, err
	}

	out := table.New(ft.Columns()...)
	out.SetKey("well")
	for i := 0; i < ft.Len(); i++ {
		name, ok := ft.At(i, "well").Str()
		if !ok {
			return nil, core.NewInvalidWellNameError(ft.At(i, "well").String())
		}
		c, err := well.Parse(name)
		if err != nil {
			return nil, err
		}
		if !cv.From.Contains(c) {
			return nil, core.NewInvalidRangeError(name, fmt.Sprintf("outside %s plate", cv.From))
		}
		for _, dst := range cv.ExpandCoordinate(c) {
			r := out.AppendEmptyRow()
			for _, col := range ft.Columns() {
				out.Set(r, col, ft.At(i, col))
			}
			out.Set(r, "well", table.StringValue(dst.Name()))
			if opts.IncludeRowColumn {
				out.Set(r, "row", table.IntValue(int64(dst.Row)))
				out.Set(r, "column", table.IntValue(int64(dst.Col)))
			}
		}
	}
	if !opts.IncludeRowColumn {
		out.DropColumn("row")
		out.DropColumn("column")
	}
	sortByWell(out)
	return out, nil
}

// sortByWell orders rows row-major by their well name. Rows that fail to
// parse sort first; callers only pass tables whose wells they built.
func sortByWell(t *table.Table) {
	t.SortBy(func(i, j int) bool {
		a, errA := parseWellAt(t, i)
		b, errB := parseWellAt(t, j)
		if errA != nil || errB != nil {
			return errA != nil && errB == nil
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
}

func parseWellAt(t *table.Table, i int) (well.Coordinate, error) {
	name, ok := t.At(i, "well").Str()
	if !ok {
		return well.Coordinate{}, core.NewInvalidWellNameError(t.At(i, "well").String())
	}
	return well.Parse(name)
}
