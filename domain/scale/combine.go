package scale

import (
	"fmt"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// CombineOptions controls how a grid of plates maps onto one larger plate.
type CombineOptions struct {
	// From is the shape of every source plate; zero means 96-well. To is
	// the destination shape; zero derives it from the source shape and the
	// layout dimensions.
	From, To well.Shape
	// InterleaveRows places one row from each source plate before moving to
	// the next row, instead of stacking each plate as a contiguous block.
	// InterleaveColumns does the same for columns.
	InterleaveRows    bool
	InterleaveColumns bool
	// SourceWellColumn, when set, names a column recording each row's well
	// on its source plate. SourcePlateColumn records the source plate's
	// row-major index in the layout.
	SourceWellColumn  string
	SourcePlateColumn string
}

// Combine merges a grid of same-shape tidy plate tables onto one larger
// plate: layout [[a, b], [c, d]] puts a top-left, b top-right, c bottom-left
// and d bottom-right. Nil grid entries leave their region empty. The output
// is keyed by "well" and sorted row-major by destination well; "row" and
// "column" columns, when any source carries them, are rewritten for the
// destination.
func Combine(layout [][]*table.Table, opts CombineOptions) (*table.Table, error) {
	from := opts.From
	if from == (well.Shape{}) {
		from = well.Shape96
	}
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, core.NewIncompatibleShapesError(from.String(), opts.To.String(), "empty plate layout")
	}
	gridRows, gridCols := len(layout), len(layout[0])
	for _, row := range layout {
		if len(row) != gridCols {
			return nil, core.NewIncompatibleShapesError(from.String(), opts.To.String(), "ragged plate layout")
		}
	}

	to := opts.To
	if to == (well.Shape{}) {
		to = well.Shape{Rows: from.Rows * gridRows, Cols: from.Cols * gridCols}
	}
	if from.Rows*gridRows != to.Rows {
		return nil, core.NewIncompatibleShapesError(from.String(), to.String(),
			fmt.Sprintf("%d source rows x %d layout rows != %d destination rows", from.Rows, gridRows, to.Rows))
	}
	if from.Cols*gridCols != to.Cols {
		return nil, core.NewIncompatibleShapesError(from.String(), to.String(),
			fmt.Sprintf("%d source columns x %d layout columns != %d destination columns", from.Cols, gridCols, to.Cols))
	}
	ratioRows := to.Rows / from.Rows
	ratioCols := to.Cols / from.Cols

	out := table.New("well")
	out.SetKey("well")
	for gr, layoutRow := range layout {
		for gc, plate := range layoutRow {
			if plate == nil {
				continue
			}
			ft, err := table.Fortify(plate)
			if err != nil {
				return nil, fmt.Errorf("layout plate (%d, %d): %w", gr, gc, err)
			}
			for i := 0; i < ft.Len(); i++ {
				name, ok := ft.At(i, "well").Str()
				if !ok {
					return nil, core.NewInvalidWellNameError(ft.At(i, "well").String())
				}
				src, err := well.Parse(name)
				if err != nil {
					return nil, err
				}
				if !from.Contains(src) {
					return nil, core.NewInvalidRangeError(name, fmt.Sprintf("outside %s plate", from))
				}

				dst := src
				if opts.InterleaveRows {
					dst.Row = ratioRows*src.Row + gr
				} else {
					dst.Row = src.Row + from.Rows*gr
				}
				if opts.InterleaveColumns {
					dst.Col = ratioCols*src.Col + gc
				} else {
					dst.Col = src.Col + from.Cols*gc
				}

				r := out.AppendEmptyRow()
				for _, col := range ft.Columns() {
					if col == "well" {
						continue
					}
					out.Set(r, col, ft.At(i, col))
				}
				out.Set(r, "well", table.StringValue(dst.Name()))
				if opts.SourceWellColumn != "" {
					out.Set(r, opts.SourceWellColumn, table.StringValue(src.Name()))
				}
				if opts.SourcePlateColumn != "" {
					out.Set(r, opts.SourcePlateColumn, table.IntValue(int64(gr*gridCols+gc)))
				}
			}
		}
	}

	if out.HasColumn("row") || out.HasColumn("column") {
		rowCol, colCol := "", ""
		if out.HasColumn("row") {
			rowCol = "row"
		}
		if out.HasColumn("column") {
			colCol = "column"
		}
		if _, err := table.AddRowColumn(out, table.RowColumnOptions{
			WellColumn:   "well",
			RowColumn:    rowCol,
			ColumnColumn: colCol,
			InPlace:      true,
		}); err != nil {
			return nil, err
		}
	}
	sortByWell(out)
	return out, nil
}
