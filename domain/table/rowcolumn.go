package table

import (
	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/well"
)

// RowColumnOptions configures AddRowColumn.
type RowColumnOptions struct {
	// WellColumn names the column holding well names. Empty means the key
	// column, or "well".
	WellColumn string
	// RowColumn and ColumnColumn name the columns to create. An empty name
	// skips that column.
	RowColumn    string
	ColumnColumn string
	// Natural writes row letters and 1-based column numbers instead of
	// zero-based indexes.
	Natural bool
	InPlace bool
}

// DefaultRowColumnOptions writes zero-based indexes to "plate_row" and
// "plate_column".
func DefaultRowColumnOptions() RowColumnOptions {
	return RowColumnOptions{RowColumn: "plate_row", ColumnColumn: "plate_column"}
}

// AddRowColumn derives physical plate position columns from a column of well
// names. Cells that do not parse as well names get Null positions.
func AddRowColumn(t *Table, opts RowColumnOptions) (*Table, error) {
	wellCol := opts.WellColumn
	if wellCol == "" {
		wellCol = t.Key()
		if wellCol == "" {
			wellCol = "well"
		}
	}
	if !t.HasColumn(wellCol) {
		return nil, core.NewMissingColumnError(wellCol, t.Columns())
	}

	out := t
	if !opts.InPlace {
		out = t.Clone()
	}
	if opts.RowColumn != "" {
		out.AddColumn(opts.RowColumn)
	}
	if opts.ColumnColumn != "" {
		out.AddColumn(opts.ColumnColumn)
	}

	for i := 0; i < out.Len(); i++ {
		rowVal, colVal := Null(), Null()
		if s, ok := out.At(i, wellCol).Str(); ok {
			if c, err := well.Parse(s); err == nil {
				if opts.Natural {
					rowVal = StringValue(well.RowLetters(c.Row))
					colVal = IntValue(int64(c.Col + 1))
				} else {
					rowVal = IntValue(int64(c.Row))
					colVal = IntValue(int64(c.Col))
				}
			}
		}
		if opts.RowColumn != "" {
			out.Set(i, opts.RowColumn, rowVal)
		}
		if opts.ColumnColumn != "" {
			out.Set(i, opts.ColumnColumn, colVal)
		}
	}
	return out, nil
}
