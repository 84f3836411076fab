package table

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/well"
)

// WideToTidy melts a plate-shaped wide table into a tidy one. The wide
// table's key column (or its first column) must hold row letters, and every
// other column name must be a 1-based plate column number. The result is
// keyed by "well" with a single value column, in the wide table's row-major
// order.
func WideToTidy(wide *Table, valueColumn string) (*Table, error) {
	if len(wide.cols) == 0 {
		return nil, core.NewMissingColumnError("row labels", nil)
	}
	labelCol := wide.Key()
	if labelCol == "" {
		labelCol = wide.cols[0]
	}

	type plateCol struct {
		name string
		col  int
	}
	var plateCols []plateCol
	for _, name := range wide.cols {
		if name == labelCol {
			continue
		}
		n, err := strconv.Atoi(name)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("column header %q is not a 1-based plate column number", name)
		}
		plateCols = append(plateCols, plateCol{name: name, col: n - 1})
	}

	out := New("well", valueColumn)
	out.SetKey("well")
	for i := 0; i < wide.Len(); i++ {
		label, ok := wide.At(i, labelCol).Str()
		if !ok {
			label = wide.At(i, labelCol).String()
		}
		row, err := well.LettersToRow(label)
		if err != nil {
			return nil, fmt.Errorf("row label %q: %w", label, err)
		}
		for _, pc := range plateCols {
			j := out.AppendEmptyRow()
			out.Set(j, "well", StringValue(well.Coordinate{Row: row, Col: pc.col}.Name()))
			out.Set(j, valueColumn, wide.At(i, pc.name))
		}
	}
	return out, nil
}

// TidyToWide pivots one column of a tidy plate table into a plate-shaped
// wide table: the "plate_row" label column holds row letters, the remaining
// columns are the 1-based plate column numbers present in the data, sorted.
// Wells absent from the input leave Null cells.
func TidyToWide(t *Table, valueColumn string) (*Table, error) {
	ft, err := Fortify(t)
	if err != nil {
		return nil, err
	}
	if !ft.HasColumn(valueColumn) {
		return nil, core.NewMissingColumnError(valueColumn, ft.Columns())
	}

	type cell struct {
		row, col int
		v        Value
	}
	var cells []cell
	rowSet := make(map[int]bool)
	colSet := make(map[int]bool)
	for i := 0; i < ft.Len(); i++ {
		name, ok := ft.At(i, "well").Str()
		if !ok {
			return nil, core.NewInvalidWellNameError(ft.At(i, "well").String())
		}
		c, err := well.Parse(name)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell{row: c.Row, col: c.Col, v: ft.At(i, valueColumn)})
		rowSet[c.Row] = true
		colSet[c.Col] = true
	}

	rows := make([]int, 0, len(rowSet))
	for r := range rowSet {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	cols := make([]int, 0, len(colSet))
	for c := range colSet {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	colNames := make([]string, len(cols))
	colIndex := make(map[int]string, len(cols))
	for i, c := range cols {
		colNames[i] = strconv.Itoa(c + 1)
		colIndex[c] = colNames[i]
	}
	rowIndex := make(map[int]int, len(rows))
	out := New(append([]string{"plate_row"}, colNames...)...)
	out.SetKey("plate_row")
	for i, r := range rows {
		j := out.AppendEmptyRow()
		out.Set(j, "plate_row", StringValue(well.RowLetters(r)))
		rowIndex[r] = i
	}

	for _, cl := range cells {
		out.Set(rowIndex[cl.row], colIndex[cl.col], cl.v)
	}
	return out, nil
}
