package excel

import (
	"fmt"
	"strconv"

	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// ReadKCJunior reads a KC Junior export. The grid sits two rows below a
// "Raw Data" marker and carries no labels of its own: rows are lettered by
// position and columns numbered 1..N.
func ReadKCJunior(path string, cfg ReadConfig) (*table.Table, error) {
	if cfg.Marker == "" && cfg.HeaderRow == 0 {
		cfg.Marker = "Raw Data"
	}
	r := NewReaderWithConfig(path, cfg)

	rows, err := r.loadRows()
	if err != nil {
		return nil, err
	}
	m, err := r.headerIndex(rows)
	if err != nil {
		return nil, err
	}

	first := m + 2 // the marker row and the line after it are not data
	if first+r.config.PlateRows > len(rows) {
		return nil, fmt.Errorf("expected %d grid rows below row %d of %s, found %d",
			r.config.PlateRows, m+1, path, len(rows)-first)
	}
	width := rows.width(first, r.config.PlateRows)
	if width == 0 {
		return nil, fmt.Errorf("no data in the %d rows below row %d of %s", r.config.PlateRows, m+1, path)
	}

	cols := []string{"plate_row"}
	for c := 1; c <= width; c++ {
		cols = append(cols, strconv.Itoa(c))
	}
	wide := table.New(cols...)
	wide.SetKey("plate_row")
	for i := 0; i < r.config.PlateRows; i++ {
		j := wide.AppendEmptyRow()
		wide.Set(j, "plate_row", table.StringValue(well.RowLetters(i)))
		for c := 0; c < width; c++ {
			wide.Set(j, cols[c+1], parseCell(rows.cell(first+i, c), r.config.NAValues))
		}
	}
	return r.tidy(wide)
}
