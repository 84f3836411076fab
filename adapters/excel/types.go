package excel

import (
	"strconv"
	"strings"

	"github.com/caseygrun/plates/domain/table"
)

// rawRows is a worksheet as excelize's GetRows or encoding/csv returns it:
// one string slice per row, possibly ragged.
type rawRows [][]string

// cell returns the trimmed cell at (row, col), or "" when out of range.
func (r rawRows) cell(row, col int) string {
	if row < 0 || row >= len(r) || col < 0 || col >= len(r[row]) {
		return ""
	}
	return strings.TrimSpace(r[row][col])
}

// width returns the widest row among r[from : from+n].
func (r rawRows) width(from, n int) int {
	w := 0
	for i := from; i < from+n && i < len(r); i++ {
		if len(r[i]) > w {
			w = len(r[i])
		}
	}
	return w
}

// parseCell converts one worksheet cell to a typed value. Empty and NA cells
// become Null; numeric cells become Int or Float.
func parseCell(cell string, na []string) table.Value {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return table.Null()
	}
	for _, s := range na {
		if cell == s {
			return table.Null()
		}
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return table.IntValue(n)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return table.FloatValue(f)
	}
	return table.StringValue(cell)
}
