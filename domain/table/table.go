package table

import (
	"fmt"
	"sort"

	"github.com/caseygrun/plates/domain/core"
)

// Table is a small column-ordered table of nullable scalar cells. Columns
// keep the order they were first added in; rows are dense and hold one Value
// per column. An optional key column names the rows (for plate tables this is
// "well").
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
	key   string
}

// New creates an empty table with the given columns.
func New(cols ...string) *Table {
	t := &Table{index: make(map[string]int)}
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.cols...)
	c.key = t.key
	c.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = make([]Value, len(row))
		copy(c.rows[i], row)
	}
	return c
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.cols))
	copy(cols, t.cols)
	return cols
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddColumn appends a column, backfilling existing rows with Null. Adding an
// existing column is a no-op.
func (t *Table) AddColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Null())
	}
}

// RenameColumn renames a column in place, keeping its position.
func (t *Table) RenameColumn(old, new string) error {
	pos, ok := t.index[old]
	if !ok {
		return core.NewMissingColumnError(old, t.cols)
	}
	if new == old {
		return nil
	}
	if _, exists := t.index[new]; exists {
		return fmt.Errorf("%w: %q", core.ErrColumnExists, new)
	}
	delete(t.index, old)
	t.index[new] = pos
	t.cols[pos] = new
	if t.key == old {
		t.key = new
	}
	return nil
}

// DropColumn removes a column if present. Dropping the key column clears the
// key.
func (t *Table) DropColumn(name string) {
	pos, ok := t.index[name]
	if !ok {
		return
	}
	delete(t.index, name)
	t.cols = append(t.cols[:pos], t.cols[pos+1:]...)
	for c := pos; c < len(t.cols); c++ {
		t.index[t.cols[c]] = c
	}
	for i := range t.rows {
		t.rows[i] = append(t.rows[i][:pos], t.rows[i][pos+1:]...)
	}
	if t.key == name {
		t.key = ""
	}
}

// AppendEmptyRow adds an all-Null row and returns its index.
func (t *Table) AppendEmptyRow() int {
	row := make([]Value, len(t.cols))
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// AppendRow adds a row from a cell map, creating any columns it has not seen.
func (t *Table) AppendRow(cells map[string]Value) int {
	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)
	i := t.AppendEmptyRow()
	for _, name := range names {
		t.Set(i, name, cells[name])
	}
	return i
}

// At returns the cell at a row and column; Null for columns the table does
// not have. Row indexes out of range panic.
func (t *Table) At(row int, col string) Value {
	pos, ok := t.index[col]
	if !ok {
		return Null()
	}
	return t.rows[row][pos]
}

// Set writes a cell, adding the column if needed.
func (t *Table) Set(row int, col string, v Value) {
	pos, ok := t.index[col]
	if !ok {
		t.AddColumn(col)
		pos = t.index[col]
	}
	t.rows[row][pos] = v
}

// Row returns a copy of one row as a cell map.
func (t *Table) Row(i int) map[string]Value {
	out := make(map[string]Value, len(t.cols))
	for c, name := range t.cols {
		out[name] = t.rows[i][c]
	}
	return out
}

// Column returns a copy of one column's values, Null-filled if absent.
func (t *Table) Column(name string) []Value {
	out := make([]Value, len(t.rows))
	pos, ok := t.index[name]
	if !ok {
		return out
	}
	for i := range t.rows {
		out[i] = t.rows[i][pos]
	}
	return out
}

// SetKey marks an existing column as the row key.
func (t *Table) SetKey(col string) error {
	if !t.HasColumn(col) {
		return core.NewMissingColumnError(col, t.cols)
	}
	t.key = col
	return nil
}

// Key returns the key column name, empty if unset.
func (t *Table) Key() string { return t.key }

// RowByKey returns the index of the first row whose key cell equals v.
func (t *Table) RowByKey(v Value) (int, bool) {
	if t.key == "" {
		return 0, false
	}
	pos := t.index[t.key]
	for i := range t.rows {
		if t.rows[i][pos].Equal(v) {
			return i, true
		}
	}
	return 0, false
}

// Filter returns a new table with the rows keep reports true for, preserving
// order.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := New(t.cols...)
	out.key = t.key
	for i := range t.rows {
		if !keep(i) {
			continue
		}
		row := make([]Value, len(t.rows[i]))
		copy(row, t.rows[i])
		out.rows = append(out.rows, row)
	}
	return out
}

// SortBy stably reorders rows in place by the given comparison.
func (t *Table) SortBy(less func(i, j int) bool) {
	sort.SliceStable(t.rows, func(i, j int) bool { return less(i, j) })
}

// FillNull replaces Null cells in the named columns with defaults, adding
// missing columns first so a default always lands somewhere.
func (t *Table) FillNull(defaults map[string]Value) {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.AddColumn(name)
		pos := t.index[name]
		for i := range t.rows {
			if t.rows[i][pos].IsNull() {
				t.rows[i][pos] = defaults[name]
			}
		}
	}
}

// DropNull returns a table without the rows that hold a Null in any of the
// named columns (all columns when none are named).
func (t *Table) DropNull(cols ...string) *Table {
	if len(cols) == 0 {
		cols = t.cols
	}
	return t.Filter(func(i int) bool {
		for _, name := range cols {
			if t.At(i, name).IsNull() {
				return false
			}
		}
		return true
	})
}

// Concat appends tables vertically, taking the union of columns in
// first-seen order and Null-filling cells a source table does not have. The
// key of the first table is kept when every table shares it.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, src := range tables {
		if src == nil {
			continue
		}
		for _, col := range src.cols {
			out.AddColumn(col)
		}
		for i := range src.rows {
			j := out.AppendEmptyRow()
			for c, name := range src.cols {
				out.Set(j, name, src.rows[i][c])
			}
		}
	}
	if len(tables) > 0 && tables[0] != nil && tables[0].key != "" {
		shared := true
		for _, src := range tables {
			if src == nil || src.key != tables[0].key {
				shared = false
				break
			}
		}
		if shared {
			out.key = tables[0].key
		}
	}
	return out
}

// Join left-joins right onto t by equality of the on column: every row of t
// is kept, matched against the first right row with the same on value, and
// Null-filled when none matches. Columns of right other than on must not
// collide with columns of t.
func (t *Table) Join(right *Table, on string) (*Table, error) {
	return t.join(right, on, true)
}

// InnerJoin is Join keeping only the rows of t that found a match.
func (t *Table) InnerJoin(right *Table, on string) (*Table, error) {
	return t.join(right, on, false)
}

func (t *Table) join(right *Table, on string, keepUnmatched bool) (*Table, error) {
	if !t.HasColumn(on) {
		return nil, core.NewMissingColumnError(on, t.cols)
	}
	if !right.HasColumn(on) {
		return nil, core.NewMissingColumnError(on, right.cols)
	}
	var rightCols []string
	for _, col := range right.cols {
		if col == on {
			continue
		}
		if t.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q appears in both sides of join", core.ErrColumnExists, col)
		}
		rightCols = append(rightCols, col)
	}

	out := New(t.cols...)
	out.key = t.key
	for _, col := range rightCols {
		out.AddColumn(col)
	}

	rpos := right.index[on]
	for i := range t.rows {
		key := t.At(i, on)
		match, found := -1, false
		for j := range right.rows {
			if right.rows[j][rpos].Equal(key) {
				match, found = j, true
				break
			}
		}
		if !found && !keepUnmatched {
			continue
		}
		r := out.AppendEmptyRow()
		for c, name := range t.cols {
			out.Set(r, name, t.rows[i][c])
		}
		if found {
			for _, name := range rightCols {
				out.Set(r, name, right.At(match, name))
			}
		}
	}
	return out, nil
}
