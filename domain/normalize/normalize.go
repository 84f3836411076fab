package normalize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
)

// Key identifies one group: the grouping columns and the values this group
// holds for them. A group over no columns has an empty Key.
type Key struct {
	Columns []string
	Values  []table.Value
}

// Value returns the key's value for a grouping column, Null if the column is
// not part of the key.
func (k Key) Value(column string) table.Value {
	for i, c := range k.Columns {
		if c == column {
			return k.Values[i]
		}
	}
	return table.Null()
}

func (k Key) String() string {
	parts := make([]string, len(k.Columns))
	for i := range k.Columns {
		parts[i] = k.Columns[i] + "=" + k.Values[i].String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (k Key) compare(other Key) int {
	for i := range k.Values {
		if c := k.Values[i].Compare(other.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Transform rewrites one group's series. It receives the group's key and the
// group's full rows for context, and returns a series of the same length;
// NaN entries keep the original cell untouched.
type Transform func(s *Series, key Key, group *table.Table) (*Series, error)

// Config tells Normalize what to transform.
type Config struct {
	// Value names the column being normalized.
	Value string
	// On names the column whose values index each group's series, such as a
	// timepoint or concentration. Empty leaves the series unindexed.
	On string
	// GroupBy lists the columns whose distinct value combinations form
	// groups. On is excluded automatically; an empty list makes one group
	// of the whole table.
	GroupBy []string
	// How is applied to each group.
	How Transform
}

// Normalize applies cfg.How to the cfg.Value column of every group and
// returns a table of the same shape. Rows come back group by group with
// groups in sorted key order; within a group the input order is kept, and so
// is the input's column order. Null grouping values form groups of their
// own.
func Normalize(t *table.Table, cfg Config) (*table.Table, error) {
	if cfg.How == nil {
		return nil, fmt.Errorf("normalize: a How transform is required")
	}
	if !t.HasColumn(cfg.Value) {
		return nil, core.NewMissingColumnError(cfg.Value, t.Columns())
	}
	if cfg.On != "" && !t.HasColumn(cfg.On) {
		return nil, core.NewMissingColumnError(cfg.On, t.Columns())
	}

	groupCols := make([]string, 0, len(cfg.GroupBy))
	for _, col := range cfg.GroupBy {
		if col == cfg.On {
			continue
		}
		if !t.HasColumn(col) {
			return nil, core.NewMissingColumnError(col, t.Columns())
		}
		groupCols = append(groupCols, col)
	}

	groups := partition(t, groupCols)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key.compare(groups[j].key) < 0
	})

	out := table.New(t.Columns()...)
	if t.Key() != "" {
		out.SetKey(t.Key())
	}
	for _, g := range groups {
		s := &Series{
			Index:  make([]table.Value, len(g.rows)),
			Values: make([]float64, len(g.rows)),
		}
		for i, row := range g.rows {
			if cfg.On != "" {
				s.Index[i] = t.At(row, cfg.On)
			} else {
				s.Index[i] = table.Null()
			}
			if f, ok := t.At(row, cfg.Value).Float64(); ok {
				s.Values[i] = f
			} else {
				s.Values[i] = math.NaN()
			}
		}

		rows := g.rows
		groupTable := t.Filter(func(i int) bool {
			for _, r := range rows {
				if r == i {
					return true
				}
			}
			return false
		})

		res, err := cfg.How(s, g.key, groupTable)
		if err != nil {
			return nil, fmt.Errorf("normalize: group %s: %w", g.key, err)
		}
		if res == nil {
			return nil, fmt.Errorf("normalize: group %s: transform returned no series", g.key)
		}
		if len(res.Values) != len(g.rows) {
			return nil, fmt.Errorf("%w: group %s: transform returned %d values for %d rows",
				core.ErrLengthMismatch, g.key, len(res.Values), len(g.rows))
		}

		for i, row := range g.rows {
			r := out.AppendEmptyRow()
			for _, col := range t.Columns() {
				out.Set(r, col, t.At(row, col))
			}
			if !math.IsNaN(res.Values[i]) {
				out.Set(r, cfg.Value, table.FloatValue(res.Values[i]))
			}
		}
	}
	return out, nil
}

type group struct {
	key  Key
	rows []int
}

// partition splits row indexes by the distinct value tuples of the grouping
// columns, keeping each group's rows in input order.
func partition(t *table.Table, cols []string) []group {
	if len(cols) == 0 {
		rows := make([]int, t.Len())
		for i := range rows {
			rows[i] = i
		}
		return []group{{key: Key{}, rows: rows}}
	}

	var groups []group
	for i := 0; i < t.Len(); i++ {
		values := make([]table.Value, len(cols))
		for c, col := range cols {
			values[c] = t.At(i, col)
		}
		found := false
		for g := range groups {
			if sameKey(groups[g].key.Values, values) {
				groups[g].rows = append(groups[g].rows, i)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, group{key: Key{Columns: cols, Values: values}, rows: []int{i}})
		}
	}
	return groups
}

func sameKey(a, b []table.Value) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
