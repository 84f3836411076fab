// Package platemap compiles declarative plate layouts into tidy tables.
//
// A layout is an ordered list of rules, each pairing a range expression with
// variable assignments:
//
//	m := platemap.Map{Rules: []platemap.Rule{
//		{Ranges: "A1:B6", Assign: map[string]any{"strain": "B. theta"}},
//		{Ranges: "A1:A6,B1:B6", Assign: map[string]any{"conc": []any{0, 1, 10, 100, 1000, 10000}}},
//	}}
//
// Compile expands it to one table row per well of the plate, one column per
// variable. Slice values spool across a range element-wise when their shape
// fits; see CompileWithOptions.
package platemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
	"github.com/caseygrun/plates/internal"
)

// Rule assigns variables to a range of wells. Ranges holds one range
// expression, possibly comma-separated ("A1:B6", "A:B,E:F", "C4"). Assign
// maps each variable name to the value its wells receive.
type Rule struct {
	Ranges string
	Assign map[string]any
}

// Map is an ordered plate layout. Rules apply first to last, so a later rule
// overwrites what an earlier one wrote to the same well and variable. Wells
// is the plate size; zero defers to the compile options, then to 96.
type Map struct {
	Wells int
	Rules []Rule
}

// CompileOptions controls how a Map becomes a table.
type CompileOptions struct {
	// Shape overrides the plate size when nonzero, beating Map.Wells.
	Shape well.Shape
	// IncludeRowColumn adds zero-based "row" and "column" position columns.
	IncludeRowColumn bool
	// Strict fails compilation when a slice value does not fit its range
	// instead of assigning the whole value with a warning.
	Strict bool
	Log    *internal.Logger
}

// DefaultCompileOptions compiles permissively with the process logger.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{Log: internal.DefaultLogger}
}

// Compile expands a layout onto its plate with default options.
func Compile(m Map) (*table.Table, error) {
	return CompileWithOptions(m, DefaultCompileOptions())
}

// CompileWithOptions expands a layout into a tidy table keyed by "well",
// with one row per well of the plate in row-major order and one column per
// variable the rules mention. Wells no rule touches keep Null cells.
//
// Within a rule, a slice value spools across each range segment: a
// rectangular grid matching the segment's rows x columns assigns
// element-wise, and a one-dimensional slice (flat, single-row, or
// single-column) lays along a single-row or single-column segment. A slice
// that fits neither way is assigned whole, as its display form, to every
// well of the segment, unless Strict makes that an ErrShapeMismatch. Lone
// well segments never spool.
func CompileWithOptions(m Map, opts CompileOptions) (*table.Table, error) {
	shape, err := resolveShape(opts.Shape, m.Wells)
	if err != nil {
		return nil, err
	}
	logger := opts.Log
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.WithPrefix("Platemap")

	t := seedPlate(shape, opts.IncludeRowColumn)

	for _, rule := range m.Rules {
		names := variableNames(rule.Assign)
		for _, segment := range strings.Split(rule.Ranges, ",") {
			segment = strings.TrimSpace(segment)
			if strings.Contains(segment, ":") {
				span, err := well.ParseSpan(segment, shape)
				if err != nil {
					return nil, err
				}
				if err := applySpan(t, shape, span, rule.Assign, names, opts.Strict, logger); err != nil {
					return nil, err
				}
				continue
			}
			c, err := well.Parse(segment)
			if err != nil {
				return nil, core.NewInvalidRangeError(segment, "expected a well name or range")
			}
			if !shape.Contains(c) {
				return nil, core.NewInvalidRangeError(segment, fmt.Sprintf("outside %s plate", shape))
			}
			if err := applyWell(t, shape, c, rule.Assign, names, opts.Strict, logger); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("compiled %d rules onto %s", len(m.Rules), shape)
	return t, nil
}

func resolveShape(override well.Shape, wells int) (well.Shape, error) {
	if override != (well.Shape{}) {
		return override, nil
	}
	if wells != 0 {
		return well.ShapeForWells(wells)
	}
	return well.Shape96, nil
}

func seedPlate(shape well.Shape, includeRowColumn bool) *table.Table {
	t := table.New("well")
	t.SetKey("well")
	if includeRowColumn {
		t.AddColumn("row")
		t.AddColumn("column")
	}
	for _, c := range shape.Coordinates() {
		i := t.AppendEmptyRow()
		t.Set(i, "well", table.StringValue(c.Name()))
		if includeRowColumn {
			t.Set(i, "row", table.IntValue(int64(c.Row)))
			t.Set(i, "column", table.IntValue(int64(c.Col)))
		}
	}
	return t
}

// variableNames sorts a rule's variables so application order is stable.
func variableNames(assign map[string]any) []string {
	names := make([]string, 0, len(assign))
	for name := range assign {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rowIndex maps a coordinate to its row in a seeded plate table.
func rowIndex(shape well.Shape, c well.Coordinate) int {
	return c.Row*shape.Cols + c.Col
}

func applySpan(t *table.Table, shape well.Shape, span well.Span, assign map[string]any, names []string, strict bool, logger *internal.Logger) error {
	rows, cols := span.Rows(), span.Cols()
	for _, name := range names {
		value := assign[name]
		arr, isArray := asArray(value)
		if !isArray {
			v := table.ValueOf(value)
			for _, c := range span.Coordinates(false) {
				t.Set(rowIndex(shape, c), name, v)
			}
			continue
		}

		switch {
		case arr.grid != nil && len(arr.grid) == rows && len(arr.grid[0]) == cols:
			for a := 0; a < rows; a++ {
				for b := 0; b < cols; b++ {
					c := well.Coordinate{Row: span.TopLeft.Row + a, Col: span.TopLeft.Col + b}
					t.Set(rowIndex(shape, c), name, arr.grid[a][b])
				}
			}
		case arr.flat != nil && len(arr.flat) == rows && cols == 1:
			for a := 0; a < rows; a++ {
				c := well.Coordinate{Row: span.TopLeft.Row + a, Col: span.TopLeft.Col}
				t.Set(rowIndex(shape, c), name, arr.flat[a])
			}
		case arr.flat != nil && len(arr.flat) == cols && rows == 1:
			for b := 0; b < cols; b++ {
				c := well.Coordinate{Row: span.TopLeft.Row, Col: span.TopLeft.Col + b}
				t.Set(rowIndex(shape, c), name, arr.flat[b])
			}
		default:
			rangeShape := fmt.Sprintf("%dx%d", rows, cols)
			if strict {
				return core.NewShapeMismatchError(name, arr.desc, rangeShape)
			}
			logger.Warn("variable %q: value of shape %s does not fit range %s (%s); assigning whole value to every well",
				name, arr.desc, span, rangeShape)
			v := table.ValueOf(value)
			for _, c := range span.Coordinates(false) {
				t.Set(rowIndex(shape, c), name, v)
			}
		}
	}
	return nil
}

func applyWell(t *table.Table, shape well.Shape, c well.Coordinate, assign map[string]any, names []string, strict bool, logger *internal.Logger) error {
	i := rowIndex(shape, c)
	for _, name := range names {
		value := assign[name]
		if arr, isArray := asArray(value); isArray {
			if strict {
				return core.NewShapeMismatchError(name, arr.desc, "a single well")
			}
			logger.Warn("variable %q: value of shape %s assigned whole to single well %s", name, arr.desc, c.Name())
		}
		t.Set(i, name, table.ValueOf(value))
	}
	return nil
}
