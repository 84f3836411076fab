package platemap

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/caseygrun/plates/domain/table"
)

// spoolArray is the array form of an assignment value. grid holds the value
// when it nests into an even rectangle; flat holds the squeezed
// one-dimensional form (a flat slice, a single grid row, or a single grid
// column). desc names the shape for diagnostics, e.g. "2x3" or "4".
type spoolArray struct {
	grid [][]table.Value
	flat []table.Value
	desc string
}

// asArray reports whether a value spools as an array. Strings and byte
// slices stay scalar. Ragged nesting degrades to a one-dimensional array of
// display forms.
func asArray(v any) (spoolArray, bool) {
	rv, ok := sliceOf(v)
	if !ok {
		return spoolArray{}, false
	}
	n := rv.Len()

	if n > 0 {
		if first, ok := sliceOf(rv.Index(0).Interface()); ok {
			width := first.Len()
			grid := make([][]table.Value, n)
			rect := width > 0
			for i := 0; i < n && rect; i++ {
				row, ok := sliceOf(rv.Index(i).Interface())
				if !ok || row.Len() != width {
					rect = false
					break
				}
				grid[i] = make([]table.Value, width)
				for j := 0; j < width; j++ {
					grid[i][j] = table.ValueOf(row.Index(j).Interface())
				}
			}
			if rect {
				a := spoolArray{grid: grid, desc: fmt.Sprintf("%dx%d", n, width)}
				switch {
				case n == 1:
					a.flat = grid[0]
				case width == 1:
					a.flat = make([]table.Value, n)
					for i := range grid {
						a.flat[i] = grid[i][0]
					}
				}
				return a, true
			}
		}
	}

	flat := make([]table.Value, n)
	for i := 0; i < n; i++ {
		flat[i] = table.ValueOf(rv.Index(i).Interface())
	}
	return spoolArray{flat: flat, desc: strconv.Itoa(n)}, true
}

func sliceOf(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	switch v.(type) {
	case string, []byte:
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv, true
	}
	return reflect.Value{}, false
}
