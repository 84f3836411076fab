package well

import (
	"fmt"

	"github.com/caseygrun/plates/domain/core"
)

// PlateWell is a well name qualified by a zero-based plate index, for walks
// that spill over from one plate to the next.
type PlateWell struct {
	Plate int
	Well  string
}

// Walk yields count sequential well names starting from start (default "A1"),
// walking the plate row by row, or column by column when byColumns is set.
// The walk wraps at the plate edge and from the last well back to the first.
func Walk(count int, start string, shape Shape, byColumns bool) ([]string, error) {
	pws, err := WalkPlates(count, start, 0, shape, byColumns)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(pws))
	for i, pw := range pws {
		names[i] = pw.Well
	}
	return names, nil
}

// WalkPlates is Walk with plate overflow tracking: wrapping past the last
// well advances to the next plate index.
func WalkPlates(count int, start string, startPlate int, shape Shape, byColumns bool) ([]PlateWell, error) {
	if start == "" {
		start = "A1"
	}
	c, err := Parse(start)
	if err != nil {
		return nil, err
	}
	if !shape.Contains(c) {
		return nil, core.NewInvalidRangeError(start, fmt.Sprintf("start well outside %s plate", shape))
	}

	plate := startPlate
	out := make([]PlateWell, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, PlateWell{Plate: plate, Well: c.Name()})
		if byColumns {
			c.Row++
			if c.Row >= shape.Rows {
				c.Row = 0
				c.Col++
				if c.Col >= shape.Cols {
					c.Col = 0
					plate++
				}
			}
		} else {
			c.Col++
			if c.Col >= shape.Cols {
				c.Col = 0
				c.Row++
				if c.Row >= shape.Rows {
					c.Row = 0
					plate++
				}
			}
		}
	}
	return out, nil
}
