package well

import (
	"fmt"

	"github.com/caseygrun/plates/domain/core"
)

// Shape is a plate geometry in rows and columns.
type Shape struct {
	Rows int
	Cols int
}

// Standard microplate geometries by well count.
var standardShapes = map[int]Shape{
	6:    {2, 3},
	12:   {3, 4},
	24:   {4, 6},
	48:   {6, 8},
	96:   {8, 12},
	384:  {16, 24},
	1536: {32, 48},
}

var standardSizes = []int{6, 12, 24, 48, 96, 384, 1536}

// Shape96 is the default plate geometry.
var Shape96 = Shape{Rows: 8, Cols: 12}

// ShapeForWells returns the standard geometry for a well count, or
// ErrUnknownPlateSize for counts outside the standard series.
func ShapeForWells(wells int) (Shape, error) {
	s, ok := standardShapes[wells]
	if !ok {
		return Shape{}, core.NewUnknownPlateSizeError(wells, StandardSizes())
	}
	return s, nil
}

// StandardSizes returns the standard well counts in ascending order.
func StandardSizes() []int {
	sizes := make([]int, len(standardSizes))
	copy(sizes, standardSizes)
	return sizes
}

// Wells returns the number of wells on the plate.
func (s Shape) Wells() int {
	return s.Rows * s.Cols
}

// Contains reports whether the coordinate lies on the plate.
func (s Shape) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols
}

// Coordinates enumerates every well of the plate, row-major.
func (s Shape) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, s.Wells())
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			out = append(out, Coordinate{Row: r, Col: c})
		}
	}
	return out
}

func (s Shape) String() string {
	return fmt.Sprintf("%d-well (%dx%d)", s.Wells(), s.Rows, s.Cols)
}
