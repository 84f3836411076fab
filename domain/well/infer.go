package well

import (
	"fmt"
	"sort"

	"github.com/caseygrun/plates/domain/core"
)

// InferShape returns the smallest standard plate geometry that holds every
// named well. ErrUnknownPlateSize if even a 1536-well plate cannot.
func InferShape(names []string) (Shape, error) {
	return InferShapeWithin(names, nil, 0)
}

// InferShapePrefer is InferShape with a preferred well count: when the
// preferred plate holds every well it wins even if a smaller plate would do.
func InferShapePrefer(names []string, prefer int) (Shape, error) {
	return InferShapeWithin(names, nil, prefer)
}

// InferShapeWithin restricts inference to the given candidate well counts
// (nil means all standard sizes, ascending).
func InferShapeWithin(names []string, candidates []int, prefer int) (Shape, error) {
	rows, cols := 0, 0
	for _, name := range names {
		c, err := Parse(name)
		if err != nil {
			return Shape{}, err
		}
		rows = max(rows, c.Row+1)
		cols = max(cols, c.Col+1)
	}

	if candidates == nil {
		candidates = standardSizes
	} else {
		sorted := make([]int, len(candidates))
		copy(sorted, candidates)
		sort.Ints(sorted)
		candidates = sorted
	}
	var fits []int
	for _, size := range candidates {
		shape, err := ShapeForWells(size)
		if err != nil {
			return Shape{}, err
		}
		if shape.Rows >= rows && shape.Cols >= cols {
			fits = append(fits, size)
		}
	}
	if len(fits) == 0 {
		return Shape{}, fmt.Errorf("%w: no candidate plate holds %d rows x %d columns",
			core.ErrUnknownPlateSize, rows, cols)
	}
	for _, size := range fits {
		if size == prefer {
			return ShapeForWells(size)
		}
	}
	return ShapeForWells(fits[0])
}
