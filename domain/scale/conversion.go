// Package scale rescales tidy plate tables between plate sizes and combines
// several plates into one larger plate.
package scale

import (
	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/well"
)

// Conversion maps each well of a source plate shape onto the rectangle of
// wells it covers in a larger destination shape. Conversions are cheap to
// build; nothing is cached.
type Conversion struct {
	From, To  well.Shape
	ratioRows int
	ratioCols int
}

// NewConversion fails with ErrIncompatibleShapes unless the destination rows
// and columns are integer multiples of the source's.
func NewConversion(from, to well.Shape) (Conversion, error) {
	if from.Rows <= 0 || from.Cols <= 0 {
		return Conversion{}, core.NewIncompatibleShapesError(from.String(), to.String(), "source plate has no wells")
	}
	if to.Rows%from.Rows != 0 || to.Cols%from.Cols != 0 {
		return Conversion{}, core.NewIncompatibleShapesError(from.String(), to.String(),
			"destination rows and columns must be integer multiples of the source's")
	}
	return Conversion{
		From:      from,
		To:        to,
		ratioRows: to.Rows / from.Rows,
		ratioCols: to.Cols / from.Cols,
	}, nil
}

// Ratios returns how many destination rows and columns each source well
// covers.
func (cv Conversion) Ratios() (rows, cols int) {
	return cv.ratioRows, cv.ratioCols
}

// ExpandCoordinate returns the destination rectangle of a source coordinate,
// row-major.
func (cv Conversion) ExpandCoordinate(c well.Coordinate) []well.Coordinate {
	out := make([]well.Coordinate, 0, cv.ratioRows*cv.ratioCols)
	for r := cv.ratioRows * c.Row; r < cv.ratioRows*(c.Row+1); r++ {
		for cc := cv.ratioCols * c.Col; cc < cv.ratioCols*(c.Col+1); cc++ {
			out = append(out, well.Coordinate{Row: r, Col: cc})
		}
	}
	return out
}

// Expand returns the destination well names for a source well name.
func (cv Conversion) Expand(name string) ([]string, error) {
	c, err := well.Parse(name)
	if err != nil {
		return nil, err
	}
	if !cv.From.Contains(c) {
		return nil, core.NewInvalidRangeError(name, "outside "+cv.From.String()+" plate")
	}
	coords := cv.ExpandCoordinate(c)
	names := make([]string, len(coords))
	for i, dst := range coords {
		names[i] = dst.Name()
	}
	return names, nil
}

// Wells returns the source plate's well names row-major.
func (cv Conversion) Wells() []string {
	coords := cv.From.Coordinates()
	names := make([]string, len(coords))
	for i, c := range coords {
		names[i] = c.Name()
	}
	return names
}

// Mapping returns the whole source-to-destination well map.
func (cv Conversion) Mapping() map[string][]string {
	out := make(map[string][]string, cv.From.Wells())
	for _, c := range cv.From.Coordinates() {
		names, _ := cv.Expand(c.Name())
		out[c.Name()] = names
	}
	return out
}
