package well

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/caseygrun/plates/domain/core"
)

// Span is an inclusive rectangle of wells, normalized so TopLeft has the
// smaller row and column on each axis regardless of the corners it was built
// from.
type Span struct {
	TopLeft     Coordinate
	BottomRight Coordinate
}

// Colon range grammars: corner wells, whole rows, whole columns. Bare well
// names fall back to Parse.
var (
	spanWellsPattern = regexp.MustCompile(`^([A-Za-z]+[0-9]+):([A-Za-z]+[0-9]+)$`)
	spanRowsPattern  = regexp.MustCompile(`^([A-Za-z]+):([A-Za-z]+)$`)
	spanColsPattern  = regexp.MustCompile(`^([0-9]+):([0-9]+)$`)
)

// NewSpan builds the rectangle between two corner coordinates, sorting each
// axis so the corners may be given in any order.
func NewSpan(a, b Coordinate) Span {
	return Span{
		TopLeft:     Coordinate{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		BottomRight: Coordinate{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// ParseSpan parses a single range segment against a plate shape. Four
// grammars are recognized:
//
//	"A1:B6"  rectangle between two corner wells
//	"C:D"    whole rows C through D (all columns of the shape)
//	"2:5"    whole 1-based columns 2 through 5 (all rows of the shape)
//	"B5"     single well, a 1x1 rectangle
//
// Corner order does not matter on either axis: "C:B" equals "B:C" and
// "B1:A2" equals "A1:B2". Surrounding whitespace is tolerated. Segments that
// match no grammar, or that reach outside the shape, fail with
// ErrInvalidRange.
func ParseSpan(expr string, shape Shape) (Span, error) {
	seg := strings.TrimSpace(expr)

	var span Span
	switch {
	case spanWellsPattern.MatchString(seg):
		m := spanWellsPattern.FindStringSubmatch(seg)
		a, err := Parse(m[1])
		if err != nil {
			return Span{}, core.NewInvalidRangeError(expr, err.Error())
		}
		b, err := Parse(m[2])
		if err != nil {
			return Span{}, core.NewInvalidRangeError(expr, err.Error())
		}
		span = NewSpan(a, b)

	case spanRowsPattern.MatchString(seg):
		m := spanRowsPattern.FindStringSubmatch(seg)
		ra, err := LettersToRow(m[1])
		if err != nil {
			return Span{}, core.NewInvalidRangeError(expr, err.Error())
		}
		rb, err := LettersToRow(m[2])
		if err != nil {
			return Span{}, core.NewInvalidRangeError(expr, err.Error())
		}
		span = NewSpan(
			Coordinate{Row: ra, Col: 0},
			Coordinate{Row: rb, Col: shape.Cols - 1},
		)

	case spanColsPattern.MatchString(seg):
		m := spanColsPattern.FindStringSubmatch(seg)
		ca, _ := strconv.Atoi(m[1])
		cb, _ := strconv.Atoi(m[2])
		if ca < 1 || cb < 1 {
			return Span{}, core.NewInvalidRangeError(expr, "columns are numbered from 1")
		}
		span = NewSpan(
			Coordinate{Row: 0, Col: ca - 1},
			Coordinate{Row: shape.Rows - 1, Col: cb - 1},
		)

	default:
		c, err := Parse(seg)
		if err != nil {
			return Span{}, core.NewInvalidRangeError(expr, "expected a well, well:well, row:row, or column:column")
		}
		span = NewSpan(c, c)
	}

	if !shape.Contains(span.TopLeft) || !shape.Contains(span.BottomRight) {
		return Span{}, core.NewInvalidRangeError(expr, fmt.Sprintf("outside %s plate", shape))
	}
	return span, nil
}

// ParseRanges parses a comma-separated union of range segments, preserving
// segment order and multiplicity.
func ParseRanges(expr string, shape Shape) ([]Span, error) {
	segs := strings.Split(expr, ",")
	spans := make([]Span, 0, len(segs))
	for _, seg := range segs {
		if strings.TrimSpace(seg) == "" {
			return nil, core.NewInvalidRangeError(expr, "empty segment")
		}
		span, err := ParseSpan(seg, shape)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// Rows returns the height of the span in wells.
func (s Span) Rows() int { return s.BottomRight.Row - s.TopLeft.Row + 1 }

// Cols returns the width of the span in wells.
func (s Span) Cols() int { return s.BottomRight.Col - s.TopLeft.Col + 1 }

// Size returns the number of wells covered by the span.
func (s Span) Size() int { return s.Rows() * s.Cols() }

// Contains reports whether the coordinate lies inside the span.
func (s Span) Contains(c Coordinate) bool {
	return c.Row >= s.TopLeft.Row && c.Row <= s.BottomRight.Row &&
		c.Col >= s.TopLeft.Col && c.Col <= s.BottomRight.Col
}

// Coordinates enumerates the span row-major, or column-major when byColumns
// is set.
func (s Span) Coordinates(byColumns bool) []Coordinate {
	out := make([]Coordinate, 0, s.Size())
	if byColumns {
		for c := s.TopLeft.Col; c <= s.BottomRight.Col; c++ {
			for r := s.TopLeft.Row; r <= s.BottomRight.Row; r++ {
				out = append(out, Coordinate{Row: r, Col: c})
			}
		}
		return out
	}
	for r := s.TopLeft.Row; r <= s.BottomRight.Row; r++ {
		for c := s.TopLeft.Col; c <= s.BottomRight.Col; c++ {
			out = append(out, Coordinate{Row: r, Col: c})
		}
	}
	return out
}

// Names enumerates the span as well names, row-major.
func (s Span) Names() []string {
	coords := s.Coordinates(false)
	names := make([]string, len(coords))
	for i, c := range coords {
		names[i] = c.Name()
	}
	return names
}

func (s Span) String() string {
	return s.TopLeft.Name() + ":" + s.BottomRight.Name()
}

// ExpandRanges enumerates a comma-separated range expression as well names.
// Segments are enumerated row-major in order; wells reached by more than one
// segment appear once per segment.
func ExpandRanges(expr string, shape Shape) ([]string, error) {
	spans, err := ParseRanges(expr, shape)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, span := range spans {
		names = append(names, span.Names()...)
	}
	return names, nil
}
