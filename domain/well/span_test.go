package well

import (
	"errors"
	"strings"
	"testing"

	"github.com/caseygrun/plates/domain/core"
)

// TestParseSpan tests each range grammar against 96- and 384-well shapes
func TestParseSpan(t *testing.T) {
	shape384, _ := ShapeForWells(384)

	tests := []struct {
		expr  string
		shape Shape
		want  string
	}{
		{"A1:B7", Shape96, "A1:B7"},
		{"B7:A1", Shape96, "A1:B7"},
		{"A7:B1", Shape96, "A1:B7"},
		{"B1:A7", Shape96, "A1:B7"},
		{"A2:A10", Shape96, "A2:A10"},
		{"A1:A1", Shape96, "A1:A1"},
		{"C:D", Shape96, "C1:D12"},
		{"D:C", Shape96, "C1:D12"},
		{"B:B", Shape96, "B1:B12"},
		{"2:5", Shape96, "A2:H5"},
		{"5:2", Shape96, "A2:H5"},
		{"12:12", Shape96, "A12:H12"},
		{" A1:B2 ", Shape96, "A1:B2"},
		{"B5", Shape96, "B5:B5"},
		{" h12 ", Shape96, "H12:H12"},
		{"A:A", shape384, "A1:A24"},
		{"23:23", shape384, "A23:P23"},
		{"AA1:AB2", Shape{Rows: 32, Cols: 48}, "AA1:AB2"},
		{"AA:AB", Shape{Rows: 32, Cols: 48}, "AA1:AB48"},
	}

	for _, tc := range tests {
		span, err := ParseSpan(tc.expr, tc.shape)
		if err != nil {
			t.Errorf("ParseSpan(%q, %v): unexpected error: %v", tc.expr, tc.shape, err)
			continue
		}
		if span.String() != tc.want {
			t.Errorf("ParseSpan(%q): expected %s, got %s", tc.expr, tc.want, span.String())
		}
	}
}

func TestParseSpan_CornerOrderIrrelevant(t *testing.T) {
	a, err := ParseSpan("C:B", Shape96)
	if err != nil {
		t.Fatalf("ParseSpan(C:B): unexpected error: %v", err)
	}
	b, err := ParseSpan("B:C", Shape96)
	if err != nil {
		t.Fatalf("ParseSpan(B:C): unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("Expected C:B and B:C to normalize identically, got %v and %v", a, b)
	}
}

func TestParseSpan_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"A0",
		"A1:B2:C3",
		"A1:B",
		"1:H",
		"A0:A3",
		"0:3",
		"A1:A13",
		"I1:I3",
		"X5",
		"25:25",
		"A1-B2",
	}
	for _, expr := range invalid {
		if _, err := ParseSpan(expr, Shape96); !errors.Is(err, core.ErrInvalidRange) {
			t.Errorf("ParseSpan(%q): expected ErrInvalidRange, got %v", expr, err)
		}
	}
}

func TestParseRanges(t *testing.T) {
	spans, err := ParseRanges("A1:A3,B5:B7", Shape96)
	if err != nil {
		t.Fatalf("ParseRanges: unexpected error: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].String() != "A1:A3" || spans[1].String() != "B5:B7" {
		t.Errorf("Expected [A1:A3 B5:B7], got [%s %s]", spans[0], spans[1])
	}

	if _, err := ParseRanges("A1:A3,,B5:B7", Shape96); !errors.Is(err, core.ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange for empty segment, got %v", err)
	}

	// bare wells mix into a range list as 1x1 spans
	spans, err = ParseRanges("A1:A3,B5", Shape96)
	if err != nil {
		t.Fatalf("ParseRanges: unexpected error: %v", err)
	}
	if len(spans) != 2 || spans[1].String() != "B5:B5" {
		t.Errorf("Expected [A1:A3 B5:B5], got %v", spans)
	}
}

func TestSpan_Dimensions(t *testing.T) {
	span, err := ParseSpan("B2:D4", Shape96)
	if err != nil {
		t.Fatalf("ParseSpan: unexpected error: %v", err)
	}
	if span.Rows() != 3 || span.Cols() != 3 || span.Size() != 9 {
		t.Errorf("Expected 3x3 (9 wells), got %dx%d (%d)", span.Rows(), span.Cols(), span.Size())
	}
	if !span.Contains(Coordinate{Row: 2, Col: 2}) {
		t.Error("Expected span to contain C3")
	}
	if span.Contains(Coordinate{Row: 0, Col: 0}) {
		t.Error("Expected span not to contain A1")
	}
}

// TestSpan_Coordinates tests enumeration order in both directions
func TestSpan_Coordinates(t *testing.T) {
	span, _ := ParseSpan("A1:B2", Shape96)

	rowMajor := span.Names()
	if strings.Join(rowMajor, " ") != "A1 A2 B1 B2" {
		t.Errorf("Row-major: expected A1 A2 B1 B2, got %v", rowMajor)
	}

	coords := span.Coordinates(true)
	var colMajor []string
	for _, c := range coords {
		colMajor = append(colMajor, c.Name())
	}
	if strings.Join(colMajor, " ") != "A1 B1 A2 B2" {
		t.Errorf("Column-major: expected A1 B1 A2 B2, got %v", colMajor)
	}

	if len(coords) != span.Size() {
		t.Errorf("Expected %d coordinates, got %d", span.Size(), len(coords))
	}
}

func TestExpandRanges(t *testing.T) {
	names, err := ExpandRanges("A1:A3,B5:B7", Shape96)
	if err != nil {
		t.Fatalf("ExpandRanges: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "A1 A2 A3 B5 B6 B7" {
		t.Errorf("Expected A1 A2 A3 B5 B6 B7, got %v", names)
	}

	// overlapping segments repeat wells, one appearance per segment
	names, err = ExpandRanges("A1:A2,A2:A3", Shape96)
	if err != nil {
		t.Fatalf("ExpandRanges: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "A1 A2 A2 A3" {
		t.Errorf("Expected A1 A2 A2 A3, got %v", names)
	}

	names, err = ExpandRanges("A1:A2,D6", Shape96)
	if err != nil {
		t.Fatalf("ExpandRanges: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "A1 A2 D6" {
		t.Errorf("Expected A1 A2 D6, got %v", names)
	}
}
