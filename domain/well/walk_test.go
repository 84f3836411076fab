package well

import (
	"errors"
	"strings"
	"testing"

	"github.com/caseygrun/plates/domain/core"
)

func TestWalk_Rows(t *testing.T) {
	names, err := Walk(4, "A11", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "A11 A12 B1 B2" {
		t.Errorf("Expected A11 A12 B1 B2, got %v", names)
	}
}

func TestWalk_Columns(t *testing.T) {
	names, err := Walk(4, "G1", Shape96, true)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "G1 H1 A2 B2" {
		t.Errorf("Expected G1 H1 A2 B2, got %v", names)
	}
}

// TestWalk_WrapsAroundPlate tests that the walk continues from A1 after the
// last well
func TestWalk_WrapsAroundPlate(t *testing.T) {
	names, err := Walk(2, "H12", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "H12 A1" {
		t.Errorf("Expected H12 A1, got %v", names)
	}

	names, err = Walk(13, "H1", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if names[11] != "H12" || names[12] != "A1" {
		t.Errorf("Expected ... H12 A1, got %v", names[10:])
	}
}

func TestWalk_Defaults(t *testing.T) {
	names, err := Walk(3, "", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if strings.Join(names, " ") != "A1 A2 A3" {
		t.Errorf("Expected A1 A2 A3, got %v", names)
	}

	names, err = Walk(0, "A1", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no wells for count 0, got %v", names)
	}
}

func TestWalk_BadStart(t *testing.T) {
	if _, err := Walk(1, "@3", Shape96, false); !errors.Is(err, core.ErrInvalidWellName) {
		t.Errorf("Expected ErrInvalidWellName, got %v", err)
	}
	if _, err := Walk(1, "X1", Shape96, false); !errors.Is(err, core.ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange for start outside plate, got %v", err)
	}
}

// TestWalk_MatchesSpanEnumeration tests that walking as many wells as a
// whole-row span holds visits exactly the span's wells, in the same order
func TestWalk_MatchesSpanEnumeration(t *testing.T) {
	span, err := ParseSpan("A:B", Shape96)
	if err != nil {
		t.Fatalf("ParseSpan: unexpected error: %v", err)
	}
	walked, err := Walk(span.Size(), "A1", Shape96, false)
	if err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	if strings.Join(walked, " ") != strings.Join(span.Names(), " ") {
		t.Errorf("Expected the walk to match the span enumeration, got %v vs %v", walked, span.Names())
	}
}

// TestWalkPlates tests plate overflow tracking
func TestWalkPlates(t *testing.T) {
	pws, err := WalkPlates(3, "H11", 0, Shape96, false)
	if err != nil {
		t.Fatalf("WalkPlates: unexpected error: %v", err)
	}
	want := []PlateWell{
		{Plate: 0, Well: "H11"},
		{Plate: 0, Well: "H12"},
		{Plate: 1, Well: "A1"},
	}
	for i := range want {
		if pws[i] != want[i] {
			t.Errorf("Well %d: expected %+v, got %+v", i, want[i], pws[i])
		}
	}
}

func TestWalkPlates_StartPlate(t *testing.T) {
	pws, err := WalkPlates(2, "A1", 3, Shape96, false)
	if err != nil {
		t.Fatalf("WalkPlates: unexpected error: %v", err)
	}
	if pws[0].Plate != 3 || pws[1].Plate != 3 {
		t.Errorf("Expected both wells on plate 3, got %+v", pws)
	}
}

func TestWalkPlates_ColumnOverflow(t *testing.T) {
	shape, _ := ShapeForWells(6)
	pws, err := WalkPlates(7, "A1", 0, shape, true)
	if err != nil {
		t.Fatalf("WalkPlates: unexpected error: %v", err)
	}
	var got []string
	for _, pw := range pws {
		got = append(got, pw.Well)
	}
	if strings.Join(got, " ") != "A1 B1 A2 B2 A3 B3 A1" {
		t.Errorf("Expected A1 B1 A2 B2 A3 B3 A1, got %v", got)
	}
	if pws[6].Plate != 1 {
		t.Errorf("Expected 7th well on plate 1, got %d", pws[6].Plate)
	}
}
