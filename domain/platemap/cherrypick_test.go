package platemap

import (
	"errors"
	"testing"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/well"
)

func TestCherrypick_Defaults(t *testing.T) {
	out, err := Cherrypick([]string{"A1", "A3"}, nil, nil)
	if err != nil {
		t.Fatalf("Cherrypick: unexpected error: %v", err)
	}
	if out.Len() != 96 {
		t.Fatalf("Expected a full 96-well table, got %d rows", out.Len())
	}
	picked := 0
	for i := 0; i < out.Len(); i++ {
		if v, ok := out.At(i, "pick").Bool(); ok && v {
			picked++
		}
	}
	if picked != 2 {
		t.Errorf("Expected 2 picked wells, got %d", picked)
	}
	if !cellAt(t, out, "A2", "pick").IsNull() {
		t.Error("Expected Null pick for unpicked wells without others")
	}
}

func TestCherrypick_ValuesAndOthers(t *testing.T) {
	shape, _ := well.ShapeForWells(6)
	opts := DefaultCompileOptions()
	opts.Shape = shape

	out, err := CherrypickWithOptions([]string{"A1", "A3"},
		map[string]any{"color": "red"},
		map[string]any{"color": "green"}, opts)
	if err != nil {
		t.Fatalf("CherrypickWithOptions: unexpected error: %v", err)
	}
	if out.Len() != 6 {
		t.Fatalf("Expected 6 rows, got %d", out.Len())
	}
	reds, greens := 0, 0
	for i := 0; i < out.Len(); i++ {
		switch v, _ := out.At(i, "color").Str(); v {
		case "red":
			reds++
		case "green":
			greens++
		}
	}
	if reds != 2 || greens != 4 {
		t.Errorf("Expected 2 red and 4 green, got %d and %d", reds, greens)
	}
	if v, _ := cellAt(t, out, "A3", "color").Str(); v != "red" {
		t.Errorf("Expected red at A3, got %q", v)
	}
}

func TestCherrypick_CanonicalizesNames(t *testing.T) {
	out, err := Cherrypick([]string{"a1"}, map[string]any{"pick": true}, nil)
	if err != nil {
		t.Fatalf("Cherrypick: unexpected error: %v", err)
	}
	if v, ok := cellAt(t, out, "A1", "pick").Bool(); !ok || !v {
		t.Error("Expected a lowercase pick to land on A1")
	}
}

func TestCherrypick_Errors(t *testing.T) {
	if _, err := Cherrypick([]string{"not a well"}, nil, nil); !errors.Is(err, core.ErrInvalidWellName) {
		t.Errorf("Expected ErrInvalidWellName, got %v", err)
	}
	if _, err := Cherrypick([]string{"I1"}, nil, nil); !errors.Is(err, core.ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange for a well off the plate, got %v", err)
	}
}

func TestCherrypick_AllWellsPicked(t *testing.T) {
	shape, _ := well.ShapeForWells(6)
	opts := DefaultCompileOptions()
	opts.Shape = shape

	picks := make([]string, 0, 6)
	for _, c := range shape.Coordinates() {
		picks = append(picks, c.Name())
	}
	out, err := CherrypickWithOptions(picks, nil, map[string]any{"color": "green"}, opts)
	if err != nil {
		t.Fatalf("CherrypickWithOptions: unexpected error: %v", err)
	}
	for i := 0; i < out.Len(); i++ {
		if v, ok := out.At(i, "pick").Bool(); !ok || !v {
			t.Errorf("Expected every well picked, row %d got %v", i, out.At(i, "pick"))
		}
	}
	if out.HasColumn("color") {
		t.Error("Expected no color column when no wells remain for others")
	}
}
