package testkit

import (
	"math"
	"strings"
	"testing"
)

func TestMakeTable(t *testing.T) {
	tbl := MakeTable([]string{"well", "OD600"},
		[]any{"A1", 0.1},
		[]any{"A2"},
	)
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}
	if v, _ := tbl.At(0, "OD600").Float64(); v != 0.1 {
		t.Errorf("Expected 0.1, got %v", tbl.At(0, "OD600"))
	}
	if !tbl.At(1, "OD600").IsNull() {
		t.Errorf("Expected the short row padded with Null, got %v", tbl.At(1, "OD600"))
	}
}

func TestMakePlateTable(t *testing.T) {
	tbl := MakePlateTable([]string{"well", "OD600"}, []any{"A1", 0.1})
	if tbl.Key() != "well" {
		t.Errorf("Expected the first column as key, got %q", tbl.Key())
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(0.1+0.2, 0.3, 1e-9) {
		t.Error("Expected values within tolerance to agree")
	}
	if ApproxEqual(0.1, 0.2, 1e-9) {
		t.Error("Expected values outside tolerance to differ")
	}
	if !ApproxEqual(math.NaN(), math.NaN(), 0) {
		t.Error("Expected two NaNs to agree")
	}
	if ApproxEqual(math.NaN(), 0, 1) {
		t.Error("Expected NaN to differ from a number")
	}
}

func TestWells(t *testing.T) {
	got := Wells("A1:A3", 96)
	if strings.Join(got, " ") != "A1 A2 A3" {
		t.Errorf("Expected A1 A2 A3, got %v", got)
	}
}
