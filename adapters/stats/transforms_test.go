package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/caseygrun/plates/domain/normalize"
	"github.com/caseygrun/plates/domain/table"
)

func series(index []any, values ...float64) *normalize.Series {
	s := &normalize.Series{Values: values}
	for _, idx := range index {
		s.Index = append(s.Index, table.ValueOf(idx))
	}
	return s
}

func applyTransform(t *testing.T, tr normalize.Transform, s *normalize.Series) *normalize.Series {
	t.Helper()
	out, err := tr(s, normalize.Key{}, nil)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	return out
}

func expectValues(t *testing.T, got *normalize.Series, want ...float64) {
	t.Helper()
	if len(got.Values) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got.Values))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got.Values[i]) {
				t.Errorf("Expected NaN at %d, got %v", i, got.Values[i])
			}
			continue
		}
		if math.Abs(got.Values[i]-want[i]) > 1e-9 {
			t.Errorf("Expected %v at %d, got %v", want[i], i, got.Values[i])
		}
	}
}

func TestIdentity(t *testing.T) {
	s := series([]any{0, 1}, 0.5, 0.7)
	out := applyTransform(t, Identity(), s)
	expectValues(t, out, 0.5, 0.7)
}

func TestSubtractReference(t *testing.T) {
	s := series([]any{0, 1, 2}, 0.1, 0.4, 0.9)
	out := applyTransform(t, SubtractReference(0), s)
	expectValues(t, out, 0.0, 0.3, 0.8)
	// input untouched
	if s.Values[0] != 0.1 {
		t.Errorf("Expected the input series untouched, got %v", s.Values[0])
	}
}

func TestSubtractReference_MeansDuplicateIndexes(t *testing.T) {
	s := series([]any{0, 0, 1}, 0.2, 0.4, 1.3)
	out := applyTransform(t, SubtractReference(0), s)
	expectValues(t, out, -0.1, 0.1, 1.0)
}

func TestSubtractReference_MissingIndex(t *testing.T) {
	s := series([]any{1, 2}, 0.1, 0.2)
	if _, err := SubtractReference(0)(s, normalize.Key{}, nil); err == nil {
		t.Fatal("Expected an error for a missing reference index")
	} else if !strings.Contains(err.Error(), "reference index") {
		t.Errorf("Expected a reference index error, got %v", err)
	}
}

func TestDivideByReference(t *testing.T) {
	s := series([]any{"t0", "t1", "t2"}, 2, 4, 6)
	out := applyTransform(t, DivideByReference("t0"), s)
	expectValues(t, out, 1, 2, 3)

	zero := series([]any{"t0", "t1"}, 0, 4)
	if _, err := DivideByReference("t0")(zero, normalize.Key{}, nil); err == nil {
		t.Error("Expected an error for a zero reference")
	}
}

func TestPercentOf(t *testing.T) {
	s := series([]any{0, 1}, 0.5, 0.25)
	out := applyTransform(t, PercentOf(0), s)
	expectValues(t, out, 100, 50)
}

func TestSubtractMin(t *testing.T) {
	s := series([]any{0, 1, 2}, 0.3, math.NaN(), 0.1)
	out := applyTransform(t, SubtractMin(), s)
	expectValues(t, out, 0.2, math.NaN(), 0.0)

	empty := series([]any{0}, math.NaN())
	out = applyTransform(t, SubtractMin(), empty)
	expectValues(t, out, math.NaN())
}

func TestMinMax(t *testing.T) {
	s := series([]any{0, 1, 2}, 1, 2, 3)
	out := applyTransform(t, MinMax(), s)
	expectValues(t, out, 0, 0.5, 1)

	flat := series([]any{0, 1}, 2, 2)
	if _, err := MinMax()(flat, normalize.Key{}, nil); err == nil {
		t.Error("Expected an error for a zero-range group")
	}
}

func TestZScore(t *testing.T) {
	s := series([]any{0, 1, 2, 3, 4}, 1, 2, 3, 4, 5)
	out := applyTransform(t, ZScore(), s)
	sd := math.Sqrt(2.5)
	expectValues(t, out, -2/sd, -1/sd, 0, 1/sd, 2/sd)

	single := series([]any{0}, 3)
	if _, err := ZScore()(single, normalize.Key{}, nil); err == nil {
		t.Error("Expected an error for a group with zero variance")
	}
}

// TestTransformsWithNormalize runs a transform through the full grouping path
func TestTransformsWithNormalize(t *testing.T) {
	in := table.New("well", "OD600", "time", "conc")
	for _, row := range [][]any{
		{"A1", 0.1, 0, 10},
		{"A1", 0.5, 1, 10},
		{"A2", 0.2, 0, 100},
		{"A2", 0.9, 1, 100},
	} {
		i := in.AppendEmptyRow()
		in.Set(i, "well", table.ValueOf(row[0]))
		in.Set(i, "OD600", table.ValueOf(row[1]))
		in.Set(i, "time", table.ValueOf(row[2]))
		in.Set(i, "conc", table.ValueOf(row[3]))
	}

	out, err := normalize.Normalize(in, normalize.Config{
		Value:   "OD600",
		On:      "time",
		GroupBy: []string{"conc"},
		How:     SubtractReference(0),
	})
	if err != nil {
		t.Fatalf("Normalize: unexpected error: %v", err)
	}
	for i, want := range []float64{0, 0.4, 0, 0.7} {
		got, _ := out.At(i, "OD600").Float64()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Row %d: expected %v, got %v", i, want, got)
		}
	}
}
