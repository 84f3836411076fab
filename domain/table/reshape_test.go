package table

import (
	"strings"
	"testing"
)

func wideFixture() *Table {
	w := New("row", "1", "2", "3")
	w.SetKey("row")
	for _, r := range [][]any{
		{"A", 0.1, 0.2, 0.3},
		{"B", 1.1, 1.2, 1.3},
	} {
		i := w.AppendEmptyRow()
		w.Set(i, "row", ValueOf(r[0]))
		w.Set(i, "1", ValueOf(r[1]))
		w.Set(i, "2", ValueOf(r[2]))
		w.Set(i, "3", ValueOf(r[3]))
	}
	return w
}

func TestWideToTidy(t *testing.T) {
	tidy, err := WideToTidy(wideFixture(), "od")
	if err != nil {
		t.Fatalf("WideToTidy: unexpected error: %v", err)
	}
	if tidy.Key() != "well" {
		t.Errorf("Expected key well, got %q", tidy.Key())
	}
	var wells []string
	for i := 0; i < tidy.Len(); i++ {
		name, _ := tidy.At(i, "well").Str()
		wells = append(wells, name)
	}
	if got := strings.Join(wells, " "); got != "A1 A2 A3 B1 B2 B3" {
		t.Errorf("Expected row-major well order, got %q", got)
	}
	if !tidy.At(4, "od").Equal(FloatValue(1.2)) {
		t.Errorf("Expected 1.2 at B2, got %v", tidy.At(4, "od"))
	}
}

func TestWideToTidy_FirstColumnAsLabels(t *testing.T) {
	w := wideFixture()
	w.key = ""
	tidy, err := WideToTidy(w, "od")
	if err != nil {
		t.Fatalf("WideToTidy: unexpected error: %v", err)
	}
	if name, _ := tidy.At(0, "well").Str(); name != "A1" {
		t.Errorf("Expected first column used as labels, got first well %q", name)
	}
}

func TestWideToTidy_BadHeader(t *testing.T) {
	w := New("row", "1", "notes")
	w.SetKey("row")
	i := w.AppendEmptyRow()
	w.Set(i, "row", StringValue("A"))

	if _, err := WideToTidy(w, "od"); err == nil {
		t.Fatal("Expected an error for a non-numeric column header")
	} else if !strings.Contains(err.Error(), "notes") {
		t.Errorf("Expected the header name in the error, got %q", err)
	}
}

func TestWideToTidy_BadRowLabel(t *testing.T) {
	w := New("row", "1")
	w.SetKey("row")
	i := w.AppendEmptyRow()
	w.Set(i, "row", StringValue("7"))

	if _, err := WideToTidy(w, "od"); err == nil {
		t.Fatal("Expected an error for a non-letter row label")
	}
}

func TestTidyToWide(t *testing.T) {
	tidy := New("well", "od")
	tidy.SetKey("well")
	for _, r := range [][]any{
		{"B12", 1.5},
		{"A1", 0.5},
		{"B1", 1.0},
	} {
		i := tidy.AppendEmptyRow()
		tidy.Set(i, "well", ValueOf(r[0]))
		tidy.Set(i, "od", ValueOf(r[1]))
	}

	wide, err := TidyToWide(tidy, "od")
	if err != nil {
		t.Fatalf("TidyToWide: unexpected error: %v", err)
	}
	if got := strings.Join(wide.Columns(), " "); got != "plate_row 1 12" {
		t.Errorf("Expected sorted numeric columns, got %q", got)
	}
	if wide.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", wide.Len())
	}
	if label, _ := wide.At(0, "plate_row").Str(); label != "A" {
		t.Errorf("Expected row A first, got %q", label)
	}
	if !wide.At(1, "12").Equal(FloatValue(1.5)) {
		t.Errorf("Expected 1.5 at B12, got %v", wide.At(1, "12"))
	}
	if !wide.At(0, "12").IsNull() {
		t.Error("Expected Null for the absent well A12")
	}
}

func TestReshape_RoundTrip(t *testing.T) {
	tidy, err := WideToTidy(wideFixture(), "od")
	if err != nil {
		t.Fatalf("WideToTidy: unexpected error: %v", err)
	}
	wide, err := TidyToWide(tidy, "od")
	if err != nil {
		t.Fatalf("TidyToWide: unexpected error: %v", err)
	}
	if wide.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", wide.Len())
	}
	for i, want := range []float64{0.3, 1.3} {
		if !wide.At(i, "3").Equal(FloatValue(want)) {
			t.Errorf("Expected %v in column 3 row %d, got %v", want, i, wide.At(i, "3"))
		}
	}
}
