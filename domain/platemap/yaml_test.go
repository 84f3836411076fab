package platemap

import (
	"testing"

	"github.com/caseygrun/plates/domain/table"
)

func TestParseYAML(t *testing.T) {
	doc := `
wells: 384
"A1:B6":
  strain: B. theta
  conc: [0, 1, 10, 100, 1000, 10000]
"C1:C6,D1:D6":
  media: LB
"E4":
  control: true
`
	m, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML: unexpected error: %v", err)
	}
	if m.Wells != 384 {
		t.Errorf("Expected wells 384, got %d", m.Wells)
	}
	if len(m.Rules) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(m.Rules))
	}
	wantRanges := []string{"A1:B6", "C1:C6,D1:D6", "E4"}
	for i, want := range wantRanges {
		if m.Rules[i].Ranges != want {
			t.Errorf("Expected rule %d range %q, got %q", i, want, m.Rules[i].Ranges)
		}
	}
	if got := m.Rules[0].Assign["strain"]; got != "B. theta" {
		t.Errorf("Expected strain 'B. theta', got %v", got)
	}
	conc, ok := m.Rules[0].Assign["conc"].([]any)
	if !ok || len(conc) != 6 {
		t.Fatalf("Expected conc as a 6-element sequence, got %T %v", m.Rules[0].Assign["conc"], m.Rules[0].Assign["conc"])
	}
	if conc[2] != 10 {
		t.Errorf("Expected conc[2] == 10, got %v", conc[2])
	}
}

func TestParseYAML_RuleOrderPreserved(t *testing.T) {
	doc := `
"B1:B6":
  media: M9
"A1:B6":
  media: LB
`
	m, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML: unexpected error: %v", err)
	}
	if m.Rules[0].Ranges != "B1:B6" || m.Rules[1].Ranges != "A1:B6" {
		t.Fatalf("Expected document order, got %q then %q", m.Rules[0].Ranges, m.Rules[1].Ranges)
	}

	out, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if v, _ := cellAt(t, out, "B3", "media").Str(); v != "LB" {
		t.Errorf("Expected the later rule to win at B3, got %q", v)
	}
}

func TestParseYAML_CompileNestedGrid(t *testing.T) {
	doc := `
"B1:C2,E1:F2":
  conc: [[0, 1], [2, 3]]
`
	m, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseYAML: unexpected error: %v", err)
	}
	out, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	for name, conc := range map[string]int64{"B1": 0, "C2": 3, "E2": 1, "F1": 2} {
		if v := cellAt(t, out, name, "conc"); !v.Equal(table.IntValue(conc)) {
			t.Errorf("Expected conc %d at %s, got %v", conc, name, v)
		}
	}
}

func TestParseYAML_NotAMapping(t *testing.T) {
	if _, err := ParseYAML([]byte("- A1\n- A2\n")); err == nil {
		t.Fatal("Expected an error for a sequence document")
	}
}
