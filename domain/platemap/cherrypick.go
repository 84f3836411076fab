package platemap

import (
	"fmt"
	"strings"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/table"
	"github.com/caseygrun/plates/domain/well"
)

// Cherrypick builds a full-plate table where the picked wells carry values
// and every other well carries others. A nil values defaults to
// {"pick": true}; a nil others leaves the remaining wells Null.
func Cherrypick(picks []string, values, others map[string]any) (*table.Table, error) {
	return CherrypickWithOptions(picks, values, others, DefaultCompileOptions())
}

// CherrypickWithOptions is Cherrypick with explicit compile options. It is a
// convenience for the common two-rule layout: one rule covering the picks,
// one covering the rest of the plate.
func CherrypickWithOptions(picks []string, values, others map[string]any, opts CompileOptions) (*table.Table, error) {
	if values == nil {
		values = map[string]any{"pick": true}
	}
	shape, err := resolveShape(opts.Shape, 0)
	if err != nil {
		return nil, err
	}
	opts.Shape = shape

	picked := make(map[string]bool, len(picks))
	for _, name := range picks {
		c, err := well.Parse(name)
		if err != nil {
			return nil, err
		}
		if !shape.Contains(c) {
			return nil, core.NewInvalidRangeError(name, fmt.Sprintf("outside %s plate", shape))
		}
		picked[c.Name()] = true
	}

	var rules []Rule
	if len(picks) > 0 {
		rules = append(rules, Rule{Ranges: strings.Join(picks, ","), Assign: values})
	}
	if others != nil {
		var rest []string
		for _, c := range shape.Coordinates() {
			if !picked[c.Name()] {
				rest = append(rest, c.Name())
			}
		}
		if len(rest) > 0 {
			rules = append(rules, Rule{Ranges: strings.Join(rest, ","), Assign: others})
		}
	}

	return CompileWithOptions(Map{Rules: rules}, opts)
}
