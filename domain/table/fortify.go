package table

import (
	"strings"

	"github.com/caseygrun/plates/domain/core"
	"github.com/caseygrun/plates/domain/well"
)

var wellColumnNames = []string{"well", "wells"}

// Fortify returns a copy of the table guaranteed to have a key column named
// "well". It searches, in order: a key column named well or wells (any
// case), a key column whose every value parses as a well name, and a data
// column named well or wells which becomes the key. Failing all three it
// returns ErrMissingWellColumn.
func Fortify(t *Table) (*Table, error) {
	out := t.Clone()
	if err := FortifyInPlace(out); err != nil {
		return nil, err
	}
	return out, nil
}

// FortifyInPlace is Fortify operating on the table itself.
func FortifyInPlace(t *Table) error {
	if t.key != "" {
		for _, name := range wellColumnNames {
			if strings.ToLower(t.key) == name {
				return t.RenameColumn(t.key, "well")
			}
		}
		if t.Len() > 0 && allWellNames(t.Column(t.key)) {
			return t.RenameColumn(t.key, "well")
		}
	}

	for _, col := range t.cols {
		for _, name := range wellColumnNames {
			if strings.ToLower(col) == name {
				if err := t.RenameColumn(col, "well"); err != nil {
					return err
				}
				return t.SetKey("well")
			}
		}
	}

	return core.NewMissingWellColumnError(wellColumnNames, t.Columns())
}

func allWellNames(values []Value) bool {
	for _, v := range values {
		s, ok := v.Str()
		if !ok || !well.IsName(s) {
			return false
		}
	}
	return true
}
