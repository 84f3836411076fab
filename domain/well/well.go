// Package well models physical microplate positions: well names like "A1"
// or "AB12", zero-based coordinates, plate shapes, and rectangular ranges.
package well

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/caseygrun/plates/domain/core"
)

// Coordinate is a zero-based physical position on a plate: Row 0 is row "A",
// Col 0 is column "1".
type Coordinate struct {
	Row int
	Col int
}

var wellNamePattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// RowLetters converts a zero-based row index to its letter label: 0 -> "A",
// 25 -> "Z", 26 -> "AA", 52 -> "BA". Panics on a negative row.
func RowLetters(row int) string {
	if row < 0 {
		panic(fmt.Sprintf("well: negative row index %d", row))
	}
	letters := ""
	for i := row; i >= 0; i = i/26 - 1 {
		letters = string(rune('A'+i%26)) + letters
	}
	return letters
}

// LettersToRow converts a row letter label to its zero-based index,
// case-insensitively. Inverse of RowLetters.
func LettersToRow(letters string) (int, error) {
	if letters == "" {
		return 0, core.NewInvalidWellNameError(letters)
	}
	row := 0
	for _, r := range letters {
		switch {
		case r >= 'A' && r <= 'Z':
			row = row*26 + int(r-'A') + 1
		case r >= 'a' && r <= 'z':
			row = row*26 + int(r-'a') + 1
		default:
			return 0, core.NewInvalidWellNameError(letters)
		}
	}
	return row - 1, nil
}

// Parse converts a well name like "A1" or "ab12" to its Coordinate. The whole
// string must be letters followed by a 1-based column number; anything else
// (including column zero, e.g. "A0") fails with ErrInvalidWellName.
func Parse(name string) (Coordinate, error) {
	m := wellNamePattern.FindStringSubmatch(name)
	if m == nil {
		return Coordinate{}, core.NewInvalidWellNameError(name)
	}
	row, err := LettersToRow(m[1])
	if err != nil {
		return Coordinate{}, core.NewInvalidWellNameError(name)
	}
	col, err := strconv.Atoi(m[2])
	if err != nil || col < 1 {
		return Coordinate{}, core.NewInvalidWellNameError(name)
	}
	return Coordinate{Row: row, Col: col - 1}, nil
}

// IsName reports whether s parses as a well name.
func IsName(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Name returns the canonical upper-case well name for the coordinate.
// Panics on negative coordinates; those never name a physical well.
func (c Coordinate) Name() string {
	if c.Row < 0 || c.Col < 0 {
		panic(fmt.Sprintf("well: negative coordinate (%d, %d)", c.Row, c.Col))
	}
	return RowLetters(c.Row) + strconv.Itoa(c.Col+1)
}

func (c Coordinate) String() string {
	if c.Row < 0 || c.Col < 0 {
		return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
	}
	return c.Name()
}
