package core

import (
	"errors"
	"strings"
	"testing"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		contains string
	}{
		{NewInvalidWellNameError("@3"), ErrInvalidWellName, `"@3"`},
		{NewInvalidRangeError("A1:B", "expected a well, well:well, row:row, or column:column"), ErrInvalidRange, `"A1:B"`},
		{NewUnknownPlateSizeError(100, []int{6, 96}), ErrUnknownPlateSize, "100 wells"},
		{NewIncompatibleShapesError("8x12", "9x13", "row ratio is not an integer"), ErrIncompatibleShapes, "8x12 to 9x13"},
		{NewShapeMismatchError("conc", "2x3", "1x6"), ErrShapeMismatch, `variable "conc"`},
		{NewMissingWellColumnError([]string{"well", "wells"}, []string{"sample", "od"}), ErrMissingWellColumn, "well or wells"},
		{NewMissingColumnError("od", []string{"well"}), ErrMissingColumn, `"od"`},
	}
	for _, tc := range tests {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("Expected %v to wrap %v", tc.err, tc.sentinel)
		}
		if !strings.Contains(tc.err.Error(), tc.contains) {
			t.Errorf("Expected %q in %q", tc.contains, tc.err.Error())
		}
	}
}

func TestErrorCategories(t *testing.T) {
	naming := NewInvalidWellNameError("nope")
	shape := NewUnknownPlateSizeError(100, nil)
	table := NewMissingColumnError("od", nil)

	if !IsNamingError(naming) || IsNamingError(shape) || IsNamingError(table) {
		t.Error("Expected IsNamingError to match naming errors only")
	}
	if !IsShapeError(shape) || IsShapeError(naming) || IsShapeError(table) {
		t.Error("Expected IsShapeError to match shape errors only")
	}
	if !IsTableError(table) || IsTableError(naming) || IsTableError(shape) {
		t.Error("Expected IsTableError to match table errors only")
	}
	if IsNamingError(errors.New("unrelated")) {
		t.Error("Expected foreign errors to match no category")
	}
}
