package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Naming errors
	ErrInvalidWellName = errors.New("invalid well name")
	ErrInvalidRange    = errors.New("invalid well range")

	// Shape errors
	ErrUnknownPlateSize   = errors.New("unknown plate size")
	ErrIncompatibleShapes = errors.New("incompatible plate shapes")
	ErrShapeMismatch      = errors.New("value shape does not match range")

	// Table errors
	ErrMissingWellColumn = errors.New("no well column found")
	ErrMissingColumn     = errors.New("column not found")
	ErrColumnExists      = errors.New("column already exists")
	ErrLengthMismatch    = errors.New("length mismatch")
)

// Error constructors with context
func NewInvalidWellNameError(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidWellName, name)
}

func NewInvalidRangeError(expr string, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrInvalidRange, expr, reason)
}

func NewUnknownPlateSizeError(wells int, known []int) error {
	return fmt.Errorf("%w: %d wells (known sizes: %v)", ErrUnknownPlateSize, wells, known)
}

func NewIncompatibleShapesError(from, to string, reason string) error {
	return fmt.Errorf("%w: %s to %s: %s", ErrIncompatibleShapes, from, to, reason)
}

func NewShapeMismatchError(variable string, valueShape, rangeShape string) error {
	return fmt.Errorf("%w: variable %q has shape %s but range is %s", ErrShapeMismatch, variable, valueShape, rangeShape)
}

func NewMissingWellColumnError(searched []string, columns []string) error {
	return fmt.Errorf("%w: looked for a key or column named %s, or a key of well-like names; columns: %v",
		ErrMissingWellColumn, strings.Join(searched, " or "), columns)
}

func NewMissingColumnError(name string, columns []string) error {
	return fmt.Errorf("%w: %q (have %v)", ErrMissingColumn, name, columns)
}

// Error checking helpers
func IsNamingError(err error) bool {
	return errors.Is(err, ErrInvalidWellName) ||
		errors.Is(err, ErrInvalidRange)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrUnknownPlateSize) ||
		errors.Is(err, ErrIncompatibleShapes) ||
		errors.Is(err, ErrShapeMismatch)
}

func IsTableError(err error) bool {
	return errors.Is(err, ErrMissingWellColumn) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrColumnExists) ||
		errors.Is(err, ErrLengthMismatch)
}
