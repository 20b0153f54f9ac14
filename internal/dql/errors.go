package dql

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrNoCollection is returned when collection mutator called before [Builder.From].
	ErrNoCollection = errors.New("no current collection")
	// ErrNoSelection is returned when selection mutator called before [Builder.Select].
	ErrNoSelection = errors.New("no current selection")
	// ErrEmptyPath is returned when [Builder.Select] called without path.
	ErrEmptyPath = errors.New("path cannot be empty")
	// ErrNothingToSelect is returned when there is no visible selections to render.
	ErrNothingToSelect = errors.New("nothing to select")
)

// UnknownSeriesError is returned when series reference does not match any label.
type UnknownSeriesError struct {
	Label string
}

// Error implements error.
func (e *UnknownSeriesError) Error() string {
	return fmt.Sprintf("unknown series %q", e.Label)
}

// UndefinedVariableError is returned during rendering when a variable placeholder
// has no binding.
type UndefinedVariableError struct {
	Name string
}

// Error implements error.
func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable %q is not defined", e.Name)
}

// StructuralError is a builder misuse error.
type StructuralError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

// Unwrap implements [errors.Unwrap] interface.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

// FormatError implements [errors.Formatter].
func (e *StructuralError) FormatError(p errors.Printer) error {
	p.Print(e.Op)
	return e.Err
}

func structural(op string, err error) error {
	return &StructuralError{Op: op, Err: err}
}
