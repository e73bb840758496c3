package tabular

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

var (
	// ErrSchema matches every *SchemaError with errors.Is
	ErrSchema = errors.New("invalid table schema")
	// ErrParse matches every *ParseError with errors.Is
	ErrParse = errors.New("invalid table content")
)

// SchemaError is returned when the header row does not provide every
// required column exactly once
type SchemaError struct {
	Missing    []schema.Column
	Duplicated []schema.Column
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required columns: "+joinColumns(e.Missing))
	}
	if len(e.Duplicated) > 0 {
		parts = append(parts, "duplicated columns: "+joinColumns(e.Duplicated))
	}
	if len(parts) == 0 {
		return ErrSchema.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ParseError is returned when a data row cannot be read or one of its cells
// is not a number of the type its column requires. Row counts data rows
// from 1; Column is empty when the whole row is malformed.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func joinColumns(columns []schema.Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
