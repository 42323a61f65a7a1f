package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports an unparsable document or a pipeline whose shape
// breaks the structural invariants.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ParameterError reports a missing or mistyped transformation parameter.
type ParameterError struct {
	Reason string
}

func (e *ParameterError) Error() string { return e.Reason }

// OperatorError reports an unrecognized comparison operator.
type OperatorError struct {
	Operator string
	Valid    []string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("invalid operator %q: must be one of %s", e.Operator, strings.Join(e.Valid, ", "))
}

// ColumnError reports references to columns absent from the current table.
type ColumnError struct {
	Columns []string
}

func (e *ColumnError) Error() string {
	return "columns not found in data: " + strings.Join(e.Columns, ", ")
}

// NumericConversionError reports a numeric coercion that failed structurally,
// as opposed to per-cell coercion, which degrades to missing markers.
type NumericConversionError struct {
	Column string
	Err    error
}

func (e *NumericConversionError) Error() string {
	return fmt.Sprintf("could not convert column %q to numeric: %v", e.Column, e.Err)
}

func (e *NumericConversionError) Unwrap() error { return e.Err }

// ComparisonError reports an operator applied to incompatible types, or any
// other failure while building a row mask.
type ComparisonError struct {
	Column string
	Value  any
	Reason string
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("cannot compare column %q with value '%v': %s", e.Column, e.Value, e.Reason)
}

// EngineError reports a required backend that is unavailable or a
// transformation lacking an implementation for the active backend.
type EngineError struct {
	Reason string
}

func (e *EngineError) Error() string { return e.Reason }

// StepError wraps a failure inside a running step with its name and 1-based
// position.
type StepError struct {
	Step  string
	Index int
	Total int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("transformation %q (step %d of %d) failed: %v", e.Step, e.Index, e.Total, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// IsClientError reports whether err belongs to the validation/parameter
// class that the caller-facing layer surfaces verbatim. Everything else maps
// to a generic server failure.
func IsClientError(err error) bool {
	var (
		ve *ValidationError
		pe *ParameterError
		oe *OperatorError
	)
	return errors.As(err, &ve) || errors.As(err, &pe) || errors.As(err, &oe)
}
