package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation and lookup errors.
var (
	// ErrOutOfRange reports a value outside a field's declared domain.
	ErrOutOfRange = errors.New("value out of range")

	// ErrArityMismatch reports an array value whose length differs from the
	// field's declared arity.
	ErrArityMismatch = errors.New("array length does not match field arity")

	// ErrReadOnly reports a write to a field the hardware only reports.
	ErrReadOnly = errors.New("field is read-only")

	// ErrMissingField reports an absent field that has no default.
	ErrMissingField = errors.New("required field missing")

	// ErrUnknownKind reports a register kind/mode combination with no
	// registered layout.
	ErrUnknownKind = errors.New("unknown register kind")

	// ErrUnknownName reports a name outside all three naming conventions.
	ErrUnknownName = errors.New("unknown field name")

	// ErrValueType reports a value that cannot be coerced to an integer.
	ErrValueType = errors.New("invalid value type")
)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	// Field is the model name of the offending field.
	Field string

	// Err is the underlying failure, wrapping one of the sentinel errors.
	Err error
}

// Error returns the field name and the underlying failure.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError aggregates every per-field violation found in one
// validation pass, so callers get complete diagnostics at once.
type ValidationError struct {
	// Fields lists the violations in schema field order.
	Fields []*FieldError
}

// Error joins all per-field messages.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e.Fields), strings.Join(msgs, "; "))
}

// Unwrap exposes every per-field failure to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, fe := range e.Fields {
		errs[i] = fe
	}
	return errs
}

// FieldFailed reports whether the aggregate contains a violation for the
// given model name.
func (e *ValidationError) FieldFailed(modelName string) bool {
	for _, fe := range e.Fields {
		if fe.Field == modelName {
			return true
		}
	}
	return false
}

// errCollector accumulates field errors during a validation pass.
type errCollector struct {
	fields []*FieldError
}

func (c *errCollector) add(field string, err error) {
	c.fields = append(c.fields, &FieldError{Field: field, Err: err})
}

// err returns the aggregate, or nil if nothing was collected.
func (c *errCollector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
