package model

import (
	"fmt"
)

// FieldDescriptor declares one named register parameter: its identity in
// the three naming conventions, its bit span, and its value domain.
//
// Enumerated fields list their permitted values in Enum, in wire order:
// the packed bit pattern is the value's index in the list, so a field can
// expose hardware-meaningful values (weight widths 1/2/4/8) while packing
// into the narrow encoding the silicon expects.
type FieldDescriptor struct {
	// ModelName is the canonical field identity.
	ModelName string

	// ManualName is the name used by the hardware manual.
	ManualName string

	// ExportKey is the key used when exporting for frame construction.
	ExportKey string

	// Aliases are legacy manual names that also resolve to this field.
	Aliases []string

	// Bits is the width of one element's bit span. Always > 0.
	Bits int

	// Arity is the number of packed elements. 1 for scalar fields.
	Arity int

	// Signed marks two's-complement fields.
	Signed bool

	// ReadOnly marks fields the hardware reports but never accepts.
	ReadOnly bool

	// Enum is the closed value set of a choice field, in wire order.
	// Nil for range fields.
	Enum []int64

	// Min and Max bound a range field's domain (inclusive). Ignored for
	// enumerated fields.
	Min int64
	Max int64

	// Default is the value used when the field is absent at construction.
	// Nil marks a required field.
	Default *int64

	// Description is the manual's short description.
	Description string
}

// IsArray reports whether the field packs more than one element.
func (f *FieldDescriptor) IsArray() bool {
	return f.Arity > 1
}

// Validate checks a full field value against the declared domain.
// Array fields must match the declared arity exactly; every element is
// checked independently.
func (f *FieldDescriptor) Validate(values []int64) error {
	if len(values) != f.Arity {
		return fmt.Errorf("%w: got %d element(s), want %d", ErrArityMismatch, len(values), f.Arity)
	}
	for _, v := range values {
		if err := f.validateElem(v); err != nil {
			return err
		}
	}
	return nil
}

// validateElem checks a single element against the value domain.
func (f *FieldDescriptor) validateElem(v int64) error {
	if f.Enum != nil {
		for _, allowed := range f.Enum {
			if v == allowed {
				return nil
			}
		}
		return fmt.Errorf("%w: %d not in %v", ErrOutOfRange, v, f.Enum)
	}

	if v < f.Min || v > f.Max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, f.Min, f.Max)
	}
	return nil
}

// WireValue converts one element to its packed bit pattern: the enum index
// for choice fields, the two's complement for signed fields, the raw value
// otherwise.
func (f *FieldDescriptor) WireValue(v int64) (uint64, error) {
	if f.Enum != nil {
		for i, allowed := range f.Enum {
			if v == allowed {
				return uint64(i), nil
			}
		}
		return 0, fmt.Errorf("%w: %d not in %v", ErrOutOfRange, v, f.Enum)
	}

	if err := f.validateElem(v); err != nil {
		return 0, err
	}
	return uint64(v) & f.mask(), nil
}

// ValueFromWire converts a packed bit pattern back to an element value.
// The result still needs Validate: a bit pattern can decode cleanly yet
// fall outside a range field's domain.
func (f *FieldDescriptor) ValueFromWire(raw uint64) (int64, error) {
	if raw > f.mask() {
		return 0, fmt.Errorf("%w: bit pattern %#x exceeds %d-bit field", ErrOutOfRange, raw, f.Bits)
	}

	if f.Enum != nil {
		if int(raw) >= len(f.Enum) {
			return 0, fmt.Errorf("%w: wire index %d, enum has %d values", ErrOutOfRange, raw, len(f.Enum))
		}
		return f.Enum[raw], nil
	}

	if f.Signed && raw&(1<<(f.Bits-1)) != 0 {
		// Sign-extend from the field width.
		return int64(raw) - int64(1)<<f.Bits, nil
	}
	return int64(raw), nil
}

// DefaultValues returns the field's default, expanded to the declared
// arity. Nil for required fields.
func (f *FieldDescriptor) DefaultValues() []int64 {
	if f.Default == nil {
		return nil
	}
	values := make([]int64, f.Arity)
	for i := range values {
		values[i] = *f.Default
	}
	return values
}

func (f *FieldDescriptor) mask() uint64 {
	return 1<<f.Bits - 1
}
