package log

import "time"

// Event is one register layer log record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"2,keyasint"`

	// Kind is the register kind involved, e.g. "offline-core".
	Kind string `cbor:"3,keyasint,omitempty"`

	// Model is the parameter model instance name.
	Model string `cbor:"4,keyasint,omitempty"`

	// Field is the model name of the field involved, if any.
	Field string `cbor:"5,keyasint,omitempty"`

	// Detail carries free-form context, e.g. an image length.
	Detail string `cbor:"6,keyasint,omitempty"`

	// Err is the error text for failure events.
	Err string `cbor:"7,keyasint,omitempty"`
}

// Category classifies a log event.
type Category uint8

const (
	// CategorySchema covers layout resolution and loading.
	CategorySchema Category = 0

	// CategoryValidation covers model construction and mutation checks.
	CategoryValidation Category = 1

	// CategoryPack covers packing models into register images.
	CategoryPack Category = 2

	// CategoryUnpack covers unpacking register images into models.
	CategoryUnpack Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySchema:
		return "SCHEMA"
	case CategoryValidation:
		return "VALIDATION"
	case CategoryPack:
		return "PACK"
	case CategoryUnpack:
		return "UNPACK"
	default:
		return "UNKNOWN"
	}
}
