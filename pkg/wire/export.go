package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/PAICookers/PAIlib/pkg/model"
)

// Export envelopes are interchange artifacts: two exports of the same
// model must be byte-identical, so the encoder sorts keys canonically
// and forbids indefinite lengths. The decoder stays lenient toward
// envelopes written by newer releases.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	enc, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: building export encoder mode: %v", err))
	}
	encMode = enc

	dec, err := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: building export decoder mode: %v", err))
	}
	decMode = dec
}

// exportEnvelope is the CBOR shape of an exported model. The kind string
// lets a reader pick the right schema before rebuilding values.
type exportEnvelope struct {
	Kind   string         `cbor:"1,keyasint"`
	Name   string         `cbor:"2,keyasint,omitempty"`
	Values map[string]any `cbor:"3,keyasint"`
}

// MarshalExport encodes a model's export mapping, tagged with its kind
// and instance name, as deterministic CBOR.
func MarshalExport(m *model.ParameterModel) ([]byte, error) {
	env := exportEnvelope{
		Kind:   m.Schema().Kind.String(),
		Name:   m.Name(),
		Values: m.Export(),
	}
	return encMode.Marshal(env)
}

// UnmarshalExport decodes an export envelope against a schema and
// revalidates it into a model. The envelope's kind must match the schema.
func UnmarshalExport(data []byte, schema *model.RegisterSchema) (*model.ParameterModel, error) {
	var env exportEnvelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode export envelope: %w", err)
	}
	if env.Kind != schema.Kind.String() {
		return nil, fmt.Errorf("%w: envelope kind %q, schema is %q",
			model.ErrUnknownKind, env.Kind, schema.Kind)
	}
	return model.FromExportValues(schema, env.Name, env.Values)
}
