package model

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/PAICookers/PAIlib/pkg/hw"
)

// ParameterModel is a validated instance of a register schema: one value
// per field, every value inside its declared domain, plus the cross-field
// invariants of the kind.
//
// Models are safe for concurrent reads. Mutation is confined to Set, which
// re-checks the whole model before committing.
type ParameterModel struct {
	mu     sync.RWMutex
	schema *RegisterSchema
	name   string
	values map[string][]int64
}

// NameKey is the reserved input key carrying the instance name. The name
// identifies the physical unit being configured and never appears in the
// export mapping or the packed image.
const NameKey = "name"

// FromNamedValues validates named values into a parameter model. Keys may
// use either the manual or the model naming convention; unknown keys are
// ignored. Every violation found in the pass is reported together in a
// *ValidationError.
func FromNamedValues(schema *RegisterSchema, values map[string]any) (*ParameterModel, error) {
	name := ""
	if n, ok := values[NameKey].(string); ok {
		name = n
	}

	var c errCollector
	provided := make(map[string][]int64, len(values))

	for key, raw := range values {
		if key == NameKey {
			continue
		}
		modelName, err := schema.Resolver().ToModelName(key)
		if err != nil {
			// Unknown extra keys are ignored, matching the ingestion
			// boundary contract.
			continue
		}
		vals, err := toValues(raw)
		if err != nil {
			c.add(modelName, err)
			continue
		}
		provided[modelName] = vals
	}

	assembled := make(map[string][]int64, len(schema.Fields))
	for _, f := range schema.Fields {
		vals, ok := provided[f.ModelName]
		if !ok {
			if def := f.DefaultValues(); def != nil {
				assembled[f.ModelName] = def
				continue
			}
			c.add(f.ModelName, ErrMissingField)
			continue
		}
		if f.ReadOnly {
			c.add(f.ModelName, fmt.Errorf("%w: reported by hardware only", ErrReadOnly))
			continue
		}
		if err := f.Validate(vals); err != nil {
			c.add(f.ModelName, err)
			continue
		}
		assembled[f.ModelName] = vals
	}

	crossValidate(schema, assembled, &c)

	if err := c.err(); err != nil {
		logValidation(schema, name, err)
		return nil, err
	}
	return newModel(schema, name, assembled), nil
}

// FromWireValues validates values extracted from a register image into a
// parameter model. Unlike FromNamedValues it accepts read-only fields,
// since the hardware reports them. Intended for codecs; keys are model
// names and every schema field must be present.
func FromWireValues(schema *RegisterSchema, values map[string][]int64) (*ParameterModel, error) {
	var c errCollector
	assembled := make(map[string][]int64, len(schema.Fields))

	for _, f := range schema.Fields {
		vals, ok := values[f.ModelName]
		if !ok {
			c.add(f.ModelName, ErrMissingField)
			continue
		}
		if err := f.Validate(vals); err != nil {
			c.add(f.ModelName, err)
			continue
		}
		assembled[f.ModelName] = vals
	}

	crossValidate(schema, assembled, &c)

	if err := c.err(); err != nil {
		logValidation(schema, "", err)
		return nil, err
	}
	return newModel(schema, "", assembled), nil
}

// FromExportValues rebuilds a model from an export mapping, the inverse
// of Export. Keys are export dictionary keys and read-only fields are
// accepted, since the mapping was produced by a validated model.
func FromExportValues(schema *RegisterSchema, name string, values map[string]any) (*ParameterModel, error) {
	var c errCollector
	assembled := make(map[string][]int64, len(schema.Fields))

	for _, f := range schema.Fields {
		raw, ok := values[f.ExportKey]
		if !ok {
			if def := f.DefaultValues(); def != nil {
				assembled[f.ModelName] = def
				continue
			}
			c.add(f.ModelName, ErrMissingField)
			continue
		}
		vals, err := toValues(raw)
		if err != nil {
			c.add(f.ModelName, err)
			continue
		}
		if err := f.Validate(vals); err != nil {
			c.add(f.ModelName, err)
			continue
		}
		assembled[f.ModelName] = vals
	}

	crossValidate(schema, assembled, &c)

	if err := c.err(); err != nil {
		logValidation(schema, name, err)
		return nil, err
	}
	return newModel(schema, name, assembled), nil
}

func newModel(schema *RegisterSchema, name string, values map[string][]int64) *ParameterModel {
	if name == "" {
		name = schema.Kind.String() + "-" + uuid.NewString()
	}
	return &ParameterModel{schema: schema, name: name, values: values}
}

// Schema returns the shared register schema.
func (m *ParameterModel) Schema() *RegisterSchema {
	return m.schema
}

// Name returns the instance name.
func (m *ParameterModel) Name() string {
	return m.name
}

// Get returns a scalar field's value. Either naming convention resolves.
func (m *ParameterModel) Get(name string) (int64, error) {
	f, vals, err := m.lookup(name)
	if err != nil {
		return 0, err
	}
	if f.IsArray() {
		return 0, fmt.Errorf("%w: %q holds %d elements, use GetArray", ErrArityMismatch, f.ModelName, f.Arity)
	}
	return vals[0], nil
}

// GetArray returns a copy of an array field's elements. Scalar fields
// return a single-element slice.
func (m *ParameterModel) GetArray(name string) ([]int64, error) {
	_, vals, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(vals))
	copy(out, vals)
	return out, nil
}

func (m *ParameterModel) lookup(name string) (*FieldDescriptor, []int64, error) {
	modelName, err := m.schema.Resolver().ToModelName(name)
	if err != nil {
		return nil, nil, err
	}
	f, _ := m.schema.Field(modelName)

	m.mu.RLock()
	defer m.mu.RUnlock()
	return f, m.values[modelName], nil
}

// Set validates and writes one field. Read-only fields fail with
// ErrReadOnly and the model is left unchanged; so does any write that
// would break a cross-field invariant of the kind.
func (m *ParameterModel) Set(name string, value any) error {
	modelName, err := m.schema.Resolver().ToModelName(name)
	if err != nil {
		return err
	}
	f, _ := m.schema.Field(modelName)
	if f.ReadOnly {
		return fmt.Errorf("%w: %q", ErrReadOnly, modelName)
	}

	vals, err := toValues(value)
	if err != nil {
		return err
	}
	if err := f.Validate(vals); err != nil {
		logValidation(m.schema, m.name, &FieldError{Field: modelName, Err: err})
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prospective := make(map[string][]int64, len(m.values))
	for k, v := range m.values {
		prospective[k] = v
	}
	prospective[modelName] = vals

	var c errCollector
	crossValidate(m.schema, prospective, &c)
	if err := c.err(); err != nil {
		logValidation(m.schema, m.name, err)
		return err
	}

	m.values = prospective
	return nil
}

// Export returns the model keyed by export dictionary keys. Every schema
// field appears exactly once; array fields export as slices.
func (m *ParameterModel) Export() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]any, len(m.schema.Fields))
	for _, f := range m.schema.Fields {
		vals := m.values[f.ModelName]
		if f.IsArray() {
			cp := make([]int64, len(vals))
			copy(cp, vals)
			out[f.ExportKey] = cp
		} else {
			out[f.ExportKey] = vals[0]
		}
	}
	return out
}

// Snapshot returns a copy of the raw value mapping, keyed by model name.
func (m *ParameterModel) Snapshot() map[string][]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]int64, len(m.values))
	for k, v := range m.values {
		cp := make([]int64, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Equal reports field-by-field equality. Instance names are identity, not
// configuration, and are not compared.
func (m *ParameterModel) Equal(other *ParameterModel) bool {
	if other == nil || m.schema != other.schema {
		return false
	}

	a, b := m.Snapshot(), other.Snapshot()
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

// CoreMode derives the working mode of a core model from its input width,
// spike width and SNN enable fields.
func (m *ParameterModel) CoreMode() (CoreMode, error) {
	iw, err := m.Get("input_width_format")
	if err != nil {
		return 0, err
	}
	sw, err := m.Get("spike_width_format")
	if err != nil {
		return 0, err
	}
	snn, err := m.Get("snn_mode_en")
	if err != nil {
		return 0, err
	}
	return CoreModeOf(SpikeWidth(iw), SpikeWidth(sw), SNNModeEnable(snn))
}

// OnlineNeuronSchemaFromCore resolves the online-neuron layout matching a
// core model's crossbar weight width. The 128/256-bit split follows the
// resolved field value, so it is only known once the core is constructed.
func OnlineNeuronSchemaFromCore(core *ParameterModel) (*RegisterSchema, error) {
	ww, err := core.Get("weight_precision")
	if err != nil {
		return nil, err
	}
	return ResolveSchema(KindOnlineNeuron, Mode{WeightWidth: WeightWidth(ww)})
}

// crossValidate enforces the invariants that couple several fields of one
// register. Fields that already failed their own validation are skipped.
func crossValidate(schema *RegisterSchema, values map[string][]int64, c *errCollector) {
	if schema.Kind != KindOfflineCore {
		return
	}

	iw, okIW := scalar(values, "input_width_format")
	sw, okSW := scalar(values, "spike_width_format")
	snn, okSNN := scalar(values, "snn_mode_en")
	if !okIW || !okSW || !okSNN {
		return
	}

	mode, err := CoreModeOf(SpikeWidth(iw), SpikeWidth(sw), SNNModeEnable(snn))
	if err != nil {
		c.add("snn_mode_en", fmt.Errorf("%w: %v", ErrOutOfRange, err))
		return
	}

	if nd, ok := scalar(values, "num_dendrite"); ok {
		limit := int64(hw.NDendriteMaxANN)
		if mode.IsSNN() {
			limit = hw.NDendriteMaxSNN
		}
		if nd > limit {
			c.add("num_dendrite", fmt.Errorf("%w: at most %d dendrites in %s mode", ErrOutOfRange, limit, mode))
		}
	}

	// Max pooling has no meaning with 1-bit input; the hardware ignores
	// it, so the model normalizes it to disabled.
	if mp, ok := scalar(values, "max_pooling_en"); ok {
		if SpikeWidth(iw) == SpikeWidth1Bit && MaxPoolingEnable(mp) == MaxPoolingEnabled {
			values["max_pooling_en"] = []int64{int64(MaxPoolingDisable)}
		}
	}
}

func scalar(values map[string][]int64, name string) (int64, bool) {
	v, ok := values[name]
	if !ok || len(v) != 1 {
		return 0, false
	}
	return v[0], true
}
