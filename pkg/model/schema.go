package model

import (
	"embed"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PAICookers/PAIlib/pkg/log"
)

//go:embed layouts/*.yaml
var layoutFS embed.FS

// RegisterKind selects a register layout family.
type RegisterKind uint8

const (
	// KindOfflineCore is the parameter register of an offline core.
	KindOfflineCore RegisterKind = iota

	// KindOnlineCore is the parameter register of an online core.
	KindOnlineCore

	// KindOfflineNeuron is the neuron RAM entry of an offline core.
	KindOfflineNeuron

	// KindOnlineNeuron is the neuron RAM entry of an online core. Its
	// width depends on the core's crossbar weight width.
	KindOnlineNeuron
)

// String returns the kind name used in layout files.
func (k RegisterKind) String() string {
	switch k {
	case KindOfflineCore:
		return "offline-core"
	case KindOnlineCore:
		return "online-core"
	case KindOfflineNeuron:
		return "offline-neuron"
	case KindOnlineNeuron:
		return "online-neuron"
	default:
		return "unknown"
	}
}

// Mode carries the hardware mode flags a layout can depend on.
type Mode struct {
	// WeightWidth is the owning core's crossbar weight width. Required
	// for KindOnlineNeuron: 1-bit weights use the single-address 128-bit
	// layout, anything wider spills into two RAM addresses (256 bits).
	WeightWidth WeightWidth
}

// RegisterSchema is an ordered register layout of one kind. Field order is
// bit placement order, most significant field first, and is part of the
// wire compatibility contract.
type RegisterSchema struct {
	// Kind is the layout family.
	Kind RegisterKind

	// TotalBits is the exact packed width. Always the sum over fields of
	// Bits times Arity.
	TotalBits int

	// Fields lists the descriptors in bit placement order.
	Fields []*FieldDescriptor

	byModel  map[string]*FieldDescriptor
	resolver *Resolver
}

// Field looks up a descriptor by model name.
func (s *RegisterSchema) Field(modelName string) (*FieldDescriptor, bool) {
	f, ok := s.byModel[modelName]
	return f, ok
}

// Resolver returns the schema's name resolver.
func (s *RegisterSchema) Resolver() *Resolver {
	return s.resolver
}

// ---------------------------------------------------------------------------
// Layout registry
// ---------------------------------------------------------------------------

var (
	schemaMu     sync.RWMutex
	schemaCache  = make(map[string]*RegisterSchema)
	schemaLogger log.Logger
)

// SetLogger installs a logger for layout loading and for failed model
// validation passes. Pass nil to disable.
func SetLogger(l log.Logger) {
	schemaMu.Lock()
	schemaLogger = l
	schemaMu.Unlock()
}

func logSchema(name string, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		Category:  log.CategorySchema,
		Kind:      name,
	}
	if err != nil {
		ev.Err = err.Error()
	}
	emit(ev)
}

// logValidation reports a failed construction or mutation pass.
func logValidation(schema *RegisterSchema, modelName string, err error) {
	emit(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryValidation,
		Kind:      schema.Kind.String(),
		Model:     modelName,
		Err:       err.Error(),
	})
}

func emit(ev log.Event) {
	schemaMu.RLock()
	l := schemaLogger
	schemaMu.RUnlock()
	if l != nil {
		l.Log(ev)
	}
}

// ResolveSchema selects the register layout for a kind and mode. Layouts
// are parsed from the embedded tables once and shared read-only afterwards.
func ResolveSchema(kind RegisterKind, mode Mode) (*RegisterSchema, error) {
	name, err := layoutName(kind, mode)
	if err != nil {
		return nil, err
	}

	schemaMu.RLock()
	if s, ok := schemaCache[name]; ok {
		schemaMu.RUnlock()
		return s, nil
	}
	schemaMu.RUnlock()

	s, err := loadLayout(kind, name)
	logSchema(name, err)
	if err != nil {
		return nil, err
	}

	schemaMu.Lock()
	schemaCache[name] = s
	schemaMu.Unlock()

	return s, nil
}

// layoutName maps a kind/mode combination to its layout file.
func layoutName(kind RegisterKind, mode Mode) (string, error) {
	switch kind {
	case KindOfflineCore, KindOnlineCore, KindOfflineNeuron:
		return kind.String(), nil
	case KindOnlineNeuron:
		if !mode.WeightWidth.Valid() {
			return "", fmt.Errorf("%w: online-neuron layout needs a resolved weight width, got %d",
				ErrUnknownKind, mode.WeightWidth)
		}
		if mode.WeightWidth == WeightWidth1Bit {
			return "online-neuron-1bit", nil
		}
		return "online-neuron", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// rawLayout is the YAML shape of an embedded layout table.
type rawLayout struct {
	Kind      string     `yaml:"kind"`
	TotalBits int        `yaml:"total_bits"`
	Fields    []rawField `yaml:"fields"`
}

type rawField struct {
	Model    string   `yaml:"model"`
	Manual   string   `yaml:"manual,omitempty"`
	Export   string   `yaml:"export,omitempty"`
	Aliases  []string `yaml:"aliases,omitempty"`
	Bits     int      `yaml:"bits"`
	Arity    int      `yaml:"arity,omitempty"`
	Signed   bool     `yaml:"signed,omitempty"`
	ReadOnly bool     `yaml:"readonly,omitempty"`
	Values   []int64  `yaml:"values,omitempty"`
	Min      *int64   `yaml:"min,omitempty"`
	Max      *int64   `yaml:"max,omitempty"`
	Default  *int64   `yaml:"default,omitempty"`
	Desc     string   `yaml:"desc,omitempty"`
}

// loadLayout parses and validates one embedded layout table.
func loadLayout(kind RegisterKind, name string) (*RegisterSchema, error) {
	data, err := layoutFS.ReadFile("layouts/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: no layout %q", ErrUnknownKind, name)
	}

	var raw rawLayout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing layout %q: %w", name, err)
	}
	if raw.Kind != name {
		return nil, fmt.Errorf("layout %q declares kind %q", name, raw.Kind)
	}

	s := &RegisterSchema{
		Kind:      kind,
		TotalBits: raw.TotalBits,
		Fields:    make([]*FieldDescriptor, 0, len(raw.Fields)),
		byModel:   make(map[string]*FieldDescriptor, len(raw.Fields)),
	}

	bitSum := 0
	for _, rf := range raw.Fields {
		f, err := buildField(rf)
		if err != nil {
			return nil, fmt.Errorf("layout %q, field %q: %w", name, rf.Model, err)
		}
		if _, dup := s.byModel[f.ModelName]; dup {
			return nil, fmt.Errorf("layout %q: duplicate field %q", name, f.ModelName)
		}
		s.Fields = append(s.Fields, f)
		s.byModel[f.ModelName] = f
		bitSum += f.Bits * f.Arity
	}

	if bitSum != s.TotalBits {
		return nil, fmt.Errorf("layout %q: field bits sum to %d, declared total is %d",
			name, bitSum, s.TotalBits)
	}

	r, err := newResolver(s.Fields)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", name, err)
	}
	s.resolver = r

	return s, nil
}

// buildField fills in per-field defaults and checks the declaration.
func buildField(rf rawField) (*FieldDescriptor, error) {
	if rf.Model == "" {
		return nil, fmt.Errorf("field without model name")
	}
	if rf.Bits <= 0 {
		return nil, fmt.Errorf("bit width %d, must be positive", rf.Bits)
	}
	if rf.Bits > 64 {
		return nil, fmt.Errorf("bit width %d exceeds 64", rf.Bits)
	}

	f := &FieldDescriptor{
		ModelName:   rf.Model,
		ManualName:  rf.Manual,
		ExportKey:   rf.Export,
		Aliases:     rf.Aliases,
		Bits:        rf.Bits,
		Arity:       rf.Arity,
		Signed:      rf.Signed,
		ReadOnly:    rf.ReadOnly,
		Enum:        rf.Values,
		Default:     rf.Default,
		Description: rf.Desc,
	}
	if f.ManualName == "" {
		f.ManualName = f.ModelName
	}
	if f.ExportKey == "" {
		f.ExportKey = f.ManualName
	}
	if f.Arity == 0 {
		f.Arity = 1
	}
	if f.Arity < 1 {
		return nil, fmt.Errorf("arity %d, must be positive", f.Arity)
	}

	switch {
	case f.Enum != nil:
		if len(f.Enum) > 1<<f.Bits {
			return nil, fmt.Errorf("%d enum values exceed %d-bit field", len(f.Enum), f.Bits)
		}
	case f.Signed:
		f.Min = -1 << (f.Bits - 1)
		f.Max = -(f.Min + 1)
	default:
		if f.Bits == 64 {
			return nil, fmt.Errorf("64-bit range fields must be signed")
		}
		f.Max = 1<<f.Bits - 1
	}
	if rf.Min != nil {
		f.Min = *rf.Min
	}
	if rf.Max != nil {
		f.Max = *rf.Max
	}
	if f.Min > f.Max {
		return nil, fmt.Errorf("empty domain [%d, %d]", f.Min, f.Max)
	}

	if f.Default != nil {
		if err := f.validateElem(*f.Default); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}
	if f.ReadOnly && f.Default == nil {
		return nil, fmt.Errorf("read-only field needs a default")
	}

	return f, nil
}
