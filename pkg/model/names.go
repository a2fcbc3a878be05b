package model

import "fmt"

// Resolver translates between the three naming conventions of a schema's
// fields: manual name (hardware manual, including legacy aliases), model
// name (canonical identity) and export key (serialization).
//
// Legacy manual names map many-to-one onto model names across manual
// versions. The reverse direction always picks the current manual name,
// which makes it lossy for aliases; that matches the manual's own
// "same as" equivalence notes.
type Resolver struct {
	toModel    map[string]string
	toExport   map[string]string
	fromExport map[string]string
	toManual   map[string]string
}

// newResolver builds the alias tables for a field list.
func newResolver(fields []*FieldDescriptor) (*Resolver, error) {
	r := &Resolver{
		toModel:    make(map[string]string),
		toExport:   make(map[string]string),
		fromExport: make(map[string]string),
		toManual:   make(map[string]string),
	}

	for _, f := range fields {
		names := append([]string{f.ModelName, f.ManualName}, f.Aliases...)
		for _, n := range names {
			if owner, taken := r.toModel[n]; taken && owner != f.ModelName {
				return nil, fmt.Errorf("name %q maps to both %q and %q", n, owner, f.ModelName)
			}
			r.toModel[n] = f.ModelName
		}

		if owner, taken := r.fromExport[f.ExportKey]; taken && owner != f.ModelName {
			return nil, fmt.Errorf("export key %q maps to both %q and %q", f.ExportKey, owner, f.ModelName)
		}
		r.toExport[f.ModelName] = f.ExportKey
		r.fromExport[f.ExportKey] = f.ModelName
		r.toManual[f.ModelName] = f.ManualName
	}

	return r, nil
}

// ToModelName resolves a manual name, legacy alias or model name to the
// canonical model name.
func (r *Resolver) ToModelName(name string) (string, error) {
	m, ok := r.toModel[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return m, nil
}

// ToExportKey returns the export dictionary key of a model name.
func (r *Resolver) ToExportKey(modelName string) (string, error) {
	k, ok := r.toExport[modelName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, modelName)
	}
	return k, nil
}

// FromExportKey resolves an export dictionary key back to the model name.
func (r *Resolver) FromExportKey(key string) (string, error) {
	m, ok := r.fromExport[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, key)
	}
	return m, nil
}

// ManualName returns the current manual name of a model name. Legacy
// aliases are never returned.
func (r *Resolver) ManualName(modelName string) (string, error) {
	m, ok := r.toManual[modelName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownName, modelName)
	}
	return m, nil
}
