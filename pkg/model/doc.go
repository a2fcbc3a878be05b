// Package model defines the register schemas of the PAICORE chip and the
// validated parameter models built from them.
//
// A RegisterSchema describes one register layout as an ordered list of
// FieldDescriptors, parsed from embedded layout tables. A ParameterModel
// is a checked instance of a schema: construct one from named values with
// FromNamedValues, from a decoded image with FromWireValues, or from an
// export mapping with FromExportValues. Every construction path reports
// all violations together in a *ValidationError.
//
// Three naming conventions coexist. Model names are the canonical field
// identifiers, manual names follow the chip manual, and export keys are
// the dictionary keys produced by Export. The schema's Resolver translates
// between them.
package model
