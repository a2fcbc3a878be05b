// Package wire packs parameter models into fixed-width register images
// and back.
//
// # Bit layout
//
// A register image is a fixed-length bit sequence. Fields are laid out in
// schema order, most significant field first, with no gaps or overlaps;
// array fields occupy consecutive element spans. Signed fields store
// two's complement within their width; enumerated fields store the wire
// index of their value. Bit order and field order are part of the
// hardware compatibility contract and only change with a schema version
// bump.
//
// # Export boundary
//
// Downstream frame construction consumes the export mapping, not the raw
// image. MarshalExport encodes it as deterministic CBOR.
package wire
