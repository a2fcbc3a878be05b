// Package log defines structured event logging for the register layer.
//
// Applications implement Logger to capture schema resolutions, validation
// failures and codec activity. Events encode to deterministic CBOR with
// integer keys, so captures can be stored compactly and replayed by
// analysis tooling. Logging is off by default; NoopLogger discards
// everything.
package log
