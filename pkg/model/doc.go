// Package model defines the custom-field data model shared by every other
// package: FieldDescriptor (the caller-supplied metadata for one field),
// FieldSet (an ordered descriptor catalog with uniqueness guarantees), and
// Record (the caller-owned map of stored values, keyed by display name).
// Descriptors are immutable inputs; Records are mutated in place by the
// fieldinput component and read by renderers. Wire tags use the upstream
// snake_case names (field_name, field_display_name, field_type) so descriptor
// files and API payloads round-trip without translation.
package model
