// Package fieldinput implements the state component behind a single
// custom-field control. An Input owns the transient text a user is typing and
// mutates the caller-owned record in place; the caller keeps the authoritative
// record and decides when to persist it. Operations run synchronously on the
// caller's goroutine (UI event loops, request handlers holding their own
// locks); the component itself takes no locks.
package fieldinput

import (
	"errors"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// Input binds one field descriptor to a record. For list-typed fields it
// carries the pending text of the add control; scalar fields bind directly to
// the stored value.
type Input struct {
	descriptor model.FieldDescriptor
	record     model.Record
	pending    string
}

// New constructs an Input for descriptor over the caller-owned record. The
// record is mutated by reference, never copied, so callers observe every
// change through their own map.
func New(descriptor model.FieldDescriptor, record model.Record) (*Input, error) {
	if descriptor.FieldName == "" {
		return nil, errors.New("fieldinput: descriptor field_name is required")
	}
	if record == nil {
		return nil, errors.New("fieldinput: record is required")
	}
	return &Input{descriptor: descriptor, record: record}, nil
}

// Descriptor returns the descriptor this input renders.
func (in *Input) Descriptor() model.FieldDescriptor {
	return in.descriptor
}

// Pending returns the transient text of the add control.
func (in *Input) Pending() string {
	return in.pending
}

// SetPending replaces the transient text. It never touches the record.
func (in *Input) SetPending(value string) {
	in.pending = value
}

// AddValue appends {value} to the field's list and reports whether the list
// changed. Empty values are ignored outright. Non-empty values clear the
// pending text whether or not they are added; a value already present is
// silently dropped (idempotent-by-value, no error, no feedback). The list is
// lazily initialized on first add. Scalar-typed fields ignore the call.
func (in *Input) AddValue(value string) bool {
	if !in.descriptor.FieldType.IsList() {
		return false
	}
	if value == "" {
		return false
	}

	in.pending = ""

	key := in.descriptor.StorageKey()
	entries := in.record.Entries(key)
	for _, entry := range entries {
		if entry.Value == value {
			return false
		}
	}

	in.record.SetEntries(key, append(entries, model.ListEntry{Value: value}))
	return true
}

// RemoveValue deletes the entry at index, preserving the relative order of
// the survivors, and reports whether anything was removed. Out-of-range
// indexes are a silent no-op. Removing the last entry leaves an empty list in
// the record: once present, the field never reverts to absent.
func (in *Input) RemoveValue(index int) bool {
	if !in.descriptor.FieldType.IsList() {
		return false
	}

	key := in.descriptor.StorageKey()
	entries := in.record.Entries(key)
	if index < 0 || index >= len(entries) {
		return false
	}

	in.record.SetEntries(key, append(entries[:index], entries[index+1:]...))
	return true
}

// Entries returns a copy of the field's current list for rendering.
func (in *Input) Entries() []model.ListEntry {
	if !in.descriptor.FieldType.IsList() {
		return nil
	}
	return in.record.Entries(in.descriptor.StorageKey())
}

// SetScalar stores value directly under the field's storage key. List-typed
// fields ignore the call; list mutation goes through AddValue/RemoveValue.
func (in *Input) SetScalar(value any) {
	if in.descriptor.FieldType.IsList() {
		return
	}
	in.record[in.descriptor.StorageKey()] = value
}

// Scalar returns the stored value and whether the key exists. The value is
// whatever the caller put there; no coercion is applied.
func (in *Input) Scalar() (any, bool) {
	if in.descriptor.FieldType.IsList() {
		return nil, false
	}
	return in.record.Scalar(in.descriptor.StorageKey())
}
