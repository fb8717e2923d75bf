package model

import "fmt"

// ListEntry is one element of a list-typed custom field value. Uniqueness
// within a field's list is by Value equality; order is insertion order.
type ListEntry struct {
	Value string `json:"value" yaml:"value"`
}

// Record holds the custom-field values of one domain record (a vulnerability,
// a host), keyed by each field's storage key. The parent form owns it;
// components mutate it in place and never copy or replace it. Values are
// scalars for scalar-typed fields and ListEntry sequences for list-typed
// fields. Sequences that went through a JSON or YAML round-trip arrive as
// []any of loosely typed elements; the accessors below normalize those shapes
// back into []ListEntry.
type Record map[string]any

// Entries returns the list value stored under key as a normalized copy.
// Missing, nil, and non-sequence values yield nil.
func (r Record) Entries(key string) []ListEntry {
	if r == nil {
		return nil
	}
	entries, ok := EntriesValue(r[key])
	if !ok {
		return nil
	}
	return entries
}

// SetEntries stores entries under key in the canonical []ListEntry shape.
// A nil slice is stored as an empty sequence, not removed: once a list field
// exists in the record it never reverts to absent.
func (r Record) SetEntries(key string, entries []ListEntry) {
	if entries == nil {
		entries = []ListEntry{}
	}
	r[key] = entries
}

// Scalar returns the raw value stored under key and whether the key exists.
// No coercion happens here: scalar bindings reflect the record directly.
func (r Record) Scalar(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	return v, ok
}

// EntriesValue coerces a stored value into a ListEntry sequence. It accepts
// the canonical []ListEntry plus the shapes decoders produce: []any holding
// ListEntry values, {"value": ...} maps, or bare strings. Elements of any
// other shape are skipped. The second return is false when v is not a
// sequence at all.
func EntriesValue(v any) ([]ListEntry, bool) {
	switch seq := v.(type) {
	case nil:
		return nil, false
	case []ListEntry:
		out := make([]ListEntry, len(seq))
		copy(out, seq)
		return out, true
	case []any:
		out := make([]ListEntry, 0, len(seq))
		for _, elem := range seq {
			if entry, ok := entryValue(elem); ok {
				out = append(out, entry)
			}
		}
		return out, true
	case []map[string]any:
		out := make([]ListEntry, 0, len(seq))
		for _, elem := range seq {
			if entry, ok := entryValue(elem); ok {
				out = append(out, entry)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func entryValue(elem any) (ListEntry, bool) {
	switch e := elem.(type) {
	case ListEntry:
		return e, true
	case *ListEntry:
		if e == nil {
			return ListEntry{}, false
		}
		return *e, true
	case string:
		return ListEntry{Value: e}, true
	case map[string]any:
		raw, ok := e["value"]
		if !ok {
			return ListEntry{}, false
		}
		if s, ok := raw.(string); ok {
			return ListEntry{Value: s}, true
		}
		return ListEntry{Value: fmt.Sprint(raw)}, true
	default:
		return ListEntry{}, false
	}
}
