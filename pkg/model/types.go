package model

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the declared kind of a custom field. It decides which control
// a renderer emits and whether list semantics apply to the stored value.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeList   FieldType = "list"
	FieldTypeChoice FieldType = "choice"
)

// Valid reports whether t is one of the declared field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeInt, FieldTypeList, FieldTypeChoice:
		return true
	default:
		return false
	}
}

// IsList reports whether values of this type are ordered ListEntry sequences
// rather than scalars. Unknown types degrade to scalar string handling.
func (t FieldType) IsList() bool {
	return t == FieldTypeList
}

// FieldDescriptor is the caller-supplied metadata for one custom field. It is
// immutable input: components read it, none of them mutate it. Wire names
// follow the upstream snake_case schema so descriptor files and API payloads
// round-trip unchanged.
type FieldDescriptor struct {
	// FieldName is the unique machine identifier, also used as the form
	// element id.
	FieldName string `json:"field_name" yaml:"field_name"`
	// FieldDisplayName doubles as the human label and the storage key in a
	// Record.
	FieldDisplayName string    `json:"field_display_name" yaml:"field_display_name"`
	FieldType        FieldType `json:"field_type" yaml:"field_type"`
	// FieldOrder fixes the position of the field among its siblings. Lower
	// comes first; ties break on FieldName.
	FieldOrder int `json:"field_order,omitempty" yaml:"field_order,omitempty"`
	// Choices lists the selectable options for choice-typed fields.
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	// HelpText may carry limited HTML; renderers sanitize it before output.
	HelpText string `json:"help_text,omitempty" yaml:"help_text,omitempty"`
}

// StorageKey returns the key under which this field's value lives in a
// Record: the display name, falling back to the machine name when a caller
// never set one.
func (d FieldDescriptor) StorageKey() string {
	if strings.TrimSpace(d.FieldDisplayName) != "" {
		return d.FieldDisplayName
	}
	return d.FieldName
}

// Validate checks the descriptor is structurally usable. Unknown field types
// pass: renderers degrade them to plain string handling instead of refusing
// the whole catalog.
func (d FieldDescriptor) Validate() error {
	if strings.TrimSpace(d.FieldName) == "" {
		return fmt.Errorf("model: descriptor is missing field_name")
	}
	if d.FieldType == FieldTypeChoice && len(d.Choices) == 0 {
		return fmt.Errorf("model: choice descriptor %q declares no choices", d.FieldName)
	}
	return nil
}

// FieldSet is an ordered catalog of descriptors, typically everything a
// workspace defines for one record kind.
type FieldSet struct {
	Name   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Sorted returns the descriptors ordered by FieldOrder, then FieldName. The
// receiver is left untouched.
func (s FieldSet) Sorted() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.Fields))
	copy(out, s.Fields)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FieldOrder != out[j].FieldOrder {
			return out[i].FieldOrder < out[j].FieldOrder
		}
		return out[i].FieldName < out[j].FieldName
	})
	return out
}

// Field looks a descriptor up by its machine name.
func (s FieldSet) Field(name string) (FieldDescriptor, bool) {
	for _, d := range s.Fields {
		if d.FieldName == name {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}

// Validate checks every descriptor and enforces uniqueness of both machine
// names and storage keys across the set.
func (s FieldSet) Validate() error {
	names := make(map[string]struct{}, len(s.Fields))
	keys := make(map[string]struct{}, len(s.Fields))
	for _, d := range s.Fields {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := names[d.FieldName]; dup {
			return fmt.Errorf("model: duplicate field_name %q", d.FieldName)
		}
		names[d.FieldName] = struct{}{}
		key := d.StorageKey()
		if _, dup := keys[key]; dup {
			return fmt.Errorf("model: duplicate storage key %q", key)
		}
		keys[key] = struct{}{}
	}
	return nil
}
