// Package descriptor loads custom-field catalogs from the places teams keep
// them: JSON or YAML files, directory trees, and OpenAPI component schemas.
// Every loader returns a validated, sorted model.FieldSet.
package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// ParseSet decodes a descriptor document. JSON is tried first, then YAML; the
// document may be a full field set (`{"name": ..., "fields": [...]}`) or a
// bare array of descriptors, which is how the upstream API ships them.
// The source argument only labels error messages.
func ParseSet(data []byte, source string) (model.FieldSet, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return model.FieldSet{}, err
	}
	return normalizeSet(doc, source)
}

// LoadFS walks root inside fsys and merges every .json/.yaml/.yml descriptor
// file into one FieldSet. Other files are skipped. A field name appearing in
// two files is an error; the set keeps the first non-empty document name.
func LoadFS(fsys fs.FS, root string) (model.FieldSet, error) {
	if fsys == nil {
		return model.FieldSet{}, errors.New("descriptor: filesystem is required")
	}
	if root == "" {
		root = "."
	}

	merged := model.FieldSet{}
	owners := make(map[string]string)

	err := fs.WalkDir(fsys, root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}

		set, err := ParseSet(data, path)
		if err != nil {
			return err
		}

		for _, field := range set.Fields {
			if first, dup := owners[field.FieldName]; dup {
				return fmt.Errorf("descriptor: duplicate field %q (files %s, %s)", field.FieldName, first, path)
			}
			owners[field.FieldName] = path
		}

		if merged.Name == "" {
			merged.Name = set.Name
		}
		merged.Fields = append(merged.Fields, set.Fields...)
		return nil
	})
	if err != nil {
		return model.FieldSet{}, err
	}

	// Field names are unique per file already; the cross-file merge can
	// still collide on storage keys.
	if err := merged.Validate(); err != nil {
		return model.FieldSet{}, fmt.Errorf("descriptor: merge %s: %w", root, err)
	}
	merged.Fields = merged.Sorted()
	return merged, nil
}

type setDocument struct {
	Name   string                  `json:"name" yaml:"name"`
	Fields []model.FieldDescriptor `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (setDocument, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return setDocument{}, fmt.Errorf("descriptor: %s is empty", source)
	}

	var doc setDocument
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	var list []model.FieldDescriptor
	if err := json.Unmarshal(data, &list); err == nil {
		return setDocument{Fields: list}, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &list); err == nil {
		return setDocument{Fields: list}, nil
	}

	return setDocument{}, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML", source)
}

// normalizeSet trims names, fills a blank display name from the machine name,
// defaults a blank type to string, drops blank choices, then validates and
// sorts the set.
func normalizeSet(doc setDocument, source string) (model.FieldSet, error) {
	out := model.FieldSet{
		Name:   strings.TrimSpace(doc.Name),
		Fields: make([]model.FieldDescriptor, 0, len(doc.Fields)),
	}

	for idx, field := range doc.Fields {
		d := field
		d.FieldName = strings.TrimSpace(d.FieldName)
		d.FieldDisplayName = strings.TrimSpace(d.FieldDisplayName)
		d.FieldType = model.FieldType(strings.TrimSpace(string(d.FieldType)))
		d.HelpText = strings.TrimSpace(d.HelpText)
		if d.FieldName == "" {
			return model.FieldSet{}, fmt.Errorf("descriptor: %s: field at index %d is missing field_name", source, idx)
		}
		if d.FieldDisplayName == "" {
			d.FieldDisplayName = d.FieldName
		}
		if d.FieldType == "" {
			d.FieldType = model.FieldTypeString
		}
		d.Choices = cleanChoices(d.Choices)
		out.Fields = append(out.Fields, d)
	}

	if err := out.Validate(); err != nil {
		return model.FieldSet{}, fmt.Errorf("descriptor: %s: %w", source, err)
	}
	out.Fields = out.Sorted()
	return out, nil
}

func cleanChoices(raw []string) []string {
	choices := make([]string, 0, len(raw))
	for _, choice := range raw {
		if trimmed := strings.TrimSpace(choice); trimmed != "" {
			choices = append(choices, trimmed)
		}
	}
	if len(choices) == 0 {
		return nil
	}
	return choices
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
