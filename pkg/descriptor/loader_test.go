package descriptor_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/beta3zer0/go-customfields/pkg/descriptor"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

func TestParseSet_JSONObject(t *testing.T) {
	data := []byte(`{
		"name": "vulnerability",
		"fields": [
			{"field_name": "severity", "field_display_name": "Severity", "field_type": "choice", "field_order": 2, "choices": ["low", "high"]},
			{"field_name": "cvss", "field_display_name": "  CVSS Vector  ", "field_type": "string", "field_order": 1}
		]
	}`)

	set, err := descriptor.ParseSet(data, "inline.json")
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	if set.Name != "vulnerability" {
		t.Fatalf("set name mismatch: %q", set.Name)
	}

	want := []model.FieldDescriptor{
		{FieldName: "cvss", FieldDisplayName: "CVSS Vector", FieldType: model.FieldTypeString, FieldOrder: 1},
		{FieldName: "severity", FieldDisplayName: "Severity", FieldType: model.FieldTypeChoice, FieldOrder: 2, Choices: []string{"low", "high"}},
	}
	if diff := cmp.Diff(want, set.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSet_YAMLFillsDefaults(t *testing.T) {
	data := []byte(`
name: vulnerability
fields:
  - field_name: refs
    field_type: list
  - field_name: notes
`)

	set, err := descriptor.ParseSet(data, "inline.yaml")
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}

	refs, ok := set.Field("refs")
	if !ok {
		t.Fatalf("refs descriptor missing: %#v", set.Fields)
	}
	if refs.FieldDisplayName != "refs" {
		t.Fatalf("display name should fall back to the machine name, got %q", refs.FieldDisplayName)
	}

	notes, ok := set.Field("notes")
	if !ok {
		t.Fatalf("notes descriptor missing: %#v", set.Fields)
	}
	if notes.FieldType != model.FieldTypeString {
		t.Fatalf("blank type should default to string, got %q", notes.FieldType)
	}
}

func TestParseSet_BareArray(t *testing.T) {
	data := []byte(`[{"field_name": "cvss", "field_display_name": "CVSS", "field_type": "string"}]`)

	set, err := descriptor.ParseSet(data, "api-payload")
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	if len(set.Fields) != 1 || set.Fields[0].FieldName != "cvss" {
		t.Fatalf("unexpected fields: %#v", set.Fields)
	}
}

func TestParseSet_InvalidPayload(t *testing.T) {
	_, err := descriptor.ParseSet([]byte("{{{ nope"), "broken.json")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Fatalf("error should name the source: %v", err)
	}
}

func TestParseSet_EmptyDocument(t *testing.T) {
	if _, err := descriptor.ParseSet([]byte("   \n"), "blank.yaml"); err == nil {
		t.Fatalf("expected error for blank document")
	}
}

func TestParseSet_RejectsDuplicateStorageKeys(t *testing.T) {
	data := []byte(`[
		{"field_name": "cvss_v3", "field_display_name": "CVSS", "field_type": "string"},
		{"field_name": "cvss_v4", "field_display_name": "CVSS", "field_type": "string"}
	]`)

	if _, err := descriptor.ParseSet(data, "dup.json"); err == nil {
		t.Fatalf("expected duplicate storage key error")
	}
}

func TestLoadFS_MergesDescriptorFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog/core.json": &fstest.MapFile{Data: []byte(`{
			"name": "vulnerability",
			"fields": [{"field_name": "cvss", "field_display_name": "CVSS Vector", "field_type": "string", "field_order": 1}]
		}`)},
		"catalog/lists.yaml": &fstest.MapFile{Data: []byte(`
fields:
  - field_name: refs
    field_display_name: Refs
    field_type: list
    field_order: 2
`)},
		"catalog/README.txt": &fstest.MapFile{Data: []byte("not a descriptor file")},
	}

	set, err := descriptor.LoadFS(fsys, "catalog")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if set.Name != "vulnerability" {
		t.Fatalf("merged set should keep the first document name, got %q", set.Name)
	}

	var names []string
	for _, field := range set.Fields {
		names = append(names, field.FieldName)
	}
	if diff := cmp.Diff([]string{"cvss", "refs"}, names); diff != "" {
		t.Fatalf("merged order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": &fstest.MapFile{Data: []byte(`[{"field_name": "cvss", "field_type": "string"}]`)},
		"b.yaml": &fstest.MapFile{Data: []byte("fields:\n  - field_name: cvss\n")},
	}

	_, err := descriptor.LoadFS(fsys, "")
	if err == nil {
		t.Fatalf("expected duplicate field error")
	}
	if !strings.Contains(err.Error(), "a.json") || !strings.Contains(err.Error(), "b.yaml") {
		t.Fatalf("error should name both files: %v", err)
	}
}

func TestLoadFS_NilFilesystem(t *testing.T) {
	if _, err := descriptor.LoadFS(nil, "."); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}
