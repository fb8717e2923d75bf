package fieldinput_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/beta3zer0/go-customfields/pkg/fieldinput"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

func refsDescriptor() model.FieldDescriptor {
	return model.FieldDescriptor{
		FieldName:        "refs",
		FieldDisplayName: "Refs",
		FieldType:        model.FieldTypeList,
	}
}

func newListInput(t *testing.T, record model.Record) *fieldinput.Input {
	t.Helper()

	in, err := fieldinput.New(refsDescriptor(), record)
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	return in
}

func TestNew_Validation(t *testing.T) {
	if _, err := fieldinput.New(refsDescriptor(), nil); err == nil {
		t.Fatalf("expected error for nil record")
	}
	if _, err := fieldinput.New(model.FieldDescriptor{FieldType: model.FieldTypeList}, model.Record{}); err == nil {
		t.Fatalf("expected error for missing field_name")
	}
}

func TestAddValue_AppendsAndClearsPending(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)

	in.SetPending("CVE-2024-0001")
	if !in.AddValue(in.Pending()) {
		t.Fatalf("expected list to change")
	}

	if in.Pending() != "" {
		t.Fatalf("pending text not cleared: %q", in.Pending())
	}
	want := []model.ListEntry{{Value: "CVE-2024-0001"}}
	if diff := cmp.Diff(want, record.Entries("Refs")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestAddValue_DuplicateClearsPendingLeavesListAlone(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)
	in.AddValue("CVE-2024-0001")

	in.SetPending("CVE-2024-0001")
	if in.AddValue(in.Pending()) {
		t.Fatalf("duplicate add should not change the list")
	}

	if in.Pending() != "" {
		t.Fatalf("pending text should clear on a duplicate submission too")
	}
	want := []model.ListEntry{{Value: "CVE-2024-0001"}}
	if diff := cmp.Diff(want, record.Entries("Refs")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestAddValue_EmptyLeavesEverythingAlone(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)
	in.SetPending("typed but not submitted")

	if in.AddValue("") {
		t.Fatalf("empty add should be a no-op")
	}

	if in.Pending() != "typed but not submitted" {
		t.Fatalf("pending text should survive an empty add: %q", in.Pending())
	}
	if _, exists := record["Refs"]; exists {
		t.Fatalf("empty add must not initialize the list")
	}
}

func TestRemoveValue_PreservesSurvivorOrder(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)
	for _, v := range []string{"a", "b", "c", "d"} {
		in.AddValue(v)
	}

	if !in.RemoveValue(1) {
		t.Fatalf("expected removal")
	}

	want := []model.ListEntry{{Value: "a"}, {Value: "c"}, {Value: "d"}}
	if diff := cmp.Diff(want, record.Entries("Refs")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveValue_OutOfRangeIsNoOp(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)
	in.AddValue("only")

	for _, index := range []int{-1, 1, 99} {
		if in.RemoveValue(index) {
			t.Fatalf("index %d should be a no-op", index)
		}
	}

	want := []model.ListEntry{{Value: "only"}}
	if diff := cmp.Diff(want, record.Entries("Refs")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveValue_LastEntryKeepsFieldPresent(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)
	in.AddValue("only")

	if !in.RemoveValue(0) {
		t.Fatalf("expected removal")
	}

	stored, exists := record["Refs"]
	if !exists {
		t.Fatalf("field must stay present after removing its last entry")
	}
	entries, ok := model.EntriesValue(stored)
	if !ok || len(entries) != 0 {
		t.Fatalf("expected empty list, got %#v", stored)
	}
}

func TestReferencesScenario(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)

	in.AddValue("CVE-1")
	want := model.Record{"Refs": []model.ListEntry{{Value: "CVE-1"}}}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("after first add (-want +got):\n%s", diff)
	}

	in.AddValue("CVE-1")
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("after duplicate add (-want +got):\n%s", diff)
	}

	in.AddValue("CVE-2")
	want = model.Record{"Refs": []model.ListEntry{{Value: "CVE-1"}, {Value: "CVE-2"}}}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("after second add (-want +got):\n%s", diff)
	}

	in.RemoveValue(0)
	want = model.Record{"Refs": []model.ListEntry{{Value: "CVE-2"}}}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("after removal (-want +got):\n%s", diff)
	}
}

func TestAddValue_DedupesAgainstDecodedJSONList(t *testing.T) {
	var record model.Record
	payload := []byte(`{"Refs": [{"value": "CVE-1"}, {"value": "CVE-2"}]}`)
	if err := json.Unmarshal(payload, &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}

	in := newListInput(t, record)
	if in.AddValue("CVE-1") {
		t.Fatalf("value from the decoded list should count as a duplicate")
	}
	if !in.AddValue("CVE-3") {
		t.Fatalf("expected append")
	}

	want := []model.ListEntry{{Value: "CVE-1"}, {Value: "CVE-2"}, {Value: "CVE-3"}}
	if diff := cmp.Diff(want, record.Entries("Refs")); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestScalarBindingReflectsRecord(t *testing.T) {
	record := model.Record{}
	descriptor := model.FieldDescriptor{
		FieldName:        "retest_round",
		FieldDisplayName: "Retest Round",
		FieldType:        model.FieldTypeInt,
	}
	in, err := fieldinput.New(descriptor, record)
	if err != nil {
		t.Fatalf("new input: %v", err)
	}

	in.SetScalar("3")
	if got, ok := in.Scalar(); !ok || got != "3" {
		t.Fatalf("scalar binding mismatch: %v (%t)", got, ok)
	}
	if record["Retest Round"] != "3" {
		t.Fatalf("record not mutated in place: %#v", record)
	}

	// The caller owns the record; external writes show through the binding.
	record["Retest Round"] = 7
	if got, _ := in.Scalar(); got != 7 {
		t.Fatalf("external mutation not visible: %v", got)
	}

	// No list logic applies to scalar fields.
	if in.AddValue("3") || in.RemoveValue(0) {
		t.Fatalf("list operations must be no-ops on scalar fields")
	}
	if in.Entries() != nil {
		t.Fatalf("scalar fields expose no entries")
	}
	if record["Retest Round"] != 7 {
		t.Fatalf("no-ops must not touch the stored value")
	}
}

func TestSetScalar_IgnoredForListFields(t *testing.T) {
	record := model.Record{}
	in := newListInput(t, record)

	in.SetScalar("nope")
	if _, exists := record["Refs"]; exists {
		t.Fatalf("scalar write must not touch a list field")
	}
	if _, ok := in.Scalar(); ok {
		t.Fatalf("scalar read is undefined for list fields")
	}
}
