package references

import (
	"strings"
	"testing"
)

func TestLoadReferences_DedupesAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
CWE-79	Cross-site Scripting
CWE-89	SQL Injection
CWE-79	Duplicate entry

A01:2021	Broken Access Control
`)

	catalog, err := LoadReferences(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(catalog) != 3 {
		t.Fatalf("expected 3 references, got %d", len(catalog))
	}
	if catalog[0].ID != "CWE-79" || catalog[0].Title != "Cross-site Scripting" {
		t.Fatalf("unexpected first reference: %#v", catalog[0])
	}
	if catalog[1].ID != "CWE-89" || catalog[2].ID != "A01:2021" {
		t.Fatalf("unexpected catalog order: %#v", catalog)
	}
}

func TestLoadReferences_MalformedLine(t *testing.T) {
	input := strings.NewReader("CWE-79 Cross-site Scripting\n")

	if _, err := LoadReferences(input); err == nil {
		t.Fatal("expected an error for a line without a tab separator")
	}
}

func TestDefaultReferences_ContainsCuratedEntries(t *testing.T) {
	catalog, err := DefaultReferences()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(catalog) < 30 {
		t.Fatalf("expected a reasonably sized catalog, got %d", len(catalog))
	}

	for _, expected := range []string{"A01:2021", "CWE-79", "CWE-89"} {
		if !containsID(catalog, expected) {
			t.Fatalf("expected reference %q to be present", expected)
		}
	}
}

func TestSearch_CaseInsensitiveContainsOnIDAndTitle(t *testing.T) {
	catalog := []Reference{
		{ID: "CWE-79", Title: "Cross-site Scripting"},
		{ID: "CWE-89", Title: "SQL Injection"},
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(catalog, "sCrIpT", 10, opts)
	if len(results) != 1 || results[0].ID != "CWE-79" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearch_IDPrefixBeforeTitleMatch(t *testing.T) {
	catalog := []Reference{
		{ID: "A03:2021", Title: "Injection includes CWE-89"},
		{ID: "CWE-862", Title: "Missing Authorization"},
		{ID: "CWE-89", Title: "SQL Injection"},
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(catalog, "cwe-8", 10, opts)
	want := []string{"CWE-862", "CWE-89", "A03:2021"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %#v", len(want), len(results), results)
	}
	for i := range want {
		if results[i].ID != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q (results: %#v)", i, results[i].ID, want[i], results)
		}
	}
}

func TestSearch_EmptyQueryTopKeepsRankOrder(t *testing.T) {
	catalog := []Reference{
		{ID: "A01:2021", Title: "Broken Access Control"},
		{ID: "A02:2021", Title: "Cryptographic Failures"},
		{ID: "A03:2021", Title: "Injection"},
	}
	opts := NewOptions(WithDefaultLimit(2), WithEmptySearchMode(EmptySearchTop))

	results := Search(catalog, "", 0, opts)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
	if results[0].ID != "A01:2021" || results[1].ID != "A02:2021" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestSearchOptions_MapsValueAndLabel(t *testing.T) {
	catalog := []Reference{
		{ID: "CWE-79", Title: "Cross-site Scripting"},
		{ID: "OWASP-ASVS"},
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := SearchOptions(catalog, "cwe-79", 10, opts)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "CWE-79" || results[0].Label != "CWE-79: Cross-site Scripting" {
		t.Fatalf("unexpected option: %#v", results[0])
	}

	results = SearchOptions(catalog, "asvs", 10, opts)
	if len(results) != 1 || results[0].Label != "OWASP-ASVS" {
		t.Fatalf("expected a bare id label for title-less references, got %#v", results)
	}
}

func containsID(catalog []Reference, id string) bool {
	for _, ref := range catalog {
		if ref.ID == id {
			return true
		}
	}
	return false
}
