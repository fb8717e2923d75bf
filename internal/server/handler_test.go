package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
)

func testFields() model.FieldSet {
	return model.FieldSet{
		Name: "vulnerability",
		Fields: []model.FieldDescriptor{
			{FieldName: "cvss", FieldDisplayName: "CVSS Vector", FieldType: model.FieldTypeString, FieldOrder: 1},
			{FieldName: "retest_round", FieldDisplayName: "Retest Round", FieldType: model.FieldTypeInt, FieldOrder: 2},
			{FieldName: "severity", FieldDisplayName: "Severity", FieldType: model.FieldTypeChoice, FieldOrder: 3, Choices: []string{"low", "medium", "high"}},
			{FieldName: "refs", FieldDisplayName: "Refs", FieldType: model.FieldTypeList, FieldOrder: 4},
		},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *RecordStore) {
	t.Helper()

	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla renderer: %v", err)
	}

	store := NewRecordStore()
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	RegisterRoutes(app, NewHandler(testFields(), store, renderer))
	return app, store
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	if err := json.Unmarshal(data, target); err != nil {
		t.Fatalf("decode body %s: %v", data, err)
	}
}

type listResponse struct {
	Data struct {
		Field   string            `json:"field"`
		Added   bool              `json:"added"`
		Removed bool              `json:"removed"`
		Values  []model.ListEntry `json:"values"`
	} `json:"data"`
}

type recordResponse struct {
	Data map[string]any `json:"data"`
}

func TestAddListValue_SilentDedupe(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/records/vuln-1/fields/refs/values", `{"value": "CVE-2024-0001"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var first listResponse
	decodeJSON(t, resp, &first)
	if !first.Data.Added || len(first.Data.Values) != 1 {
		t.Fatalf("first add should append: %+v", first.Data)
	}

	resp, err = app.Test(jsonRequest("POST", "/records/vuln-1/fields/refs/values", `{"value": "CVE-2024-0001"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("duplicate add must stay a success, got %d", resp.StatusCode)
	}
	var second listResponse
	decodeJSON(t, resp, &second)
	if second.Data.Added || len(second.Data.Values) != 1 {
		t.Fatalf("duplicate add should keep the list unchanged: %+v", second.Data)
	}
}

func TestAddListValue_EmptyIsNoOp(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/records/vuln-1/fields/refs/values", `{"value": ""}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out listResponse
	decodeJSON(t, resp, &out)
	if out.Data.Added || len(out.Data.Values) != 0 {
		t.Fatalf("empty add should change nothing: %+v", out.Data)
	}
}

func TestRemoveListValue(t *testing.T) {
	app, store := newTestApp(t)

	for _, value := range []string{"CVE-2024-0001", "CVE-2024-0002"} {
		if _, err := app.Test(jsonRequest("POST", "/records/vuln-2/fields/refs/values", `{"value": "`+value+`"}`), -1); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	resp, err := app.Test(jsonRequest("DELETE", "/records/vuln-2/fields/refs/values/0", ""), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out listResponse
	decodeJSON(t, resp, &out)
	if !out.Data.Removed || len(out.Data.Values) != 1 || out.Data.Values[0].Value != "CVE-2024-0002" {
		t.Fatalf("remove should splice index 0: %+v", out.Data)
	}

	// Out-of-range removal answers 200 with the unchanged list.
	resp, err = app.Test(jsonRequest("DELETE", "/records/vuln-2/fields/refs/values/7", ""), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for out-of-range index, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &out)
	if out.Data.Removed || len(out.Data.Values) != 1 {
		t.Fatalf("out-of-range remove should change nothing: %+v", out.Data)
	}

	// Removing the last entry leaves the field present with an empty list.
	if _, err := app.Test(jsonRequest("DELETE", "/records/vuln-2/fields/refs/values/0", ""), -1); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	record := store.Record("vuln-2")
	value, exists := record["Refs"]
	if !exists {
		t.Fatalf("emptied list field should stay present: %#v", record)
	}
	if entries, _ := model.EntriesValue(value); len(entries) != 0 {
		t.Fatalf("expected empty list, got %#v", entries)
	}
}

func TestPutScalar(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/records/vuln-3/fields/cvss", `{"value": "AV:N/AC:L"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out recordResponse
	decodeJSON(t, resp, &out)
	if out.Data["CVSS Vector"] != "AV:N/AC:L" {
		t.Fatalf("scalar not stored under display name: %#v", out.Data)
	}

	resp, err = app.Test(jsonRequest("PUT", "/records/vuln-3/fields/retest_round", `{"value": "3"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decodeJSON(t, resp, &out)
	if got, ok := out.Data["Retest Round"].(float64); !ok || got != 3 {
		t.Fatalf("int field should parse numeric strings: %#v", out.Data)
	}
}

func TestPutScalar_TypeHintFailure(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/records/vuln-4/fields/retest_round", `{"value": "three"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	decodeJSON(t, resp, &errResp)
	if errResp.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", errResp.Error.Code)
	}
	if len(errResp.Error.Details) != 1 || errResp.Error.Details[0].Field != "retest_round" {
		t.Fatalf("details should name the field: %+v", errResp.Error.Details)
	}
}

func TestPutScalar_ChoiceMustMatchDeclaredOptions(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/records/vuln-4/fields/severity", `{"value": "critical"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422 for undeclared choice, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest("PUT", "/records/vuln-4/fields/severity", `{"value": "high"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out recordResponse
	decodeJSON(t, resp, &out)
	if out.Data["Severity"] != "high" {
		t.Fatalf("declared choice should store: %#v", out.Data)
	}
}

func TestPutScalar_RejectsListFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/records/vuln-4/fields/refs", `{"value": "CVE-2024-0001"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUnknownFieldReturns404(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/records/vuln-5/fields/nonexistent", `{"value": "x"}`), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var errResp ErrorResponse
	decodeJSON(t, resp, &errResp)
	if errResp.Error.Code != "UNKNOWN_FIELD" {
		t.Fatalf("expected UNKNOWN_FIELD, got %s", errResp.Error.Code)
	}
	if !strings.Contains(errResp.Error.Message, "nonexistent") {
		t.Fatalf("message should name the field: %s", errResp.Error.Message)
	}
}

func TestForm_RendersHTML(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/records/vuln-6/form", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)
	for _, want := range []string{
		`class="cf-form"`,
		`action="/records/vuln-6/form"`,
		`data-field="refs"`,
		`data-field="cvss"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("form missing %q:\n%s", want, html)
		}
	}
}

func TestSubmitForm_SavesAndRedirects(t *testing.T) {
	app, store := newTestApp(t)

	resp, err := app.Test(formRequest("/records/vuln-7/form", url.Values{
		"cvss":         {"AV:N/AC:L"},
		"retest_round": {"4"},
		"severity":     {"high"},
		"refs":         {"CVE-2024-0001", "CVE-2024-0002"},
		"refs__new":    {"CVE-2024-0003"},
	}), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 303 {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/records/vuln-7/form" {
		t.Fatalf("unexpected redirect target %q", loc)
	}

	record := store.Record("vuln-7")
	if record["CVSS Vector"] != "AV:N/AC:L" || record["Severity"] != "high" {
		t.Fatalf("scalars not saved: %#v", record)
	}
	if record["Retest Round"] != 4 {
		t.Fatalf("int field should store a parsed int: %#v", record["Retest Round"])
	}

	entries := record.Entries("Refs")
	if len(entries) != 3 || entries[2].Value != "CVE-2024-0003" {
		t.Fatalf("list should hold committed entries plus the staged value: %#v", entries)
	}
}

func TestSubmitForm_PendingValueDedupes(t *testing.T) {
	app, store := newTestApp(t)

	if _, err := app.Test(formRequest("/records/vuln-8/form", url.Values{
		"refs":      {"CVE-2024-0001"},
		"refs__new": {"CVE-2024-0001"},
	}), -1); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	entries := store.Record("vuln-8").Entries("Refs")
	if len(entries) != 1 {
		t.Fatalf("staged duplicate should be dropped silently: %#v", entries)
	}
}

func TestSubmitForm_TypeErrorRerenders(t *testing.T) {
	app, store := newTestApp(t)

	resp, err := app.Test(formRequest("/records/vuln-9/form", url.Values{
		"retest_round": {"not-a-number"},
	}), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)
	if !strings.Contains(html, "cf-errors") || !strings.Contains(html, "not an integer") {
		t.Fatalf("re-rendered form should show the type error:\n%s", html)
	}

	if _, exists := store.Record("vuln-9")["Retest Round"]; exists {
		t.Fatalf("failed submission must not store the value")
	}
}

func TestFields_ReturnsSortedCatalog(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fields", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var out struct {
		Data model.FieldSet `json:"data"`
	}
	decodeJSON(t, resp, &out)
	if len(out.Data.Fields) != 4 || out.Data.Fields[0].FieldName != "cvss" {
		t.Fatalf("catalog should come back sorted: %#v", out.Data.Fields)
	}
}
