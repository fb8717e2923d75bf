package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/beta3zer0/go-customfields/internal/source"
)

func TestFromString(t *testing.T) {
	if got := source.FromString("https://example.com/fields.json"); got.Kind() != source.KindURL {
		t.Fatalf("expected URL kind, got %q", got.Kind())
	}
	if got := source.FromString("./testdata/fields.json"); got.Kind() != source.KindFile {
		t.Fatalf("expected file kind, got %q", got.Kind())
	}
}

func TestFromURL_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	source.FromURL("://nope")
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	if err := os.WriteFile(path, []byte(`[{"field_name": "cvss"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fetcher := source.NewFetcher()
	data, err := fetcher.Fetch(context.Background(), source.FromFile(path))
	if err != nil {
		t.Fatalf("fetch file: %v", err)
	}
	if !strings.Contains(string(data), "cvss") {
		t.Fatalf("unexpected payload: %s", data)
	}
}

func TestFetch_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog/fields.yaml": &fstest.MapFile{Data: []byte("fields: []\n")},
	}

	fetcher := source.NewFetcher(source.WithFS(fsys))
	data, err := fetcher.Fetch(context.Background(), source.FromFS("catalog/fields.yaml"))
	if err != nil {
		t.Fatalf("fetch fs: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected payload")
	}

	bare := source.NewFetcher()
	if _, err := bare.Fetch(context.Background(), source.FromFS("catalog/fields.yaml")); err == nil {
		t.Fatalf("expected error without a configured filesystem")
	}
}

func TestFetch_HTTP(t *testing.T) {
	payload := `{"fields": [{"field_name": "cvss"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	fetcher := source.NewFetcher(source.WithHTTP())
	data, err := fetcher.Fetch(context.Background(), source.FromURL(server.URL))
	if err != nil {
		t.Fatalf("fetch http: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("payload mismatch: %s", data)
	}

	disabled := source.NewFetcher()
	if _, err := disabled.Fetch(context.Background(), source.FromURL(server.URL)); err == nil {
		t.Fatalf("expected error with http disabled")
	}
}

func TestFetch_HTTPRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := source.NewFetcher(source.WithHTTP())
	if _, err := fetcher.Fetch(context.Background(), source.FromURL(server.URL)); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestFetch_SizeLimit(t *testing.T) {
	fsys := fstest.MapFS{
		"big.json": &fstest.MapFile{Data: []byte(strings.Repeat("x", 64))},
	}

	fetcher := source.NewFetcher(source.WithFS(fsys), source.WithMaxBytes(16))
	if _, err := fetcher.Fetch(context.Background(), source.FromFS("big.json")); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := source.NewFetcher(source.WithFS(fstest.MapFS{}))
	if _, err := fetcher.Fetch(ctx, source.FromFS("missing.json")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFetch_UnknownKind(t *testing.T) {
	var zero source.Source
	fetcher := source.NewFetcher()
	if _, err := fetcher.Fetch(context.Background(), zero); err == nil {
		t.Fatalf("expected error for zero source")
	}
}
