package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestTemplatesFSContainsBundledTemplates(t *testing.T) {
	for _, path := range []string{
		"templates/form.tmpl",
		"templates/components/input.tmpl",
		"templates/components/number.tmpl",
		"templates/components/select.tmpl",
		"templates/components/list.tmpl",
	} {
		if _, err := fs.Stat(TemplatesFS(), path); err != nil {
			t.Fatalf("missing %s: %v", path, err)
		}
	}
}

func TestAssetsFSContainsRuntimeBundle(t *testing.T) {
	assets := AssetsFS()

	css, err := fs.ReadFile(assets, StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(css), ".cf-form") {
		t.Fatalf("stylesheet lacks chrome rules")
	}

	script, err := fs.ReadFile(assets, RuntimeScriptName)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(script), "data-cf-list") {
		t.Fatalf("glue script lacks list wiring")
	}
}

func TestDefaultStylesheetIsEmbedded(t *testing.T) {
	if defaultStylesheet() == "" {
		t.Fatalf("default stylesheet is empty")
	}
	if runtimeScript() == "" {
		t.Fatalf("runtime script is empty")
	}
}
