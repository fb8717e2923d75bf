package components

import (
	"bytes"
	"testing"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, control Control, data ComponentData) error { return nil }

	if err := reg.Register("test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, control Control, data ComponentData) error { return nil }

	if err := reg.Register("  ", Descriptor{Renderer: renderer}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("input", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryNormalizesNames(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, control Control, data ComponentData) error { return nil }

	reg.MustRegister("  List ", Descriptor{Renderer: renderer})

	if _, ok := reg.Descriptor("list"); !ok {
		t.Fatalf("expected lookup under normalized name")
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "list" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, control Control, data ComponentData) error { return nil }

	reg.MustRegister("input", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/input.css"},
		Scripts: []Script{
			{Src: "/shared.js"},
		},
	})
	reg.MustRegister("select", Descriptor{
		Renderer:    renderer,
		Stylesheets: []string{"/shared.css", "/select.css"},
		Scripts: []Script{
			{Src: "/shared.js"},
			{Src: "/select.js"},
		},
	})

	styles, scripts := reg.Assets([]string{"input", "select"})
	if len(styles) != 3 {
		t.Fatalf("expected 3 unique stylesheets, got %d: %v", len(styles), styles)
	}
	if len(scripts) != 2 {
		t.Fatalf("expected 2 unique scripts, got %d: %v", len(scripts), scripts)
	}
}

func TestDefaultRegistryCoversBuiltinComponents(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, name := range []string{NameInput, NameNumber, NameSelect, NameList} {
		if _, ok := reg.Descriptor(name); !ok {
			t.Fatalf("default registry is missing %q", name)
		}
	}
}

func TestCloneIsolatesMutations(t *testing.T) {
	reg := NewDefaultRegistry()
	clone := reg.Clone()

	renderer := func(buf *bytes.Buffer, control Control, data ComponentData) error { return nil }
	clone.MustRegister("extra", Descriptor{Renderer: renderer})

	if _, ok := reg.Descriptor("extra"); ok {
		t.Fatalf("clone mutation leaked into the source registry")
	}
}
