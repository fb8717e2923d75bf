package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render"
)

type fakeRenderer struct {
	name string
}

func (f fakeRenderer) Name() string        { return f.name }
func (f fakeRenderer) ContentType() string { return "text/plain" }
func (f fakeRenderer) Render(context.Context, model.FieldSet, render.RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := render.NewRegistry()

	if err := registry.Register(fakeRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(fakeRenderer{name: "vanilla"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(fakeRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}

	got, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Fatalf("unexpected renderer: %s", got.Name())
	}

	if _, err := registry.Get("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if !registry.Has("vanilla") || registry.Has("missing") {
		t.Fatalf("Has answered wrong")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(fakeRenderer{name: "tui"})
	registry.MustRegister(fakeRenderer{name: "vanilla"})
	registry.MustRegister(fakeRenderer{name: "json"})

	want := []string{"json", "tui", "vanilla"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
