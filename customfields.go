// Package customfields renders and edits the custom fields a reporting
// workspace attaches to its records. A descriptor catalog declares the
// fields, a record carries the values, and renderers project them as an HTML
// form or an interactive terminal session. The widget rules both surfaces
// share (pending text, silent deduped adds, positional removal) live in
// pkg/fieldinput.
package customfields

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/beta3zer0/go-customfields/pkg/fieldinput"
	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render"
	"github.com/beta3zer0/go-customfields/pkg/renderers/tui"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
)

// Aliases for the core types so most integrations only import this package.
type (
	FieldType       = model.FieldType
	FieldDescriptor = model.FieldDescriptor
	FieldSet        = model.FieldSet
	Record          = model.Record
	ListEntry       = model.ListEntry
	Input           = fieldinput.Input
)

// Field type constants re-exported from pkg/model.
const (
	FieldTypeString = model.FieldTypeString
	FieldTypeInt    = model.FieldTypeInt
	FieldTypeList   = model.FieldTypeList
	FieldTypeChoice = model.FieldTypeChoice
)

// RenderOptions carries per-request data: the bound record, field errors,
// hidden inputs, theme configuration.
type RenderOptions = render.RenderOptions

// ErrorMapping is the result of normalizing a loose error payload onto a
// catalog; see MapErrorPayload.
type ErrorMapping = render.ErrorMapping

// NewInput binds a descriptor to a caller-owned record.
func NewInput(descriptor FieldDescriptor, record Record) (*Input, error) {
	return fieldinput.New(descriptor, record)
}

// RenderHTML renders the catalog as a standalone HTML form in one call.
// Renderer options configure templates, components, assets, and chrome.
func RenderHTML(ctx context.Context, fields FieldSet, options RenderOptions, rendererOptions ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(rendererOptions...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, fields, options)
}

// EditRecord runs an interactive terminal session over the catalog, mutating
// record in place and returning the serialized result (JSON unless an editor
// option picks another format).
func EditRecord(ctx context.Context, fields FieldSet, record Record, editorOptions ...tui.Option) ([]byte, error) {
	editor, err := tui.New(editorOptions...)
	if err != nil {
		return nil, err
	}
	return editor.Render(ctx, fields, RenderOptions{Record: record})
}

// NewRendererRegistry returns a registry with the built-in renderers
// registered under their names ("vanilla", "tui") so callers can resolve one
// per request.
func NewRendererRegistry(vanillaOptions []vanilla.Option, tuiOptions []tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New(vanillaOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	editor, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(editor); err != nil {
		return nil, err
	}

	return registry, nil
}

// MapErrorPayload normalizes a loosely keyed error payload (machine names,
// display names, pointer-ish paths) onto the catalog, splitting messages into
// per-field and form-level buckets.
func MapErrorPayload(fields FieldSet, payload map[string][]string) ErrorMapping {
	return render.MapErrorPayload(fields, payload)
}

// ThemeFromManifest resolves a go-theme manifest and variant into the
// renderer configuration RenderOptions.Theme expects.
func ThemeFromManifest(manifest *theme.Manifest, variant string, fallbacks map[string]string) *theme.RendererConfig {
	return render.ThemeFromManifest(manifest, variant, fallbacks)
}
