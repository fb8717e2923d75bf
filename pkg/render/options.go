package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// RenderOptions carry per-request data renderers use to shape their output
// without touching the descriptor catalog.
type RenderOptions struct {
	// Action is the submission URL for form-emitting renderers.
	Action string
	// Method sets the submission verb. Renderers translate non-browser verbs
	// (PUT/PATCH/DELETE) into POST plus a hidden _method input.
	Method string
	// Record supplies the stored values bound into controls. Renderers read
	// it; mutation stays with the fieldinput component.
	Record model.Record
	// Errors surfaces server-side feedback keyed by field_name. Loosely keyed
	// payloads should pass through MapErrorPayload first.
	Errors map[string][]string
	// FormErrors lists messages that belong to no single field, rendered at
	// the top of the form.
	FormErrors []string
	// Hidden lists extra hidden inputs to emit, such as a CSRF token.
	Hidden map[string]string
	// Theme optionally carries resolved theme configuration: partial
	// overrides, design tokens, CSS variables, and asset URL resolution.
	Theme *theme.RendererConfig
}
