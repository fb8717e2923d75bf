package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render/template"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		overrides:      cloneStringMap(overrides),
		partials:       cloneStringMap(partials),
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(control components.Control) (string, error) {
	componentName := r.overrides[control.Field.FieldName]
	if componentName == "" {
		componentName = resolveComponentName(control.Field)
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("vanilla: component %q not registered for field %q", componentName, control.Field.FieldName)
	}

	data := components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, data); err != nil {
		return "", fmt.Errorf("vanilla: render component %q for field %q: %w", componentName, control.Field.FieldName, err)
	}

	r.usedComponents[componentName] = struct{}{}

	return buildFieldMarkup(control, componentName, buf.String()), nil
}

func (r *componentRenderer) used(name string) bool {
	_, ok := r.usedComponents[name]
	return ok
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if r.registry == nil || len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.registry.Assets(names)
}

// resolveComponentName maps a declared field type onto a control component.
// Unknown types degrade to the plain text input so a stale descriptor file
// never breaks a form.
func resolveComponentName(field model.FieldDescriptor) string {
	switch field.FieldType {
	case model.FieldTypeInt:
		return components.NameNumber
	case model.FieldTypeChoice:
		return components.NameSelect
	case model.FieldTypeList:
		return components.NameList
	default:
		return components.NameInput
	}
}

func buildFieldMarkup(control components.Control, componentName, controlHTML string) string {
	field := control.Field

	var builder strings.Builder
	builder.Grow(len(controlHTML) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(field.FieldName))
	builder.WriteString(`"`)
	if componentName != "" {
		builder.WriteString(` data-component="`)
		builder.WriteString(html.EscapeString(componentName))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")

	if label := strings.TrimSpace(field.FieldDisplayName); label != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(control.ID))
		builder.WriteString(`" class="`)
		builder.WriteString(string(ClassLabel))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(controlHTML, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if len(control.Errors) > 0 {
		builder.WriteString(`    <ul class="`)
		builder.WriteString(string(ClassErrors))
		builder.WriteString(`">`)
		for _, message := range control.Errors {
			builder.WriteString(`<li>`)
			builder.WriteString(html.EscapeString(message))
			builder.WriteString(`</li>`)
		}
		builder.WriteString("</ul>\n")
	}

	if help := sanitizeHelpMarkup(field.HelpText); help != "" {
		builder.WriteString(`    <small class="`)
		builder.WriteString(string(ClassHelp))
		builder.WriteString(`">`)
		builder.WriteString(help)
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
