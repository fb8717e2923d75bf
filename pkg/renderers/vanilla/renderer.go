// Package vanilla renders a custom-field set as framework-free HTML: one
// form, one control per descriptor, plus the embedded stylesheet and the
// list-entry glue script.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render"
	rendertemplate "github.com/beta3zer0/go-customfields/pkg/render/template"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[string]string
	defaultStyles    bool
	stylesheets      []string
	scriptURL        string
	submitLabel      string
	formID           string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default control component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides forces specific fields onto named components,
// keyed by field machine name.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		if len(overrides) == 0 {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]string, len(overrides))
		}
		for name, component := range overrides {
			cfg.overrides[name] = component
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the rendered form.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// WithStylesheet adds a stylesheet link to the rendered form. Callers serving
// AssetsFS over HTTP pass the mounted href here.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithScriptURL emits the list glue script as an external src instead of
// inlining the embedded copy.
func WithScriptURL(src string) Option {
	return func(cfg *config) {
		cfg.scriptURL = strings.TrimSpace(src)
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithFormID sets an explicit id attribute on the form element.
func WithFormID(id string) Option {
	return func(cfg *config) {
		cfg.formID = strings.TrimSpace(id)
	}
}

type Renderer struct {
	templates     rendertemplate.TemplateRenderer
	registry      *components.Registry
	overrides     map[string]string
	defaultStyles bool
	stylesheets   []string
	scriptURL     string
	submitLabel   string
	formID        string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		submitLabel: "Save",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := rendertemplate.New(
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{
		templates:     renderer,
		registry:      registry,
		overrides:     cloneStringMap(cfg.overrides),
		defaultStyles: cfg.defaultStyles,
		stylesheets:   cfg.stylesheets,
		scriptURL:     cfg.scriptURL,
		submitLabel:   cfg.submitLabel,
		formID:        cfg.formID,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, fields model.FieldSet, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("vanilla renderer: invalid field set: %w", err)
	}

	var partials map[string]string
	if options.Theme != nil {
		partials = options.Theme.Partials
	}
	cr := newComponentRenderer(r.templates, r.registry, r.overrides, partials)

	sorted := fields.Sorted()
	renderedFields := make([]string, 0, len(sorted))
	for _, field := range sorted {
		markup, err := cr.render(controlFor(field, options))
		if err != nil {
			return nil, err
		}
		renderedFields = append(renderedFields, markup)
	}

	form := r.formContext(options, renderedFields, cr)

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": form,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// controlFor binds a descriptor to its stored value for rendering. List
// fields read their committed entries; everything else reads a scalar.
func controlFor(field model.FieldDescriptor, options render.RenderOptions) components.Control {
	control := components.Control{
		Field:       field,
		ID:          controlID(field.FieldName),
		InputName:   field.FieldName,
		PendingName: PendingInputName(field.FieldName),
		Errors:      options.Errors[field.FieldName],
	}

	key := field.StorageKey()
	if field.FieldType.IsList() {
		control.Entries = options.Record.Entries(key)
		return control
	}
	if value, ok := options.Record.Scalar(key); ok && value != nil {
		control.Value = fmt.Sprint(value)
	}
	return control
}

func (r *Renderer) formContext(options render.RenderOptions, renderedFields []string, cr *componentRenderer) map[string]any {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = "POST"
	}

	hidden := options.Hidden
	if method != "GET" && method != "POST" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden(render.MethodOverrideField, method))
		method = "POST"
	}

	hiddenFields := make([]map[string]any, 0, len(hidden))
	for _, field := range render.SortedHiddenFields(hidden) {
		hiddenFields = append(hiddenFields, map[string]any{
			"name":  field.Name,
			"value": field.Value,
		})
	}

	styles := ""
	if r.defaultStyles {
		styles = defaultStylesheet()
	}
	if options.Theme != nil && len(options.Theme.CSSVars) > 0 {
		styles = joinStyleBlocks(cssVarsBlock(options.Theme.CSSVars), styles)
	}

	links := append([]string(nil), r.stylesheets...)
	componentStyles, componentScripts := cr.assets()
	links = append(links, componentStyles...)
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL(StylesheetName); href != "" {
			links = append(links, href)
		}
	}

	scripts := make([]map[string]any, 0, len(componentScripts)+1)
	if cr.used(components.NameList) {
		if r.scriptURL != "" {
			scripts = append(scripts, map[string]any{"src": r.scriptURL, "defer": true})
		} else if glue := runtimeScript(); glue != "" {
			scripts = append(scripts, map[string]any{"inline": glue})
		}
	}
	for _, script := range componentScripts {
		entry := map[string]any{}
		if script.Src != "" {
			entry["src"] = script.Src
			entry["module"] = script.Module
			entry["defer"] = script.Defer
		} else if script.Inline != "" {
			entry["inline"] = script.Inline
		} else {
			continue
		}
		scripts = append(scripts, entry)
	}

	return map[string]any{
		"id":               r.formID,
		"class":            string(ClassForm),
		"action":           options.Action,
		"method":           method,
		"errors":           options.FormErrors,
		"errors_class":     string(ClassErrors),
		"fields":           renderedFields,
		"hidden":           hiddenFields,
		"styles":           styles,
		"stylesheet_links": links,
		"actions_class":    string(ClassActions),
		"submit_label":     r.submitLabel,
		"scripts":          scripts,
	}
}

// cssVarsBlock emits theme CSS custom properties scoped to the form chrome.
func cssVarsBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString("." + string(ClassForm) + " {\n")
	for _, name := range names {
		value := vars[name]
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		builder.WriteString("  ")
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString(";\n")
	}
	builder.WriteString("}")
	return builder.String()
}

func joinStyleBlocks(blocks ...string) string {
	kept := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block = strings.TrimSpace(block); block != "" {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}
