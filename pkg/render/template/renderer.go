package template

import "io"

// TemplateRenderer is the engine seam control templates render through. The
// vanilla renderer ships a pongo2-backed implementation; callers with their
// own pipeline can inject anything satisfying this contract.
type TemplateRenderer interface {
	// Render picks RenderString when name looks like inline template content
	// and RenderTemplate otherwise.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
