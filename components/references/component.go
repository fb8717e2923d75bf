package references

import "github.com/gofiber/fiber/v2"

// Component is a small, extraction-friendly wrapper around the reference
// typeahead handler, its configuration, and routing helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a fiber handler for reference queries.
func (c *Component) Handler() fiber.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on router.
func (c *Component) RegisterRoutes(router fiber.Router, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(router, basePath)
	}
	return RegisterRoutesWithOptions(router, basePath, c.opts)
}
