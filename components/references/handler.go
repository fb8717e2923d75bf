package references

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type optionsResponse struct {
	Data []Option `json:"data"`
}

// Handler builds a fiber handler with default options plus any overrides.
func Handler(fns ...OptionFn) fiber.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a fiber handler from a pre-constructed Options
// value. Callers are expected to pass a value produced by NewOptions so
// defaults and clamps are applied.
func HandlerWithOptions(opts Options) fiber.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return func(c *fiber.Ctx) error {
		if opts.Guard != nil {
			if err := opts.Guard(c); err != nil {
				return guardError(err)
			}
		}

		catalog := opts.References
		if catalog == nil {
			loaded, err := DefaultReferences()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "references: catalog unavailable")
			}
			catalog = loaded
		}

		query := c.Query(opts.SearchParam)
		limit := c.QueryInt(opts.LimitParam, 0)

		results := SearchOptions(catalog, query, limit, opts)
		if results == nil {
			results = []Option{}
		}
		return c.JSON(optionsResponse{Data: results})
	}
}

func guardError(err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr
	}
	return fiber.NewError(fiber.StatusForbidden, err.Error())
}
