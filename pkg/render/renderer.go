package render

import (
	"context"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// Renderer turns a descriptor catalog plus the record bound through
// RenderOptions into a byte representation: an HTML fragment, a terminal
// editing session, a JSON dump.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, fields model.FieldSet, options RenderOptions) ([]byte, error)
}
