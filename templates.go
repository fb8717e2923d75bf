package customfields

import (
	"io/fs"

	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML template bundle. Pass a
// modified copy through vanilla.WithTemplatesFS to override individual
// templates while keeping the rest.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
