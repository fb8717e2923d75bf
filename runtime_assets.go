package customfields

import (
	"io/fs"

	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
)

// Names of the embedded runtime assets, relative to RuntimeAssetsFS.
const (
	// StylesheetName is the default form stylesheet.
	StylesheetName = vanilla.StylesheetName
	// RuntimeScriptName is the progressive-enhancement script that drives
	// list add/remove controls in the browser.
	RuntimeScriptName = vanilla.RuntimeScriptName
)

// RuntimeAssetsFS exposes the embedded CSS and JS so applications can serve
// them instead of inlining. Mount it under the path the renderer is
// configured with, for example with fiber:
//
//	app.Use("/assets", filesystem.New(filesystem.Config{
//		Root: http.FS(customfields.RuntimeAssetsFS()),
//	}))
//
// paired with vanilla.WithStylesheet("/assets/"+customfields.StylesheetName)
// and vanilla.WithScriptURL("/assets/"+customfields.RuntimeScriptName).
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
