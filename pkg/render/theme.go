package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeFromManifest resolves the renderer-facing configuration for one theme
// manifest and variant. Fallback partials are overlaid by the manifest's
// template overrides and then the variant's; tokens merge base-then-variant
// and are mirrored as "--" prefixed CSS variables; AssetURL resolves logical
// asset keys through the merged file table under the manifest's asset prefix.
// A nil manifest yields a nil config.
func ThemeFromManifest(manifest *theme.Manifest, variant string, fallbacks map[string]string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}

	partials := make(map[string]string, len(fallbacks)+len(manifest.Templates))
	for key, value := range fallbacks {
		partials[key] = value
	}
	for key, value := range manifest.Templates {
		partials[key] = value
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}

	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	prefix := manifest.Assets.Prefix

	if variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			for key, value := range v.Templates {
				partials[key] = value
			}
			for key, value := range v.Tokens {
				tokens[key] = value
			}
			for key, value := range v.Assets.Files {
				files[key] = value
			}
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			name := files[key]
			if name == "" {
				return ""
			}
			if prefix == "" {
				return name
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(name, "/")
		},
	}
}
