package customfields

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/beta3zer0/go-customfields/internal/source"
	"github.com/beta3zer0/go-customfields/pkg/descriptor"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

// SourceOption configures how LoadFieldSet and LoadOpenAPIFieldSet resolve a
// location.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	fsys    fs.FS
	options []source.Option
}

// WithSourceFS reads non-URL locations from fsys instead of the host
// filesystem. Useful for embedded catalogs and tests.
func WithSourceFS(fsys fs.FS) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.fsys = fsys
		cfg.options = append(cfg.options, source.WithFS(fsys))
	}
}

// WithHTTPClient fetches URL locations with client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.options = append(cfg.options, source.WithHTTPClient(client))
	}
}

// WithHTTP enables URL locations with a default client.
func WithHTTP() SourceOption {
	return func(cfg *sourceConfig) {
		cfg.options = append(cfg.options, source.WithHTTP())
	}
}

// WithRequestTimeout bounds each URL fetch.
func WithRequestTimeout(timeout time.Duration) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.options = append(cfg.options, source.WithTimeout(timeout))
	}
}

// LoadFieldSet loads a descriptor catalog from location: a JSON or YAML file,
// a directory of descriptor files merged into one catalog, or an http(s) URL
// (enable with WithHTTP or WithHTTPClient).
func LoadFieldSet(ctx context.Context, location string, opts ...SourceOption) (model.FieldSet, error) {
	cfg := newSourceConfig(opts)
	src := sourceFor(cfg, location)

	if dir, err := isDir(cfg, src); err == nil && dir {
		if cfg.fsys != nil && src.Kind() == source.KindFS {
			return descriptor.LoadFS(cfg.fsys, src.Location())
		}
		return descriptor.LoadFS(os.DirFS(src.Location()), ".")
	}

	data, err := source.NewFetcher(cfg.options...).Fetch(ctx, src)
	if err != nil {
		return model.FieldSet{}, err
	}
	return descriptor.ParseSet(data, location)
}

// LoadOpenAPIFieldSet loads an OpenAPI 3 document from location and derives a
// catalog from the named component schema.
func LoadOpenAPIFieldSet(ctx context.Context, location, schemaName string, opts ...SourceOption) (model.FieldSet, error) {
	cfg := newSourceConfig(opts)

	data, err := source.NewFetcher(cfg.options...).Fetch(ctx, sourceFor(cfg, location))
	if err != nil {
		return model.FieldSet{}, err
	}
	return descriptor.FromOpenAPI(ctx, data, schemaName)
}

func newSourceConfig(opts []SourceOption) *sourceConfig {
	cfg := &sourceConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func sourceFor(cfg *sourceConfig, location string) source.Source {
	if cfg.fsys != nil && !isHTTPLocation(location) {
		return source.FromFS(location)
	}
	return source.FromString(location)
}

func isDir(cfg *sourceConfig, src source.Source) (bool, error) {
	switch src.Kind() {
	case source.KindFile:
		info, err := os.Stat(src.Location())
		if err != nil {
			return false, err
		}
		return info.IsDir(), nil
	case source.KindFS:
		info, err := fs.Stat(cfg.fsys, src.Location())
		if err != nil {
			return false, err
		}
		return info.IsDir(), nil
	default:
		return false, nil
	}
}

func isHTTPLocation(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
