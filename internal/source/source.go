// Package source abstracts where descriptor and OpenAPI documents come from
// so callers can point the loaders at a file path, an fs.FS entry, or a URL
// without caring how the bytes are fetched.
package source

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind enumerates the fetch strategies.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

// Source names one document: a kind plus the location the kind interprets.
type Source struct {
	kind     Kind
	location string
}

// Kind reports which fetch strategy applies.
func (s Source) Kind() Kind {
	return s.kind
}

// Location returns the path, fs name, or URL the source points at.
func (s Source) Location() string {
	return s.location
}

// FromFile returns a Source pointing to an on-disk path.
func FromFile(path string) Source {
	return Source{kind: KindFile, location: filepath.Clean(path)}
}

// FromFS returns a Source identifying an entry inside a configured fs.FS.
func FromFS(name string) Source {
	return Source{kind: KindFS, location: name}
}

// FromURL parses the supplied URL string and returns a Source. It panics on
// an invalid URL to surface configuration mistakes early.
func FromURL(raw string) Source {
	if raw == "" {
		panic("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("source: invalid URL %q: %v", raw, err))
	}
	return Source{kind: KindURL, location: raw}
}

// FromString guesses the kind from the shape of the argument: http and https
// locations become URL sources, everything else a file path. Command-line
// flags route through here.
func FromString(raw string) Source {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return FromURL(raw)
	}
	return FromFile(raw)
}
