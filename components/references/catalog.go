package references

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed data/standard_references.txt
var dataFS embed.FS

const defaultCatalogPath = "data/standard_references.txt"

// Reference is one curated catalog entry.
type Reference struct {
	ID    string
	Title string
}

var (
	defaultOnce    sync.Once
	defaultCatalog []Reference
	defaultErr     error
)

// DefaultReferences returns the embedded catalog in rank order.
func DefaultReferences() ([]Reference, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		catalog, err := LoadReferences(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = catalog
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Reference{}, defaultCatalog...), nil
}

// LoadReferences reads a tab-separated catalog (<id><TAB><title> per line,
// "#" comments and blanks skipped). Duplicate ids keep the first occurrence;
// input order is preserved because catalogs are ranked.
func LoadReferences(r io.Reader) ([]Reference, error) {
	if r == nil {
		return nil, fmt.Errorf("references: missing reader")
	}

	scanner := bufio.NewScanner(r)
	catalog := make([]Reference, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		id, title, found := strings.Cut(line, "\t")
		id = strings.TrimSpace(id)
		if !found || id == "" {
			return nil, fmt.Errorf("references: malformed catalog line %q", line)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		catalog = append(catalog, Reference{ID: id, Title: strings.TrimSpace(title)})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return catalog, nil
}
