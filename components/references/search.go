package references

import (
	"sort"
	"strings"
)

// Option is one typeahead result, shaped for form option lists.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search filters the catalog by a case-insensitive match on id or title.
// Id-prefix matches rank first; within a tier, catalog (rank) order holds.
func Search(catalog []Reference, query string, limit int, opts Options) []Reference {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(catalog) <= limit {
				return append([]Reference{}, catalog...)
			}
			return append([]Reference{}, catalog[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedReference, 0, 32)
	for i, ref := range catalog {
		id := strings.ToLower(ref.ID)
		title := strings.ToLower(ref.Title)
		if !strings.Contains(id, q) && !strings.Contains(title, q) {
			continue
		}
		matches = append(matches, matchedReference{
			ref:      ref,
			isPrefix: strings.HasPrefix(id, q),
			rank:     i,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].rank < matches[j].rank
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Reference, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.ref)
	}
	return out
}

// SearchOptions runs Search and shapes the results as value/label options.
// The label carries the title so a typeahead can show "CWE-79: Cross-site
// Scripting" while storing "CWE-79".
func SearchOptions(catalog []Reference, query string, limit int, opts Options) []Option {
	results := Search(catalog, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, ref := range results {
		out = append(out, Option{Value: ref.ID, Label: ref.Label()})
	}
	return out
}

// Label renders the reference for display.
func (r Reference) Label() string {
	if r.Title == "" {
		return r.ID
	}
	return r.ID + ": " + r.Title
}

type matchedReference struct {
	ref      Reference
	isPrefix bool
	rank     int
}
