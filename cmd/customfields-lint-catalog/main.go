// Command customfields-lint-catalog surfaces catalog mistakes the renderers
// tolerate at runtime: unknown field types degrade to plain string inputs,
// stray choices are ignored, and sanitized help text can come out empty.
// A lint pass is the place to catch those before a catalog ships.
package main

import (
	"context"
	"flag"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	customfields "github.com/beta3zer0/go-customfields"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [catalogs...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint custom-field catalogs (files or directories) for definitions the renderers silently degrade.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/fixtures/vulnerability.yaml",
			"examples/fixtures/catalog",
		}
	}

	ctx := context.Background()
	helpStrip := bluemonday.StrictPolicy()

	var violations []violation
	for _, path := range paths {
		linted, err := lintCatalog(ctx, helpStrip, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintCatalog(ctx context.Context, helpStrip *bluemonday.Policy, path string) ([]violation, error) {
	set, err := customfields.LoadFieldSet(ctx, path)
	if err != nil {
		return nil, err
	}

	var result []violation
	report := func(field model.FieldDescriptor, format string, args ...any) {
		result = append(result, violation{
			file:     path,
			location: "field " + field.FieldName,
			message:  fmt.Sprintf(format, args...),
		})
	}

	orders := make(map[int]string, len(set.Fields))
	for _, field := range set.Sorted() {
		if !field.FieldType.Valid() {
			report(field, "unknown field_type %q renders as a plain string input", field.FieldType)
		}
		if field.FieldType != model.FieldTypeChoice && len(field.Choices) > 0 {
			report(field, "choices are ignored for field_type %q", field.FieldType)
		}
		if field.FieldType == model.FieldTypeChoice {
			result = append(result, lintChoices(path, field)...)
		}
		if field.HelpText != "" {
			plain := strings.TrimSpace(html.UnescapeString(helpStrip.Sanitize(field.HelpText)))
			if plain == "" {
				report(field, "help_text is only markup; sanitized output is empty")
			}
		}
		if prev, taken := orders[field.FieldOrder]; taken {
			report(field, "field_order %d is already used by %q; ties sort by field_name", field.FieldOrder, prev)
		} else {
			orders[field.FieldOrder] = field.FieldName
		}
	}

	return result, nil
}

func lintChoices(path string, field model.FieldDescriptor) []violation {
	seen := make(map[string]struct{}, len(field.Choices))
	var result []violation
	for _, choice := range field.Choices {
		if _, dup := seen[choice]; dup {
			result = append(result, violation{
				file:     path,
				location: "field " + field.FieldName,
				message:  fmt.Sprintf("duplicate choice %q", choice),
			})
			continue
		}
		seen[choice] = struct{}{}
	}
	return result
}
