package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	customfields "github.com/beta3zer0/go-customfields"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "examples/fixtures/vulnerability.yaml", "field catalog path (JSON or YAML descriptors, or an OpenAPI document)")
		schemaName  = flag.String("schema", "", "OpenAPI component schema to read field descriptors from")
		outputPath  = flag.String("output", "", "output path for the markdown reference (default: stdout)")
	)
	flag.Parse()

	ctx := context.Background()

	var (
		fields model.FieldSet
		err    error
	)
	if *schemaName != "" {
		fields, err = customfields.LoadOpenAPIFieldSet(ctx, *catalogPath, *schemaName)
	} else {
		fields, err = customfields.LoadFieldSet(ctx, *catalogPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	doc := renderFieldDocs(fields)

	if *outputPath == "" {
		fmt.Print(doc)
		return
	}
	if err := os.WriteFile(*outputPath, []byte(doc), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote field reference to %s\n", *outputPath)
}

func renderFieldDocs(fields model.FieldSet) string {
	var b strings.Builder

	title := fields.Name
	if title == "" {
		title = "custom fields"
	}
	fmt.Fprintf(&b, "# Custom fields: %s\n\n", title)
	b.WriteString("| Field | Label / storage key | Type | Choices | Help |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")

	for _, field := range fields.Sorted() {
		fieldType := string(field.FieldType)
		if !field.FieldType.Valid() {
			fieldType = fmt.Sprintf("%s (renders as string)", field.FieldType)
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			field.FieldName,
			docCell(field.StorageKey()),
			fieldType,
			docCell(strings.Join(field.Choices, ", ")),
			docCell(field.HelpText),
		)
	}

	return b.String()
}

// docCell keeps empty and multi-line values from breaking the table layout.
func docCell(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return strings.ReplaceAll(value, "\n", " ")
}
