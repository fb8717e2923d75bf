package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	customfields "github.com/beta3zer0/go-customfields"
	"github.com/beta3zer0/go-customfields/pkg/renderers/tui"
)

func main() {
	catalog := flag.String("catalog", "fields.yaml", "descriptor catalog: file, directory, or URL")
	schema := flag.String("schema", "", "derive the catalog from this OpenAPI component schema instead")
	recordPath := flag.String("record", "", "JSON file with existing record values")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, tui)")
	format := flag.String("format", "json", "tui output format (json, pretty, none)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	fields, err := loadCatalog(ctx, *catalog, *schema)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	record := customfields.Record{}
	if *recordPath != "" {
		if record, err = loadRecord(*recordPath); err != nil {
			log.Fatalf("Failed to load record: %v", err)
		}
	}

	registry, err := customfields.NewRendererRegistry(nil, []tui.Option{
		tui.WithOutputFormat(tui.OutputFormat(*format)),
	})
	if err != nil {
		log.Fatalf("Failed to configure renderers: %v", err)
	}

	gen, err := registry.Get(*renderer)
	if err != nil {
		log.Fatalf("Unknown renderer %q (have: %v)", *renderer, registry.List())
	}

	out, err := gen.Render(ctx, fields, customfields.RenderOptions{Record: record})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else if len(out) > 0 {
		fmt.Println(string(out))
	}
}

func loadCatalog(ctx context.Context, location, schema string) (customfields.FieldSet, error) {
	if schema != "" {
		return customfields.LoadOpenAPIFieldSet(ctx, location, schema, customfields.WithHTTP())
	}
	return customfields.LoadFieldSet(ctx, location, customfields.WithHTTP())
}

func loadRecord(path string) (customfields.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	record := customfields.Record{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return record, nil
}
