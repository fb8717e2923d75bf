package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	customfields "github.com/beta3zer0/go-customfields"
	"github.com/beta3zer0/go-customfields/pkg/renderers/tui"
	"github.com/beta3zer0/go-customfields/pkg/testsupport"
)

func main() {
	ctx := context.Background()

	const (
		fieldsPath = "testdata/fieldset.json"
		recordPath = "testdata/record.json"
		outputPath = "testdata/record_pretty.golden"
	)

	fields, err := customfields.LoadFieldSet(ctx, fieldsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load field set: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(recordPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read record: %v\n", err)
		os.Exit(1)
	}
	record := customfields.Record{}
	if err := json.Unmarshal(data, &record); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse record: %v\n", err)
		os.Exit(1)
	}

	// Scripted no-change session for the committed fixture: keep the stored
	// scalar, skip the choice, close the list menu.
	driver := &testsupport.ScriptedPromptDriver{
		Inputs:  []string{""},
		Selects: []int{0, 2},
	}

	output, err := customfields.EditRecord(
		ctx,
		fields,
		record,
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormatPrettyText),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render record summary: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote record summary golden (%d bytes) → %s\n", len(output), outputPath)
}
