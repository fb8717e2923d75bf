// Package tui edits a custom-field record through terminal prompts. It walks
// the field set in display order and funnels every mutation through the
// fieldinput component, so terminal sessions obey the same add/remove rules
// as the HTML form.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/beta3zer0/go-customfields/pkg/fieldinput"
	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render"
	"github.com/beta3zer0/go-customfields/pkg/typecheck"
)

const (
	skipOption     = "(skip)"
	listMenuAdd    = "Add value"
	listMenuRemove = "Remove value"
	listMenuDone   = "Done"
)

// Editor implements render.Renderer for terminal-driven sessions. The record
// in RenderOptions is mutated in place as the user commits values; the
// returned bytes serialize the result per the configured output format.
type Editor struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

var _ render.Renderer = (*Editor)(nil)

// New constructs a TUI editor with defaults (survey driver, JSON output).
func New(options ...Option) (*Editor, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	e := &Editor{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if e.driver == nil {
		if e.driver, err = newSurveyDriver(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Name reports the renderer identifier.
func (e *Editor) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (e *Editor) ContentType() string {
	switch e.outputFormat {
	case OutputFormatPrettyText, OutputFormatNone:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs one editing session over the sorted field set.
func (e *Editor) Render(ctx context.Context, fields model.FieldSet, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("tui: invalid field set: %w", err)
	}

	record := opts.Record
	if record == nil {
		record = model.Record{}
	}

	sorted := fields.Sorted()
	for _, field := range sorted {
		input, err := fieldinput.New(field, record)
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.FieldName, err)
		}
		if err := e.promptField(ctx, field, input); err != nil {
			return nil, err
		}
	}

	return e.serialize(sorted, record)
}

func (e *Editor) promptField(ctx context.Context, field model.FieldDescriptor, input *fieldinput.Input) error {
	switch {
	case field.FieldType.IsList():
		return e.promptList(ctx, field, input)
	case field.FieldType == model.FieldTypeChoice:
		return e.promptChoice(ctx, field, input)
	default:
		return e.promptScalar(ctx, field, input)
	}
}

// promptScalar covers string, int, and unknown field types. Empty answers
// leave the stored value untouched.
func (e *Editor) promptScalar(ctx context.Context, field model.FieldDescriptor, input *fieldinput.Input) error {
	current := ""
	if value, ok := input.Scalar(); ok && value != nil {
		current = fmt.Sprint(value)
	}

	cfg := InputConfig{
		Message: displayLabel(field),
		Default: current,
		Help:    helpText(field),
		Validator: func(value string) error {
			return typecheck.Check(field, value)
		},
	}

	for {
		raw, err := e.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}

		if field.FieldType == model.FieldTypeInt {
			parsed, ok := typecheck.ParseInt(raw)
			if !ok {
				_ = e.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q is not an integer", displayLabel(field), raw))
				continue
			}
			input.SetScalar(parsed)
			return nil
		}

		input.SetScalar(raw)
		return nil
	}
}

func (e *Editor) promptChoice(ctx context.Context, field model.FieldDescriptor, input *fieldinput.Input) error {
	current := ""
	if value, ok := input.Scalar(); ok && value != nil {
		current = fmt.Sprint(value)
	}

	options := make([]string, 0, len(field.Choices)+1)
	options = append(options, skipOption)
	options = append(options, field.Choices...)

	defaultIdx := 0
	for i, choice := range field.Choices {
		if choice == current {
			defaultIdx = i + 1
			break
		}
	}

	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIdx,
		Help:         helpText(field),
	})
	if err != nil {
		return err
	}
	if idx <= 0 || idx >= len(options) {
		return nil
	}
	input.SetScalar(options[idx])
	return nil
}

// promptList runs the add/remove menu loop for one list field. Duplicate
// adds fall through silently, matching the form widget.
func (e *Editor) promptList(ctx context.Context, field model.FieldDescriptor, input *fieldinput.Input) error {
	label := displayLabel(field)

	for {
		entries := input.Entries()
		if err := e.showEntries(ctx, label, entries); err != nil {
			return err
		}

		menu := []string{listMenuAdd}
		if len(entries) > 0 {
			menu = append(menu, listMenuRemove)
		}
		menu = append(menu, listMenuDone)

		idx, err := e.driver.Select(ctx, SelectConfig{
			Message: label,
			Options: menu,
			Help:    helpText(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			return nil
		}

		switch menu[idx] {
		case listMenuAdd:
			value, err := e.driver.Input(ctx, InputConfig{
				Message: fmt.Sprintf("New %s value", label),
			})
			if err != nil {
				return err
			}
			input.SetPending(value)
			input.AddValue(input.Pending())
		case listMenuRemove:
			values := make([]string, 0, len(entries))
			for _, entry := range entries {
				values = append(values, entry.Value)
			}
			pick, err := e.driver.Select(ctx, SelectConfig{
				Message: fmt.Sprintf("Remove which %s entry?", label),
				Options: values,
			})
			if err != nil {
				return err
			}
			input.RemoveValue(pick)
		default:
			return nil
		}
	}
}

func (e *Editor) showEntries(ctx context.Context, label string, entries []model.ListEntry) error {
	if len(entries) == 0 {
		return e.driver.Info(ctx, fmt.Sprintf("%s: (empty)", label))
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s:", label)
	for i, entry := range entries {
		fmt.Fprintf(&builder, "\n  %d. %s", i+1, entry.Value)
	}
	return e.driver.Info(ctx, builder.String())
}

func (e *Editor) serialize(fields []model.FieldDescriptor, record model.Record) ([]byte, error) {
	switch e.outputFormat {
	case OutputFormatNone:
		return nil, nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(fields, record)), nil
	default:
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: marshal record: %w", err)
		}
		return out, nil
	}
}

func prettyPrint(fields []model.FieldDescriptor, record model.Record) string {
	var builder strings.Builder
	for _, field := range fields {
		key := field.StorageKey()
		if field.FieldType.IsList() {
			if _, present := record[key]; !present {
				continue
			}
			fmt.Fprintf(&builder, "%s:\n", key)
			for _, entry := range record.Entries(key) {
				fmt.Fprintf(&builder, "  - %s\n", entry.Value)
			}
			continue
		}
		value, ok := record.Scalar(key)
		if !ok || value == nil {
			continue
		}
		fmt.Fprintf(&builder, "%s: %v\n", key, value)
	}
	return builder.String()
}

func displayLabel(field model.FieldDescriptor) string {
	if strings.TrimSpace(field.FieldDisplayName) != "" {
		return field.FieldDisplayName
	}
	return field.FieldName
}

var (
	helpStripOnce sync.Once
	helpStrip     *bluemonday.Policy
)

// helpText flattens descriptor help to plain terminal text.
func helpText(field model.FieldDescriptor) string {
	raw := strings.TrimSpace(field.HelpText)
	if raw == "" {
		return ""
	}
	helpStripOnce.Do(func() {
		helpStrip = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(helpStrip.Sanitize(raw)))
}
