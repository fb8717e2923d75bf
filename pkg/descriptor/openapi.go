package descriptor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// Extension keys recognised on OpenAPI property schemas. They carry widget
// metadata that plain JSON Schema cannot express.
const (
	extFieldName        = "x-field-name"
	extFieldDisplayName = "x-field-display-name"
	extFieldType        = "x-field-type"
	extFieldOrder       = "x-field-order"
	extFieldChoices     = "x-field-choices"
)

// FromOpenAPI extracts a FieldSet from the named component schema of an
// OpenAPI 3 document. Property-level x-field-* extensions win; without them
// the property name and schema type decide the descriptor (integer becomes
// int, array becomes list, an enum becomes choice) and the schema title and
// description feed the display name and help text.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) (model.FieldSet, error) {
	if err := ctx.Err(); err != nil {
		return model.FieldSet{}, err
	}
	if len(data) == 0 {
		return model.FieldSet{}, errors.New("descriptor: openapi document is empty")
	}
	if strings.TrimSpace(schemaName) == "" {
		return model.FieldSet{}, errors.New("descriptor: schema name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return model.FieldSet{}, fmt.Errorf("descriptor: load openapi document: %w", err)
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return model.FieldSet{}, fmt.Errorf("descriptor: schema %q not found: document has no component schemas", schemaName)
	}
	ref := spec.Components.Schemas[schemaName]
	if ref == nil || ref.Value == nil {
		return model.FieldSet{}, fmt.Errorf("descriptor: schema %q not found", schemaName)
	}
	if len(ref.Value.Properties) == 0 {
		return model.FieldSet{}, fmt.Errorf("descriptor: schema %q declares no properties", schemaName)
	}

	doc := setDocument{Name: schemaName}
	for name, property := range ref.Value.Properties {
		if property == nil || property.Value == nil {
			continue
		}
		doc.Fields = append(doc.Fields, descriptorFromProperty(name, property.Value))
	}

	return normalizeSet(doc, "schema "+schemaName)
}

func descriptorFromProperty(name string, schema *openapi3.Schema) model.FieldDescriptor {
	return model.FieldDescriptor{
		FieldName:        stringExtension(schema.Extensions, extFieldName, name),
		FieldDisplayName: stringExtension(schema.Extensions, extFieldDisplayName, schema.Title),
		FieldType:        fieldTypeFromSchema(schema),
		FieldOrder:       intExtension(schema.Extensions, extFieldOrder),
		Choices:          choicesFromSchema(schema),
		HelpText:         schema.Description,
	}
}

func fieldTypeFromSchema(schema *openapi3.Schema) model.FieldType {
	if explicit := stringExtension(schema.Extensions, extFieldType, ""); explicit != "" {
		return model.FieldType(explicit)
	}
	if len(schema.Enum) > 0 {
		return model.FieldTypeChoice
	}
	switch schemaType(schema.Type) {
	case openapi3.TypeInteger:
		return model.FieldTypeInt
	case openapi3.TypeArray:
		return model.FieldTypeList
	default:
		return model.FieldTypeString
	}
}

func choicesFromSchema(schema *openapi3.Schema) []string {
	if values := sliceExtension(schema.Extensions, extFieldChoices); len(values) > 0 {
		return values
	}
	if len(schema.Enum) == 0 {
		return nil
	}
	choices := make([]string, 0, len(schema.Enum))
	for _, value := range schema.Enum {
		choices = append(choices, fmt.Sprint(value))
	}
	return choices
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringExtension(extensions map[string]any, key, fallback string) string {
	if value, ok := extensions[key].(string); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// intExtension tolerates the decodings an extension number shows up as:
// float64 from JSON, int from programmatic specs, string from sloppy docs.
func intExtension(extensions map[string]any, key string) int {
	switch value := extensions[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return 0
}

func sliceExtension(extensions map[string]any, key string) []string {
	raw, ok := extensions[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if value, ok := entry.(string); ok && strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
