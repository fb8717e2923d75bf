package render

import (
	"strconv"
	"strings"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// ErrorMapping splits a loosely keyed error payload into per-field messages
// keyed by field_name plus form-level messages for everything else.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level error slices, trimming whitespace
// and dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalizes a server error payload onto the descriptor
// catalog. Payload keys may be machine names, display names, or pointer-ish
// paths such as "custom_fields/Refs/0/value" or "#/body/cvss"; entry indexes
// and wrapper prefixes are ignored during matching. Messages that match no
// descriptor become form-level so they are not lost.
func MapErrorPayload(fields model.FieldSet, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	byToken := make(map[string]string, len(fields.Fields)*2)
	for _, d := range fields.Fields {
		if name := strings.TrimSpace(d.FieldName); name != "" {
			byToken[strings.ToLower(name)] = d.FieldName
		}
		if key := strings.TrimSpace(d.StorageKey()); key != "" {
			byToken[strings.ToLower(key)] = d.FieldName
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		name, ok := mapErrorPath(rawPath, byToken)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	for name, messages := range mapping.Fields {
		mapping.Fields[name] = normalizeMessages(messages)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, byToken map[string]string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}

	segments := parsePathSegments(raw)
	for _, segment := range segments {
		if isWrapperSegment(segment) {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if name, ok := byToken[strings.ToLower(segment)]; ok {
			return name, true
		}
		// First real segment decides; deeper parts ("value") never name a
		// field on their own.
		return "", false
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "$") ||
		strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "custom_fields", "customfields", "body", "data", "payload", "attributes":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
