// Package typecheck validates raw input strings against a field's declared
// type before they reach a record. It answers "would this value be legal
// for this descriptor", nothing more; presence/required rules belong to the
// caller.
package typecheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// Check reports whether raw is an acceptable value for the descriptor.
// Empty input is always acceptable. Unknown field types are treated as
// free-form strings, matching the renderers' degradation rule.
func Check(d model.FieldDescriptor, raw string) error {
	if raw == "" {
		return nil
	}
	switch d.FieldType {
	case model.FieldTypeInt:
		if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("typecheck: %q is not an integer", raw)
		}
	case model.FieldTypeChoice:
		for _, choice := range d.Choices {
			if choice == raw {
				return nil
			}
		}
		return fmt.Errorf("typecheck: %q is not one of the declared choices", raw)
	}
	return nil
}

// ParseInt parses raw the way Check accepts integers. The bool reports
// whether raw parsed; empty input does not parse.
func ParseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	return val, err == nil
}
