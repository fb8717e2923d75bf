// Package customfieldswiring bridges the references component into
// custom-field catalogs: choice descriptors backed by the curated catalog
// and typeahead endpoint configuration for list fields.
package customfieldswiring

import (
	"strconv"

	"github.com/beta3zer0/go-customfields/components/references"
	"github.com/beta3zer0/go-customfields/pkg/model"
)

// ChoiceField builds a choice-typed descriptor whose options are the
// configured catalog's reference ids (defaults to the embedded catalog).
func ChoiceField(fieldName, displayName string, order int, fns ...references.OptionFn) (model.FieldDescriptor, error) {
	opts := references.NewOptions(fns...)

	catalog := opts.References
	if catalog == nil {
		loaded, err := references.DefaultReferences()
		if err != nil {
			return model.FieldDescriptor{}, err
		}
		catalog = loaded
	}

	choices := make([]string, 0, len(catalog))
	for _, ref := range catalog {
		choices = append(choices, ref.ID)
	}

	descriptor := model.FieldDescriptor{
		FieldName:        fieldName,
		FieldDisplayName: displayName,
		FieldType:        model.FieldTypeChoice,
		FieldOrder:       order,
		Choices:          choices,
	}
	if err := descriptor.Validate(); err != nil {
		return model.FieldDescriptor{}, err
	}
	return descriptor, nil
}

// Typeahead describes the GET endpoint a client-side reference picker calls
// for a list field. SearchParam carries the user's input; Params are fixed.
type Typeahead struct {
	URL         string
	SearchParam string
	Params      map[string]string
}

// TypeaheadConfig derives the endpoint configuration for a references
// component mounted under basePath, using the component defaults plus any
// overrides.
func TypeaheadConfig(basePath string, fns ...references.OptionFn) Typeahead {
	opts := references.NewOptions(fns...)

	return Typeahead{
		URL:         references.MountPath(basePath, fns...),
		SearchParam: opts.SearchParam,
		Params: map[string]string{
			opts.LimitParam: strconv.Itoa(opts.DefaultLimit),
		},
	}
}
