package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm        ChromeClass = "cf-form"
	ClassField       ChromeClass = "cf-field"
	ClassLabel       ChromeClass = "cf-label"
	ClassInput       ChromeClass = "cf-input"
	ClassSelect      ChromeClass = "cf-select"
	ClassErrors      ChromeClass = "cf-errors"
	ClassHelp        ChromeClass = "cf-help"
	ClassList        ChromeClass = "cf-list"
	ClassListEntries ChromeClass = "cf-list-entries"
	ClassListEntry   ChromeClass = "cf-list-entry"
	ClassListValue   ChromeClass = "cf-list-value"
	ClassListRemove  ChromeClass = "cf-list-remove"
	ClassListPending ChromeClass = "cf-list-pending"
	ClassListAdd     ChromeClass = "cf-list-add"
	ClassActions     ChromeClass = "cf-actions"
)

// controlID derives the form-element id for a field's machine name.
func controlID(name string) string {
	if name == "" {
		return ""
	}
	return "cf-" + name
}

// PendingInputName derives the submitted name of a list field's staging
// input. It must never collide with a committed entry input, which submits
// under the bare machine name; handlers parsing form submissions read the
// staging value through this helper.
func PendingInputName(name string) string {
	if name == "" {
		return ""
	}
	return name + "__new"
}
