package tui

// OutputFormat controls how the edited record is serialized after the
// session ends.
type OutputFormat string

const (
	// OutputFormatJSON emits the edited record as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatNone skips serialization; callers read the mutated record
	// they passed in.
	OutputFormatNone OutputFormat = "none"
)

// Option configures the TUI editor.
type Option func(*Editor)

// WithPromptDriver overrides the prompt driver used by the editor.
func WithPromptDriver(driver PromptDriver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(e *Editor) {
		if format != "" {
			e.outputFormat = format
		}
	}
}
