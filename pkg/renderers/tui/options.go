package tui

import "io"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes for messages printed between prompts.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Validator checks one answer. A non-nil error is shown and the question is
// asked again.
type Validator func(field, value string) error

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithValidator replaces the rule checks derived from the form model.
func WithValidator(fn Validator) Option {
	return func(r *Renderer) {
		r.validator = fn
	}
}

// WithConfirm asks message as a yes/no question after the last field.
// Declining returns ErrAborted.
func WithConfirm(message string) Option {
	return func(r *Renderer) {
		r.confirm = message
	}
}

// WithOutput sets where the survey driver prints informational lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
