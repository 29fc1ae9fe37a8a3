package render

import "time"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Action overrides the endpoint declared by the form model, for example
	// when the component is mounted under a prefix.
	Action string
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]string
	// Errors surfaces server-side validation feedback keyed by field name.
	// The vanilla renderer prints the first message inline under the control
	// and marks it aria-invalid.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs in sorted order.
	HiddenFields map[string]string
	// Banner, when set, is shown above the form.
	Banner *Banner
	// FadeIn requests the entrance transition markup. It is set for the first
	// render of a visit only.
	FadeIn bool
}

// Banner is a transient confirmation rendered above the form.
type Banner struct {
	Message string
	// DismissAfter is exposed as data-dismiss-after in milliseconds so the
	// page script can hide the banner when the server side window closes.
	DismissAfter time.Duration
}

// DismissAfterMillis returns the dismissal delay in whole milliseconds.
func (b Banner) DismissAfterMillis() int64 {
	return b.DismissAfter.Milliseconds()
}
