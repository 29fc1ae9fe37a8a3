package contact

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownField is returned when a caller addresses a field the form
	// does not have.
	ErrUnknownField = errors.New("contact: unknown field")
	// ErrClosed is returned by components used after Close.
	ErrClosed = errors.New("contact: closed")
	// ErrQueueFull is reported when the dispatcher drops a submission.
	ErrQueueFull = errors.New("contact: delivery queue full")
)

// FieldValidationError describes one field failing its rule.
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors maps failing field names to a human readable message. A nil or
// empty map means every field passed.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Get returns the message for field, or "" when it passed.
func (e FieldErrors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// List returns the failures ordered by form field order, then by name for
// anything outside the known fields.
func (e FieldErrors) List() []FieldValidationError {
	if len(e) == 0 {
		return nil
	}
	out := make([]FieldValidationError, 0, len(e))
	seen := make(map[string]struct{}, len(e))
	for _, field := range Fields {
		if msg, ok := e[field]; ok {
			out = append(out, FieldValidationError{Field: field, Message: msg})
			seen[field] = struct{}{}
		}
	}
	var rest []string
	for field := range e {
		if _, ok := seen[field]; !ok {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		out = append(out, FieldValidationError{Field: field, Message: e[field]})
	}
	return out
}

// Err adapts the mapping to an error joining every FieldValidationError, or
// nil when valid.
func (e FieldErrors) Err() error {
	list := e.List()
	if len(list) == 0 {
		return nil
	}
	errs := make([]error, 0, len(list))
	for _, item := range list {
		errs = append(errs, item)
	}
	return errors.Join(errs...)
}

// Clone returns a copy of the mapping. Empty inputs clone to nil.
func (e FieldErrors) Clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Messages converts the mapping into the field → []string shape used by the
// render pipeline.
func (e FieldErrors) Messages() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for field, msg := range e {
		if msg = strings.TrimSpace(msg); msg != "" {
			out[field] = []string{msg}
		}
	}
	return out
}

// AsFieldErrors extracts the failures carried by err, including errors built
// with FieldErrors.Err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}
	out := FieldErrors{}
	collectFieldErrors(err, out)
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func collectFieldErrors(err error, dest FieldErrors) {
	var fe FieldValidationError
	if errors.As(err, &fe) {
		dest[fe.Field] = fe.Message
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFieldErrors(inner, dest)
		}
	}
}
