package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation messages rendered beneath each failing field.
const (
	MessageNameRequired    = "Please enter your name"
	MessageEmailInvalid    = "Please enter a valid email address"
	MessageCompanyRequired = "Please enter your company name"
	MessageMessageTooShort = "Message must be at least 10 characters"
)

// MinMessageLength is the minimum message length in characters.
const MinMessageLength = 10

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+\-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)

// Rule checks one field value and returns the failure message, or "" when the
// value passes.
type Rule func(value string) string

// Rules returns the per-field rules keyed by field name. Rules are independent;
// none reads another field.
func Rules() map[string]Rule {
	return map[string]Rule{
		FieldName:    minLength(1, MessageNameRequired),
		FieldEmail:   validEmail,
		FieldCompany: minLength(1, MessageCompanyRequired),
		FieldMessage: minLength(MinMessageLength, MessageMessageTooShort),
	}
}

// Validate checks every field against its rule. It returns the values and a
// nil map when all rules pass; otherwise the map names each failing field.
// Validate has no side effects.
func Validate(values FormValues) (FormValues, FieldErrors) {
	rules := Rules()
	var errs FieldErrors
	for _, field := range Fields {
		value, _ := values.Get(field)
		if msg := rules[field](value); msg != "" {
			if errs == nil {
				errs = make(FieldErrors, len(Fields))
			}
			errs[field] = msg
		}
	}
	return values, errs
}

// ValidateField runs the rule for a single field.
func ValidateField(field, value string) (string, error) {
	rule, ok := Rules()[field]
	if !ok {
		return "", ErrUnknownField
	}
	return rule(value), nil
}

// IsEmail reports whether value has a valid email address shape.
func IsEmail(value string) bool {
	if value == "" || strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}

func validEmail(value string) string {
	if IsEmail(value) {
		return ""
	}
	return MessageEmailInvalid
}

func minLength(n int, message string) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) < n {
			return message
		}
		return ""
	}
}
