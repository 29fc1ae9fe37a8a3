package contact

import (
	"fmt"
	"net/url"
)

// Field names as posted by the form and expected by the hosting provider.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldCompany, FieldMessage}

// FormValues holds the four raw text fields of the contact form.
type FormValues struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Company string `json:"company" yaml:"company"`
	Message string `json:"message" yaml:"message"`
}

// Get returns the value stored under the named field.
func (v FormValues) Get(field string) (string, bool) {
	switch field {
	case FieldName:
		return v.Name, true
	case FieldEmail:
		return v.Email, true
	case FieldCompany:
		return v.Company, true
	case FieldMessage:
		return v.Message, true
	default:
		return "", false
	}
}

// Set assigns value to the named field.
func (v *FormValues) Set(field, value string) error {
	switch field {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldCompany:
		v.Company = value
	case FieldMessage:
		v.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Map returns the values keyed by field name.
func (v FormValues) Map() map[string]string {
	return map[string]string{
		FieldName:    v.Name,
		FieldEmail:   v.Email,
		FieldCompany: v.Company,
		FieldMessage: v.Message,
	}
}

// URLValues encodes the values using the exact field names.
func (v FormValues) URLValues() url.Values {
	out := make(url.Values, len(Fields))
	for _, field := range Fields {
		value, _ := v.Get(field)
		out.Set(field, value)
	}
	return out
}

// IsZero reports whether every field is empty.
func (v FormValues) IsZero() bool {
	return v == FormValues{}
}

// ValuesFromForm reads the four fields from submitted form data. Extra keys
// are ignored and missing keys read as empty strings.
func ValuesFromForm(form url.Values) FormValues {
	return FormValues{
		Name:    form.Get(FieldName),
		Email:   form.Get(FieldEmail),
		Company: form.Get(FieldCompany),
		Message: form.Get(FieldMessage),
	}
}

// IsField reports whether name is one of the contact form fields.
func IsField(name string) bool {
	_, ok := FormValues{}.Get(name)
	return ok
}
