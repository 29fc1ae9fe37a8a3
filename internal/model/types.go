package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
)

// Widget names understood by the HTML renderer.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"] while pattern rules
// preserve the original expression in Params["pattern"]. Message carries the
// inline text shown when the rule fails, when the schema declares one.
type ValidationRule struct {
	Kind    string            `json:"kind"`
	Params  map[string]string `json:"params,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Field models an individual input inside a form.
type Field struct {
	Name         string            `json:"name"`
	Type         FieldType         `json:"type"`
	Format       string            `json:"format,omitempty"`
	Required     bool              `json:"required"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty"`
	Widget       string            `json:"widget"`
	InputType    string            `json:"inputType,omitempty"`
	Autocomplete string            `json:"autocomplete,omitempty"`
	Rows         int               `json:"rows,omitempty"`
	Order        int               `json:"order,omitempty"`
	Validations  []ValidationRule  `json:"validations,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	EncType     string            `json:"encType,omitempty"`
	FormName    string            `json:"formName,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the given name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in render order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
