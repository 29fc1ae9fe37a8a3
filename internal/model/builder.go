package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
)

const (
	extensionNamespace = "x-form"
	formNameExtension  = "x-form-name"
	submitExtension    = "x-form-submit"
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Only flat string,
// number and boolean properties are supported; the site's forms have no
// nested objects.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		EncType:     op.ContentType,
		Summary:     op.Summary,
		Description: op.Description,
		FormName:    stringValue(op.Extensions[formNameExtension]),
		SubmitLabel: stringValue(op.Extensions[submitExtension]),
	}
	if form.EncType == "" || form.EncType == "application/json" {
		form.EncType = "application/x-www-form-urlencoded"
	}
	if form.SubmitLabel == "" {
		form.SubmitLabel = "Submit"
	}

	fields := make([]Field, 0, len(op.RequestBody.Properties))
	for _, name := range op.RequestBody.PropertyNames() {
		prop := op.RequestBody.Properties[name]
		field, err := b.buildField(name, prop, op.RequestBody.IsRequired(name))
		if err != nil {
			return FormModel{}, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return orderKey(fields[i]) < orderKey(fields[j])
	})
	form.Fields = fields

	return form, nil
}

func (b *Builder) buildField(name string, prop pkgopenapi.Schema, required bool) (Field, error) {
	fieldType, err := fieldTypeFor(prop.Type)
	if err != nil {
		return Field{}, fmt.Errorf("model builder: field %q: %w", name, err)
	}
	hints := hintsFrom(prop.Extensions)
	message := stringValue(hints["message"])

	field := Field{
		Name:         name,
		Type:         fieldType,
		Format:       prop.Format,
		Required:     required,
		Label:        stringValue(hints["label"]),
		Placeholder:  stringValue(hints["placeholder"]),
		Description:  prop.Description,
		Widget:       stringValue(hints["widget"]),
		InputType:    stringValue(hints["inputType"]),
		Autocomplete: stringValue(hints["autocomplete"]),
		Rows:         intValue(hints["rows"]),
		Order:        intValue(hints["order"]),
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	if field.Widget == "" {
		field.Widget = WidgetInput
	}
	if field.InputType == "" && field.Widget == WidgetInput {
		field.InputType = inputTypeFor(field)
	}

	if required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired, Message: message})
	}
	if prop.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:    ValidationRuleMinLength,
			Params:  map[string]string{"value": strconv.Itoa(*prop.MinLength)},
			Message: message,
		})
	}
	if prop.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:    ValidationRuleMaxLength,
			Params:  map[string]string{"value": strconv.Itoa(*prop.MaxLength)},
			Message: message,
		})
	}
	if prop.Format == "email" {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleEmail, Message: message})
	}
	if prop.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:    ValidationRulePattern,
			Params:  map[string]string{"pattern": prop.Pattern},
			Message: message,
		})
	}

	if extra := metadataFromHints(hints); len(extra) > 0 {
		field.Metadata = extra
	}
	return field, nil
}

func fieldTypeFor(schemaType string) (FieldType, error) {
	switch schemaType {
	case "", "string":
		return FieldTypeString, nil
	case "integer":
		return FieldTypeInteger, nil
	case "number":
		return FieldTypeNumber, nil
	case "boolean":
		return FieldTypeBoolean, nil
	default:
		return "", fmt.Errorf("unsupported type %q", schemaType)
	}
}

func inputTypeFor(field Field) string {
	switch {
	case field.Format == "email":
		return "email"
	case field.Type == FieldTypeInteger || field.Type == FieldTypeNumber:
		return "number"
	case field.Type == FieldTypeBoolean:
		return "checkbox"
	default:
		return "text"
	}
}

func orderKey(field Field) int {
	if field.Order > 0 {
		return field.Order
	}
	return int(^uint(0) >> 1)
}

func hintsFrom(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	hints, _ := ext[extensionNamespace].(map[string]any)
	return hints
}

var knownHints = map[string]struct{}{
	"label": {}, "placeholder": {}, "widget": {}, "inputType": {},
	"autocomplete": {}, "rows": {}, "order": {}, "message": {},
}

// metadataFromHints keeps hints the builder does not map onto Field so
// renderers can still reach them.
func metadataFromHints(hints map[string]any) map[string]string {
	out := make(map[string]string)
	for key, value := range hints {
		if _, known := knownHints[key]; known {
			continue
		}
		if str := stringValue(value); str != "" {
			out[key] = str
		}
	}
	return out
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

func intValue(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
