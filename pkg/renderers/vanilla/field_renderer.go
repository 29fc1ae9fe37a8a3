package vanilla

import (
	"strings"

	"github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/render"
)

// fieldView flattens a model.Field plus its request state into the values
// the field templates read.
func fieldView(form model.FormModel, field model.Field, options render.RenderOptions, mapped render.ErrorMapping) map[string]any {
	message := firstMessage(mapped.Fields[field.Name])

	widget := field.Widget
	if widget != model.WidgetTextarea {
		widget = model.WidgetInput
	}
	inputType := field.InputType
	if inputType == "" {
		inputType = "text"
	}

	classes := []string{ClassField.String()}
	if message != "" {
		classes = append(classes, ClassInvalid.String())
	}
	if extra := strings.TrimSpace(field.Metadata["cssClass"]); extra != "" {
		classes = append(classes, extra)
	}

	view := map[string]any{
		"id":           controlID(form.FormName, field.Name),
		"error_id":     errorID(form.FormName, field.Name),
		"name":         field.Name,
		"label":        field.Label,
		"placeholder":  field.Placeholder,
		"description":  field.Description,
		"autocomplete": field.Autocomplete,
		"widget":       widget,
		"input_type":   inputType,
		"rows":         field.Rows,
		"required":     field.Required,
		"value":        options.Values[field.Name],
		"error":        message,
		"invalid":      message != "",
		"class":        strings.Join(classes, " "),
	}
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		view["minlength"] = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRuleMaxLength); ok {
		view["maxlength"] = rule.Params["value"]
	}
	if rule, ok := field.Rule(model.ValidationRulePattern); ok {
		view["pattern"] = rule.Params["pattern"]
	}
	return view
}
