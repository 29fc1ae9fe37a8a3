package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
)

func intPtr(v int) *int { return &v }

func sampleOperation() pkgopenapi.Operation {
	op := pkgopenapi.MustNewOperation("submitContact", "post", "/contact", pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"full_name", "notes"},
		Properties: map[string]pkgopenapi.Schema{
			"notes": {
				Type:      "string",
				MinLength: intPtr(10),
				Extensions: map[string]any{
					"x-form": map[string]any{"order": float64(2), "widget": "textarea", "rows": float64(4), "cssClass": "wide"},
				},
			},
			"full_name": {
				Type:      "string",
				MinLength: intPtr(1),
				MaxLength: intPtr(80),
				Extensions: map[string]any{
					"x-form": map[string]any{"order": float64(1), "message": "Name please"},
				},
			},
			"newsletter": {Type: "boolean"},
		},
	})
	op.ContentType = "application/x-www-form-urlencoded"
	op.Extensions = map[string]any{"x-form-name": "contact", "x-form-submit": "Send"}
	return op
}

func TestBuilder_Build(t *testing.T) {
	form, err := New(Options{}).Build(sampleOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Method != "POST" || form.FormName != "contact" || form.SubmitLabel != "Send" {
		t.Fatalf("unexpected form header: %+v", form)
	}
	if diff := cmp.Diff([]string{"full_name", "notes", "newsletter"}, form.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	name, _ := form.Field("full_name")
	want := Field{
		Name:      "full_name",
		Type:      FieldTypeString,
		Required:  true,
		Label:     "Full Name",
		Widget:    WidgetInput,
		InputType: "text",
		Order:     1,
		Validations: []ValidationRule{
			{Kind: ValidationRuleRequired, Message: "Name please"},
			{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "1"}, Message: "Name please"},
			{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "80"}, Message: "Name please"},
		},
	}
	if diff := cmp.Diff(want, name); diff != "" {
		t.Fatalf("full_name mismatch (-want +got):\n%s", diff)
	}

	notes, _ := form.Field("notes")
	if notes.Widget != WidgetTextarea || notes.Rows != 4 || notes.InputType != "" {
		t.Fatalf("unexpected textarea field: %+v", notes)
	}
	if notes.Metadata["cssClass"] != "wide" {
		t.Fatalf("expected unknown hints in metadata, got %v", notes.Metadata)
	}

	flag, _ := form.Field("newsletter")
	if flag.InputType != "checkbox" || flag.Required || len(flag.Validations) != 0 {
		t.Fatalf("unexpected boolean field: %+v", flag)
	}
}

func TestBuilder_CustomLabeler(t *testing.T) {
	form, err := New(Options{Labeler: func(name string) string { return "<" + name + ">" }}).Build(sampleOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, _ := form.Field("notes")
	if field.Label != "<notes>" {
		t.Fatalf("expected labeler output, got %q", field.Label)
	}
}

func TestBuilder_Defaults(t *testing.T) {
	op := pkgopenapi.MustNewOperation("ping", "post", "/ping", pkgopenapi.Schema{Type: "object"})
	form, err := New(Options{}).Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.EncType != "application/x-www-form-urlencoded" || form.SubmitLabel != "Submit" {
		t.Fatalf("unexpected defaults: %+v", form)
	}
}

func TestBuilder_RejectsInvalidOperations(t *testing.T) {
	builder := New(Options{})

	if _, err := builder.Build(pkgopenapi.Operation{Method: "POST", Path: "/x"}); !errors.Is(err, errOperationIDMissing) {
		t.Fatalf("expected missing id error, got %v", err)
	}

	nested := pkgopenapi.MustNewOperation("nested", "post", "/x", pkgopenapi.Schema{
		Type:       "object",
		Properties: map[string]pkgopenapi.Schema{"address": {Type: "object"}},
	})
	if _, err := builder.Build(nested); err == nil {
		t.Fatalf("expected nested object to be rejected")
	}

	bounds := pkgopenapi.MustNewOperation("bounds", "post", "/x", pkgopenapi.Schema{
		Type:       "object",
		Properties: map[string]pkgopenapi.Schema{"code": {Type: "string", MinLength: intPtr(5), MaxLength: intPtr(2)}},
	})
	if _, err := builder.Build(bounds); err == nil {
		t.Fatalf("expected inverted bounds to be rejected")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"name":         "Name",
		"company_name": "Company Name",
		"companyName":  "Company Name",
		"e-mail":       "E Mail",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
