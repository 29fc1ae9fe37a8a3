package model_test

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admaiora/internal/model"
	"github.com/goliatone/go-admaiora/internal/openapi/parser"
	"github.com/goliatone/go-admaiora/pkg/contact"
	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
	"github.com/goliatone/go-admaiora/pkg/testsupport"
)

// The contact schema drives the rendered markup while pkg/contact enforces the
// rules; both must describe the same form.
func TestContactSchemaMatchesControllerRules(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("..", "..", "components", "contact", "schema", "contact.yaml"))
	ops, err := parser.New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	form, err := model.New(model.Options{}).Build(ops["submitContact"])
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff(contact.Fields, form.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if form.FormName != contact.DefaultFormName {
		t.Fatalf("form name = %q, want %q", form.FormName, contact.DefaultFormName)
	}

	wantMin := map[string]int{
		contact.FieldName:    1,
		contact.FieldCompany: 1,
		contact.FieldMessage: contact.MinMessageLength,
	}
	wantMessages := map[string]string{
		contact.FieldName:    contact.MessageNameRequired,
		contact.FieldEmail:   contact.MessageEmailInvalid,
		contact.FieldCompany: contact.MessageCompanyRequired,
		contact.FieldMessage: contact.MessageMessageTooShort,
	}

	for _, field := range form.Fields {
		if !field.Required {
			t.Fatalf("%s should be required", field.Name)
		}
		required, _ := field.Rule(model.ValidationRuleRequired)
		if required.Message != wantMessages[field.Name] {
			t.Fatalf("%s message = %q, want %q", field.Name, required.Message, wantMessages[field.Name])
		}
		if min, ok := wantMin[field.Name]; ok {
			rule, found := field.Rule(model.ValidationRuleMinLength)
			if !found || rule.Params["value"] != strconv.Itoa(min) {
				t.Fatalf("%s minLength = %v, want %d", field.Name, rule.Params, min)
			}
		}
	}

	email, _ := form.Field(contact.FieldEmail)
	if _, ok := email.Rule(model.ValidationRuleEmail); !ok || email.InputType != "email" {
		t.Fatalf("email field should carry the email rule: %+v", email)
	}
	message, _ := form.Field(contact.FieldMessage)
	if message.Widget != model.WidgetTextarea || message.Rows != 6 {
		t.Fatalf("message should render as a textarea: %+v", message)
	}
}
