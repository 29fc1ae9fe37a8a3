package contact_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admaiora/pkg/contact"
)

func TestFieldErrors_ListFollowsFormOrder(t *testing.T) {
	errs := contact.FieldErrors{
		contact.FieldMessage: "m",
		"zeta":               "z",
		contact.FieldName:    "n",
		"alpha":              "a",
	}
	got := errs.List()
	want := []contact.FieldValidationError{
		{Field: contact.FieldName, Message: "n"},
		{Field: contact.FieldMessage, Message: "m"},
		{Field: "alpha", Message: "a"},
		{Field: "zeta", Message: "z"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldErrors_ErrRoundTrip(t *testing.T) {
	if err := (contact.FieldErrors{}).Err(); err != nil {
		t.Fatalf("expected nil error for empty mapping, got %v", err)
	}

	_, errs := contact.Validate(contact.FormValues{Name: "Jane", Email: "bad", Company: "", Message: "1234567890"})
	err := errs.Err()
	if err == nil {
		t.Fatalf("expected error")
	}

	var single contact.FieldValidationError
	if !errors.As(err, &single) {
		t.Fatalf("expected FieldValidationError in chain")
	}

	got, ok := contact.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors to be extracted")
	}
	if diff := cmp.Diff(errs, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldErrors_Messages(t *testing.T) {
	errs := contact.FieldErrors{contact.FieldEmail: " bad email ", contact.FieldName: "  "}
	want := map[string][]string{contact.FieldEmail: {"bad email"}}
	if diff := cmp.Diff(want, errs.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if (contact.FieldErrors(nil)).Messages() != nil {
		t.Fatalf("expected nil messages for nil mapping")
	}
}

func TestFormValues_SetGet(t *testing.T) {
	var v contact.FormValues
	for _, field := range contact.Fields {
		if err := v.Set(field, field+"-value"); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	for _, field := range contact.Fields {
		got, ok := v.Get(field)
		if !ok || got != field+"-value" {
			t.Fatalf("get %s: got %q ok=%v", field, got, ok)
		}
	}
	if err := v.Set("phone", "1"); !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestValuesFromForm_IgnoresExtraKeys(t *testing.T) {
	form := map[string][]string{
		"name":      {"Jane"},
		"email":     {"jane@acme.com"},
		"company":   {"Acme"},
		"message":   {"hello there friend"},
		"form-name": {"contact"},
		"bot-field": {""},
	}
	got := contact.ValuesFromForm(form)
	want := contact.FormValues{Name: "Jane", Email: "jane@acme.com", Company: "Acme", Message: "hello there friend"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	encoded := got.URLValues()
	if len(encoded) != 4 {
		t.Fatalf("expected exactly four encoded fields, got %v", encoded)
	}
}
