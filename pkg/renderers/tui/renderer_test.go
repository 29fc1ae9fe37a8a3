package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/render"
)

type stubDriver struct {
	inputs       []string
	textAreas    []string
	confirm      []bool
	infoMessages []string
	inputCfgs    []InputConfig
	textCfgs     []TextAreaConfig
	inputPos     int
	textPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.textCfgs = append(s.textCfgs, cfg)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func contactForm() model.FormModel {
	return model.FormModel{
		Summary: "Get in Touch",
		Fields: []model.Field{
			{
				Name:   "name",
				Label:  "Name",
				Widget: model.WidgetInput,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "1"}, Message: "Please enter your name"},
				},
			},
			{
				Name:   "email",
				Label:  "Email",
				Widget: model.WidgetInput,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleEmail, Message: "Please enter a valid email address"},
				},
			},
			{
				Name:   "message",
				Label:  "Message",
				Widget: model.WidgetTextarea,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "10"}, Message: "Message must be at least 10 characters"},
				},
			},
		},
	}
}

func TestRender_JSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"email":"ada@example.com","message":"Need a sourcing review","name":"Ada"}`
	if string(out) != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if diff := cmp.Diff([]string{"Get in Touch"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRender_FormAndPrettyOutput(t *testing.T) {
	newDriver := func() *stubDriver {
		return &stubDriver{
			inputs:    []string{"Ada", "ada@example.com"},
			textAreas: []string{"Need a review"},
		}
	}

	r, _ := New(WithPromptDriver(newDriver()), WithOutputFormat(OutputFormatFormURLEncoded))
	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "email=ada%40example.com&message=Need+a+review&name=Ada" {
		t.Fatalf("unexpected form output %q", got)
	}

	r, _ = New(WithPromptDriver(newDriver()), WithOutputFormat(OutputFormatPrettyText))
	out, err = r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "Name: Ada\nEmail: ada@example.com\nMessage: Need a review\n" {
		t.Fatalf("unexpected pretty output %q", got)
	}
}

func TestCollect_SeedsDefaultsAndPrintsErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	r, _ := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	_, err := r.Collect(context.Background(), contactForm(), render.RenderOptions{
		Values: map[string]string{"name": "Ad"},
		Errors: map[string][]string{"email": {"Please enter a valid email address"}},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.inputCfgs[0].Default != "Ad" {
		t.Fatalf("expected seeded default, got %q", driver.inputCfgs[0].Default)
	}
	if diff := cmp.Diff([]string{"Get in Touch", "! Please enter a valid email address"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_ModelRulesValidate(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	r, _ := New(WithPromptDriver(driver))
	if _, err := r.Collect(context.Background(), contactForm(), render.RenderOptions{}); err != nil {
		t.Fatalf("collect: %v", err)
	}

	email := driver.inputCfgs[1].Validator
	if email == nil {
		t.Fatalf("expected email validator")
	}
	if err := email("ada@"); err == nil || err.Error() != "Please enter a valid email address" {
		t.Fatalf("unexpected email error %v", err)
	}
	if err := email("ada@example.com"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	message := driver.textCfgs[0].Validator
	if err := message("short"); err == nil || err.Error() != "Message must be at least 10 characters" {
		t.Fatalf("unexpected message error %v", err)
	}
}

func TestCollect_CustomValidatorWins(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	var seen []string
	r, _ := New(WithPromptDriver(driver), WithValidator(func(field, value string) error {
		seen = append(seen, field+"="+value)
		return nil
	}))
	if _, err := r.Collect(context.Background(), contactForm(), render.RenderOptions{}); err != nil {
		t.Fatalf("collect: %v", err)
	}

	if err := driver.inputCfgs[0].Validator(""); err != nil {
		t.Fatalf("expected custom validator to accept, got %v", err)
	}
	if diff := cmp.Diff([]string{"name="}, seen); diff != "" {
		t.Fatalf("validator calls mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_DeclinedConfirmAborts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
		confirm:   []bool{false},
	}
	r, _ := New(WithPromptDriver(driver), WithConfirm("Send?"))

	_, err := r.Collect(context.Background(), contactForm(), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := New(WithPromptDriver(&stubDriver{}))
	if _, err := r.Collect(ctx, contactForm(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollectInto_StreamsAnswersInOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	r, _ := New(WithPromptDriver(driver))

	var got []string
	err := r.CollectInto(context.Background(), contactForm(), render.RenderOptions{}, func(field, value string) error {
		got = append(got, field+"="+value)
		return nil
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{"name=Ada", "email=ada@example.com", "message=Need a sourcing review"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectInto_SinkErrorStops(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Need a sourcing review"},
	}
	r, _ := New(WithPromptDriver(driver))

	rejected := errors.New("closed")
	err := r.CollectInto(context.Background(), contactForm(), render.RenderOptions{}, func(field, _ string) error {
		if field == "email" {
			return rejected
		}
		return nil
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if driver.textPos != 0 {
		t.Fatalf("expected no prompts after the sink failed")
	}
}
