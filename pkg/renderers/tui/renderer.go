package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions: each field of
// the form becomes a prompt and the answers are serialized as the output.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	validator    Validator
	confirm      string
	out          io.Writer
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field in order. opts.Values seed the defaults and
// opts.Errors are printed before the matching prompt.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, values)
}

// AnswerFunc receives each answer as soon as its prompt completes. A non-nil
// error stops the session.
type AnswerFunc func(field, value string) error

// Collect runs the prompts and returns the raw answers keyed by field name.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, opts render.RenderOptions) (map[string]string, error) {
	values := make(map[string]string, len(form.Fields))
	err := r.CollectInto(ctx, form, opts, func(field, value string) error {
		values[field] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// CollectInto runs the prompts in field order and hands every answer to sink
// before the next question is asked. The confirm step, when configured, runs
// after the last answer.
func (r *Renderer) CollectInto(ctx context.Context, form model.FormModel, opts render.RenderOptions, sink AnswerFunc) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	if sink == nil {
		return errors.New("tui: answer sink is nil")
	}

	if form.Summary != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Summary); err != nil {
			return err
		}
	}

	for _, field := range form.Fields {
		for _, msg := range opts.Errors[field.Name] {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
		value, err := r.promptField(ctx, field, opts.Values[field.Name])
		if err != nil {
			return err
		}
		if err := sink(field.Name, value); err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
	}

	if r.confirm != "" {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.confirm, Default: true})
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, defaultVal string) (string, error) {
	validate := r.fieldValidator(field)
	if field.Widget == model.WidgetTextarea {
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message:   displayLabel(field),
			Default:   defaultVal,
			Help:      displayHelp(field),
			Validator: validate,
		})
	}
	return r.driver.Input(ctx, InputConfig{
		Message:   displayLabel(field),
		Default:   defaultVal,
		Help:      displayHelp(field),
		Validator: validate,
	})
}

func (r *Renderer) fieldValidator(field model.Field) func(string) error {
	if r.validator != nil {
		return func(value string) error { return r.validator(field.Name, value) }
	}
	if len(field.Validations) == 0 {
		return nil
	}
	return func(value string) error { return checkRules(field, value) }
}

// checkRules applies the model's rules in declaration order and reports the
// first failure.
func checkRules(field model.Field, value string) error {
	for _, rule := range field.Validations {
		if ok := ruleHolds(rule, value); !ok {
			if rule.Message != "" {
				return errors.New(rule.Message)
			}
			return fmt.Errorf("%s: %s rule failed", displayLabel(field), rule.Kind)
		}
	}
	return nil
}

func ruleHolds(rule model.ValidationRule, value string) bool {
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return value != ""
	case model.ValidationRuleMinLength:
		n, err := strconv.Atoi(rule.Params["value"])
		return err != nil || utf8.RuneCountInString(value) >= n
	case model.ValidationRuleMaxLength:
		n, err := strconv.Atoi(rule.Params["value"])
		return err != nil || utf8.RuneCountInString(value) <= n
	case model.ValidationRuleEmail:
		addr, err := mail.ParseAddress(value)
		return err == nil && addr.Address == value
	case model.ValidationRulePattern:
		re, err := regexp.Compile(rule.Params["pattern"])
		return err != nil || re.MatchString(value)
	default:
		return true
	}
}

func (r *Renderer) serialize(form model.FormModel, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		data, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

func prettyPrint(form model.FormModel, values map[string]string) string {
	var b strings.Builder
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), value)
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}
