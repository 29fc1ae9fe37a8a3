package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/render"
	rendertemplate "github.com/goliatone/go-admaiora/pkg/render/template"
	gotemplate "github.com/goliatone/go-admaiora/pkg/render/template/gotemplate"
)

// Name is the registry name of the vanilla renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits a plain HTML form: no client runtime, server side
// validation messages inline under each control.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapped := render.MapErrorPayload(form, options.Errors)
	fields := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, fieldView(form, field, options, mapped))
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":   formView(form, options),
		"fields": fields,
		"hidden": hiddenView(form, options),
		"errors": render.MergeFormErrors(options.FormErrors, mapped.Form...),
		"banner": bannerView(options.Banner),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func formView(form model.FormModel, options render.RenderOptions) map[string]any {
	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = form.Endpoint
	}
	method := form.Method
	if method == "" {
		method = "POST"
	}

	classes := ClassForm.String()
	if options.FadeIn {
		classes += " " + ClassFadeIn.String()
	}

	return map[string]any{
		"id":          form.OperationID,
		"name":        form.FormName,
		"action":      action,
		"method":      method,
		"enctype":     form.EncType,
		"title":       form.Summary,
		"description": form.Description,
		"submit":      form.SubmitLabel,
		"class":       classes,
		"fade_in":     options.FadeIn,
	}
}

func hiddenView(form model.FormModel, options render.RenderOptions) []any {
	var extras []render.HiddenField
	if form.FormName != "" {
		extras = append(extras, render.FormName(form.FormName))
	}
	fields := render.SortedHiddenFields(render.MergeHiddenFields(options.HiddenFields, extras...))

	out := make([]any, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func bannerView(banner *render.Banner) map[string]any {
	if banner == nil || strings.TrimSpace(banner.Message) == "" {
		return nil
	}
	return map[string]any{
		"message":       banner.Message,
		"dismiss_after": banner.DismissAfterMillis(),
		"class":         ClassBanner.String(),
	}
}
