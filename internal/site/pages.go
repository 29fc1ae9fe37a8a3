// Package site renders the brochure pages and owns the route table.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-admaiora/internal/content"
	rendertemplate "github.com/goliatone/go-admaiora/pkg/render/template"
	"github.com/goliatone/go-admaiora/pkg/render/template/gotemplate"
	"github.com/goliatone/go-admaiora/pkg/theme"
)

const (
	// NotFoundSlug names the template used for unknown paths.
	NotFoundSlug = "notfound"

	defaultPageTemplate = "pages/default.tmpl"
)

// ErrUnknownPage is returned when no page matches the requested slug.
var ErrUnknownPage = errors.New("site: unknown page")

// Option configures a PageRenderer.
type Option func(*config)

type config struct {
	templatesDir string
	theme        theme.Config
	engine       rendertemplate.TemplateRenderer
}

// WithTemplatesDir renders from templates on disk, falling back to the
// embedded set for files the directory lacks.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithTheme supplies the resolved theme.
func WithTheme(cfg theme.Config) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithTemplateRenderer replaces the pongo2 engine.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(c *config) {
		c.engine = engine
	}
}

// PageRenderer renders content pages inside the shared layout.
type PageRenderer struct {
	engine   rendertemplate.TemplateRenderer
	store    *content.Store
	theme    theme.Config
	lookupFS []fs.FS
}

// NewPageRenderer builds a renderer over the content store.
func NewPageRenderer(store *content.Store, opts ...Option) (*PageRenderer, error) {
	if store == nil || store.Current() == nil {
		return nil, errors.New("site: content store is required")
	}
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.theme.Theme == "" {
		selector, err := theme.NewSelector()
		if err != nil {
			return nil, err
		}
		selection, err := selector.Select("", "")
		if err != nil {
			return nil, err
		}
		cfg.theme = theme.Resolve(selection)
	}

	p := &PageRenderer{store: store, theme: cfg.theme, lookupFS: []fs.FS{TemplatesFS()}}
	if cfg.templatesDir != "" {
		p.lookupFS = append([]fs.FS{os.DirFS(cfg.templatesDir)}, p.lookupFS...)
	}

	p.engine = cfg.engine
	if p.engine == nil {
		options := []gotemplate.Option{gotemplate.WithFS(TemplatesFS())}
		if cfg.templatesDir != "" {
			options = append(options, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		engine, err := gotemplate.New(options...)
		if err != nil {
			return nil, fmt.Errorf("site: configure templates: %w", err)
		}
		p.engine = engine
	}
	return p, nil
}

// Render writes the page with the given slug. extra is merged into the
// template data; the contact page reads form_html from it.
func (p *PageRenderer) Render(ctx context.Context, w io.Writer, slug string, extra map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	site := p.store.Current()
	page, ok := site.Page(slug)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, slug)
	}
	return p.execute(w, p.templateFor(slug), site, page, extra)
}

// RenderNotFound writes the 404 page for path.
func (p *PageRenderer) RenderNotFound(ctx context.Context, w io.Writer, requested string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	page := content.Page{
		Slug:    NotFoundSlug,
		Path:    requested,
		Title:   "Page Not Found | " + p.store.Current().Name,
		Heading: "404 Page Not Found",
		Lead:    "The page you are looking for does not exist or has moved.",
	}
	return p.execute(w, "pages/"+NotFoundSlug+".tmpl", p.store.Current(), page, map[string]any{
		"requested_path": requested,
	})
}

// Reset drops cached templates so edited files are read on the next render.
func (p *PageRenderer) Reset() {
	if resetter, ok := p.engine.(interface{ Reset() }); ok {
		resetter.Reset()
	}
}

func (p *PageRenderer) execute(w io.Writer, name string, site *content.Site, page content.Page, extra map[string]any) error {
	data := map[string]any{
		"site":         site,
		"page":         page,
		"contact":      contactView(site.Contact),
		"current_path": page.Path,
		"theme_style":  p.theme.StyleBlock(),
		"assets": map[string]any{
			"site_stylesheet": p.theme.AssetURL("site.stylesheet"),
			"form_stylesheet": p.theme.AssetURL("form.stylesheet"),
			"site_script":     p.theme.AssetURL("site.script"),
		},
	}
	for key, value := range extra {
		data[key] = value
	}

	if _, err := p.engine.RenderTemplate(name, data, w); err != nil {
		return fmt.Errorf("site: render %s: %w", name, err)
	}
	return nil
}

func (p *PageRenderer) templateFor(slug string) string {
	name := path.Join("pages", slug+".tmpl")
	for _, fsys := range p.lookupFS {
		if _, err := fs.Stat(fsys, name); err == nil {
			return name
		}
	}
	return defaultPageTemplate
}

func contactView(c content.Contact) map[string]any {
	return map[string]any{
		"heading":         c.Heading,
		"location":        c.Location,
		"phone":           c.Phone,
		"email":           c.Email,
		"mailto":          c.MailtoURL(),
		"twitter_url":     c.TwitterURL,
		"twitter_label":   c.TwitterLabel,
		"office_hours":    c.OfficeHours,
		"promise_heading": c.PromiseHeading,
		"promise":         c.Promise,
		"typeform_title":  c.TypeformTitle,
		"typeform_id":     c.TypeformID,
	}
}
