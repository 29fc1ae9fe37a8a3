package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"

	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	pkgmodel "github.com/goliatone/go-admaiora/pkg/model"
	"github.com/goliatone/go-admaiora/pkg/renderers/vanilla"
)

// Component wires the contact form model, its renderer and the visit store
// behind one handler.
type Component struct {
	opts   Options
	form   pkgmodel.FormModel
	visits *visitStore
}

// New builds the component. The form model comes from the embedded OpenAPI
// description; the vanilla renderer is used unless WithRenderer is given.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)

	form, err := FormModel(context.Background())
	if err != nil {
		return nil, err
	}
	if opts.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("contact: build renderer: %w", err)
		}
		opts.Renderer = renderer
	}

	c := &Component{opts: opts, form: form}
	c.visits = newVisitStore(opts.MaxVisits, opts.VisitTTL, c.newController)
	return c, nil
}

func (c *Component) newController() *pkgcontact.Controller {
	return pkgcontact.NewController(c.opts.Channel,
		pkgcontact.WithClock(c.opts.Clock),
		pkgcontact.WithSuccessWindow(c.opts.SuccessWindow),
		pkgcontact.WithLogger(c.opts.Logger),
	)
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Form returns the form model the component renders.
func (c *Component) Form() pkgmodel.FormModel {
	return c.form
}

// Handler returns the handler mounted at the configured route path.
func (c *Component) Handler() http.Handler {
	return c.handlerAt(mountPath("", c.opts.RoutePath))
}

// RenderStatic writes the contact page for a visitor with no state, without
// the entrance transition. It backs static exports.
func (c *Component) RenderStatic(ctx context.Context, w io.Writer) error {
	body, err := c.renderPage(ctx, mountPath("", c.opts.RoutePath), pkgcontact.State{}, false)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// Visits reports how many visits are live.
func (c *Component) Visits() int {
	return c.visits.len()
}

// Close discards every visit. Pending success timers become no-ops.
func (c *Component) Close() {
	if c == nil || c.visits == nil {
		return
	}
	c.visits.purge()
}
