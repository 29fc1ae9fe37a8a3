package contact

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	"github.com/goliatone/go-admaiora/pkg/render"
)

const (
	DefaultRoutePath      = "/contact"
	DefaultPageSlug       = "contact"
	DefaultCookieName     = "am_visit"
	DefaultVisitTTL       = 30 * time.Minute
	DefaultMaxVisits      = 4096
	DefaultMaxBodyBytes   = 64 << 10
	DefaultSuccessMessage = "Your Inquiry Has Been Received—Expect Excellence"
)

// PageWriter wraps the rendered form in the site layout. It is satisfied
// by *site.PageRenderer.
type PageWriter interface {
	Render(ctx context.Context, w io.Writer, slug string, extra map[string]any) error
}

// GuardFunc can reject a request before it reaches the controller. Errors
// implementing HTTPError choose the status code; others produce 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath      string
	PageSlug       string
	CookieName     string
	CookieSecure   bool
	VisitTTL       time.Duration
	MaxVisits      int
	MaxBodyBytes   int64
	SuccessMessage string
	SuccessWindow  time.Duration

	// Channel receives validated submissions. Wrap slow channels in a
	// pkgcontact.Dispatcher so requests do not wait on the network.
	Channel  pkgcontact.Channel
	Pages    PageWriter
	Renderer render.Renderer
	Clock    clock.WithDelayedExecution
	Logger   *zap.Logger
	Guard    GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:      DefaultRoutePath,
		PageSlug:       DefaultPageSlug,
		CookieName:     DefaultCookieName,
		VisitTTL:       DefaultVisitTTL,
		MaxVisits:      DefaultMaxVisits,
		MaxBodyBytes:   DefaultMaxBodyBytes,
		SuccessMessage: DefaultSuccessMessage,
		SuccessWindow:  pkgcontact.SuccessWindow,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.PageSlug == "" {
		opts.PageSlug = DefaultPageSlug
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.VisitTTL <= 0 {
		opts.VisitTTL = DefaultVisitTTL
	}
	if opts.MaxVisits <= 0 {
		opts.MaxVisits = DefaultMaxVisits
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = DefaultSuccessMessage
	}
	if opts.SuccessWindow <= 0 {
		opts.SuccessWindow = pkgcontact.SuccessWindow
	}
	if opts.Channel == nil {
		opts.Channel = pkgcontact.DiscardChannel{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithPageSlug(slug string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageSlug = slug
	}
}

func WithCookie(name string, secure bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
		o.CookieSecure = secure
	}
}

func WithVisitTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.VisitTTL = ttl
	}
}

func WithMaxVisits(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxVisits = n
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithSuccessMessage(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SuccessMessage = message
	}
}

// WithSuccessWindow overrides how long the confirmation banner stays up.
func WithSuccessWindow(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SuccessWindow = d
	}
}

func WithChannel(channel pkgcontact.Channel) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Channel = channel
	}
}

func WithPages(pages PageWriter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Pages = pages
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithClock(c clock.WithDelayedExecution) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Clock = c
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}
