// Package admaiora assembles the Ad Maiora site: content pages, the contact
// form component and submission delivery behind one HTTP server.
package admaiora

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	"github.com/goliatone/go-admaiora/internal/config"
	"github.com/goliatone/go-admaiora/internal/content"
	"github.com/goliatone/go-admaiora/internal/site"
	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	"github.com/goliatone/go-admaiora/pkg/theme"
)

// ServerOption customises NewServer.
type ServerOption func(*serverOptions)

type serverOptions struct {
	logger  *zap.Logger
	channel pkgcontact.Channel
	clock   clock.WithDelayedExecution
}

// WithLogger sets the logger shared by every part of the server.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(o *serverOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithChannel replaces the delivery channel built from the configuration.
// The channel is still wrapped in the asynchronous dispatcher.
func WithChannel(channel pkgcontact.Channel) ServerOption {
	return func(o *serverOptions) {
		o.channel = channel
	}
}

// WithClock injects the clock used for success windows and reload debouncing.
func WithClock(c clock.WithDelayedExecution) ServerOption {
	return func(o *serverOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// Server owns the HTTP listener and everything behind it.
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	store      *content.Store
	pages      *site.PageRenderer
	dispatcher *pkgcontact.Dispatcher
	contact    *contactcomponent.Component
	handler    http.Handler
	http       *http.Server
}

// NewServer wires the site from cfg. Nothing listens until Run.
func NewServer(cfg *config.Config, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := serverOptions{logger: zap.NewNop(), clock: clock.RealClock{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s := &Server{cfg: cfg, logger: o.logger}

	store, err := content.NewStore(cfg.Content.Path,
		content.WithLogger(o.logger.Named("content")),
		content.WithClock(o.clock),
		content.WithReloadHook(func(*content.Site) { s.pages.Reset() }),
	)
	if err != nil {
		return nil, err
	}
	s.store = store

	selector, err := theme.NewSelector()
	if err != nil {
		return nil, err
	}
	selection, err := selector.Select(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}

	s.pages, err = site.NewPageRenderer(store,
		site.WithTheme(theme.Resolve(selection)),
		site.WithTemplatesDir(cfg.Content.TemplatesDir),
	)
	if err != nil {
		return nil, err
	}

	channel := o.channel
	if channel == nil {
		channel, err = NewChannel(cfg.Contact, o.logger.Named("delivery"))
		if err != nil {
			return nil, err
		}
	}
	s.dispatcher = pkgcontact.NewDispatcher(channel,
		pkgcontact.WithQueueSize(cfg.Contact.QueueSize),
		pkgcontact.WithDeliveryTimeout(cfg.Contact.DeliveryTimeout),
		pkgcontact.WithDispatcherLogger(o.logger.Named("dispatcher")),
	)

	s.contact, err = contactcomponent.New(
		contactcomponent.WithChannel(s.dispatcher),
		contactcomponent.WithPages(s.pages),
		contactcomponent.WithClock(o.clock),
		contactcomponent.WithLogger(o.logger.Named("contact")),
		contactcomponent.WithVisitTTL(cfg.Contact.VisitTTL),
		contactcomponent.WithMaxVisits(cfg.Contact.MaxVisits),
		contactcomponent.WithCookie(contactcomponent.DefaultCookieName, cfg.Contact.SecureCookie),
		contactcomponent.WithSuccessMessage(store.Current().Contact.SuccessMessage),
	)
	if err != nil {
		_ = s.dispatcher.Close(context.Background())
		return nil, err
	}

	s.handler = site.NewHandler(s.pages,
		site.WithRoute(contactcomponent.MountPath(""), s.contact.Handler()),
		site.WithLogger(o.logger.Named("http")),
	)
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return s, nil
}

// NewChannel builds the delivery channel described by cfg. Without an
// endpoint submissions are logged.
func NewChannel(cfg config.ContactConfig, logger *zap.Logger) (pkgcontact.Channel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		logger.Warn("no form endpoint configured, submissions are logged only")
		return pkgcontact.LogChannel{Logger: logger}, nil
	}
	return pkgcontact.NewFormPostChannel(cfg.Endpoint,
		pkgcontact.WithFormName(cfg.FormName),
		pkgcontact.WithRequestTimeout(cfg.RequestTimeout),
	)
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Pages returns the page renderer.
func (s *Server) Pages() *site.PageRenderer {
	return s.pages
}

// Contact returns the contact form component.
func (s *Server) Contact() *contactcomponent.Component {
	return s.contact
}

// Content returns the content store.
func (s *Server) Content() *content.Store {
	return s.store
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully and drains pending deliveries.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("admaiora: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admaiora: serve: %w", err)
		}
		return nil
	})

	if s.cfg.Content.Watch && s.store.Path() != "" {
		g.Go(func() error {
			return s.store.Watch(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops the listener, discards visits and drains the dispatcher.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("admaiora: shutdown http: %w", err))
	}
	s.contact.Close()
	if err := s.dispatcher.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("admaiora: drain deliveries: %w", err))
	}
	return errors.Join(errs...)
}
