package site

import (
	"bytes"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-admaiora/pkg/renderers/vanilla"
)

// Route is an additional handler mounted next to the content pages.
type Route struct {
	Pattern string
	Handler http.Handler
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	routes []Route
	logger *zap.Logger
}

// WithRoute mounts h at pattern. Component routes take precedence over
// content pages sharing the same path.
func WithRoute(pattern string, h http.Handler) HandlerOption {
	return func(cfg *handlerConfig) {
		if pattern != "" && h != nil {
			cfg.routes = append(cfg.routes, Route{Pattern: pattern, Handler: h})
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(cfg *handlerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewHandler returns the site's route table:
//
//	/healthz          liveness probe
//	/assets/...       embedded stylesheets and script
//	component routes  see WithRoute
//	everything else   content page by path, or the 404 page
func NewHandler(pages *PageRenderer, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(AssetsFS()))))
	mux.Handle("/assets/"+vanilla.StylesheetName, http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
	for _, route := range cfg.routes {
		mux.Handle(route.Pattern, route.Handler)
	}
	mux.Handle("/", pageHandler(pages, cfg.logger))

	return logRequests(mux, cfg.logger)
}

func pageHandler(pages *PageRenderer, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var (
			buf    bytes.Buffer
			status = http.StatusOK
			err    error
		)
		if page, ok := pages.store.Current().PageByPath(r.URL.Path); ok {
			err = pages.Render(r.Context(), &buf, page.Slug, nil)
		} else {
			status = http.StatusNotFound
			err = pages.RenderNotFound(r.Context(), &buf, r.URL.Path)
		}
		if err != nil {
			logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		WriteHTML(w, r, status, buf.Bytes())
	})
}

// WriteHTML writes an HTML response, omitting the body for HEAD requests.
func WriteHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
