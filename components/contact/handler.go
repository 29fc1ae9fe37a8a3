package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
	"github.com/goliatone/go-admaiora/pkg/render"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type submitResponse struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Handler builds a component with default options plus any overrides and
// returns its handler.
func Handler(fns ...OptionFn) (http.Handler, error) {
	c, err := New(fns...)
	if err != nil {
		return nil, err
	}
	return c.Handler(), nil
}

func (c *Component) handlerAt(action string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if c.opts.Guard != nil {
			if err := c.opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		id, ctrl := c.visits.resolve(visitID(r, c.opts.CookieName))
		if r.Method == http.MethodPost {
			c.serveSubmit(w, r, action, id, ctrl)
			return
		}

		setVisitCookie(w, c.opts, id)
		w.Header().Set("Cache-Control", "no-store")
		if wantsJSON(r) {
			writeJSON(w, r, http.StatusOK, ctrl.Snapshot())
			return
		}
		c.servePage(w, r, action, http.StatusOK, ctrl)
	})
}

func (c *Component) serveSubmit(w http.ResponseWriter, r *http.Request, action, id string, ctrl *pkgcontact.Controller) {
	values, err := readValues(w, r, c.opts.MaxBodyBytes)
	if err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		http.Error(w, http.StatusText(code), code)
		return
	}

	fieldErrs, err := ctrl.Submit(r.Context(), values)
	if errors.Is(err, pkgcontact.ErrClosed) {
		// The visit expired between lookup and submit.
		id, ctrl = c.visits.renew(id)
		fieldErrs, err = ctrl.Submit(r.Context(), values)
	}
	if err != nil {
		c.opts.Logger.Error("contact submit", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	setVisitCookie(w, c.opts, id)
	w.Header().Set("Cache-Control", "no-store")

	if wantsJSON(r) {
		if !fieldErrs.Valid() {
			writeJSON(w, r, http.StatusUnprocessableEntity, submitResponse{Errors: fieldErrs})
			return
		}
		writeJSON(w, r, http.StatusOK, submitResponse{Submitted: true})
		return
	}

	if !fieldErrs.Valid() {
		c.opts.Logger.Debug("contact form rejected", zap.Strings("fields", fieldNames(fieldErrs)))
		c.servePage(w, r, action, http.StatusUnprocessableEntity, ctrl)
		return
	}
	http.Redirect(w, r, action, http.StatusSeeOther)
}

func (c *Component) servePage(w http.ResponseWriter, r *http.Request, action string, status int, ctrl *pkgcontact.Controller) {
	fadeIn := ctrl.Mount()
	body, err := c.renderPage(r.Context(), action, ctrl.Snapshot(), fadeIn)
	if err != nil {
		c.opts.Logger.Error("render contact page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, body)
}

func (c *Component) renderPage(ctx context.Context, action string, state pkgcontact.State, fadeIn bool) ([]byte, error) {
	options := render.RenderOptions{
		Action: action,
		Values: state.Values.Map(),
		Errors: state.FieldErrors.Messages(),
		FadeIn: fadeIn,
	}
	if state.Submitted {
		options.Banner = &render.Banner{
			Message:      c.opts.SuccessMessage,
			DismissAfter: c.opts.SuccessWindow,
		}
	}

	form, err := c.opts.Renderer.Render(ctx, c.form, options)
	if err != nil {
		return nil, err
	}
	if c.opts.Pages == nil {
		return form, nil
	}

	var buf bytes.Buffer
	extra := map[string]any{
		"form_html": string(form),
		"fade_in":   fadeIn,
	}
	if err := c.opts.Pages.Render(ctx, &buf, c.opts.PageSlug, extra); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readValues(w http.ResponseWriter, r *http.Request, limit int64) (pkgcontact.FormValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var values pkgcontact.FormValues
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return pkgcontact.FormValues{}, err
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return pkgcontact.FormValues{}, err
	}
	return pkgcontact.ValuesFromForm(r.PostForm), nil
}

func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func fieldNames(errs pkgcontact.FieldErrors) []string {
	list := errs.List()
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.Field)
	}
	return out
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
