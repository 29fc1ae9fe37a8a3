package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultFormName is the static form name the hosting provider routes on.
const DefaultFormName = "contact"

// FormNameField is the hidden input carrying the form name.
const FormNameField = "form-name"

// Channel hands a validated payload to whatever delivers it. Controllers call
// Deliver while holding their lock, so implementations used directly by a
// Controller should return quickly; wrap slow channels in a Dispatcher.
type Channel interface {
	Deliver(ctx context.Context, values FormValues) error
}

// ChannelFunc adapts a function to Channel.
type ChannelFunc func(ctx context.Context, values FormValues) error

func (f ChannelFunc) Deliver(ctx context.Context, values FormValues) error {
	return f(ctx, values)
}

// DiscardChannel drops every payload.
type DiscardChannel struct{}

func (DiscardChannel) Deliver(context.Context, FormValues) error { return nil }

// LogChannel writes payloads to a logger instead of sending them anywhere.
type LogChannel struct {
	Logger *zap.Logger
}

func (c LogChannel) Deliver(_ context.Context, values FormValues) error {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// Visitor details stay at debug level.
	logger.Info("contact submission",
		zap.Int("message_length", utf8.RuneCountInString(values.Message)),
	)
	logger.Debug("contact submission details",
		zap.String(FieldName, values.Name),
		zap.String(FieldEmail, values.Email),
		zap.String(FieldCompany, values.Company),
	)
	return nil
}

// StatusError reports a non-2xx response from the hosting provider.
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("contact: form post: unexpected status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("contact: form post: unexpected status %d", e.Code)
}

func (e StatusError) StatusCode() int { return e.Code }

// FormPostOption configures a FormPostChannel.
type FormPostOption func(*FormPostChannel)

// WithFormName overrides DefaultFormName.
func WithFormName(name string) FormPostOption {
	return func(c *FormPostChannel) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.formName = trimmed
		}
	}
}

// WithHTTPClient injects the client used for submissions.
func WithHTTPClient(client *http.Client) FormPostOption {
	return func(c *FormPostChannel) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRequestTimeout caps each submission when the default client is used.
func WithRequestTimeout(d time.Duration) FormPostOption {
	return func(c *FormPostChannel) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// FormPostChannel submits payloads as a named HTML form post: an
// application/x-www-form-urlencoded body with form-name plus the four fields.
type FormPostChannel struct {
	endpoint string
	formName string
	client   *http.Client
	timeout  time.Duration
}

// NewFormPostChannel validates endpoint and builds the channel.
func NewFormPostChannel(endpoint string, opts ...FormPostOption) (*FormPostChannel, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("contact: form post endpoint is required")
	}
	parsed, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("contact: invalid form post endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("contact: form post endpoint %q must use http or https", endpoint)
	}

	c := &FormPostChannel{
		endpoint: parsed.String(),
		formName: DefaultFormName,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// FormName returns the static form name sent with each submission.
func (c *FormPostChannel) FormName() string { return c.formName }

// Endpoint returns the submission URL.
func (c *FormPostChannel) Endpoint() string { return c.endpoint }

// Deliver posts values to the endpoint.
func (c *FormPostChannel) Deliver(ctx context.Context, values FormValues) error {
	body := values.URLValues()
	body.Set(FormNameField, c.formName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return fmt.Errorf("contact: form post: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("contact: form post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
