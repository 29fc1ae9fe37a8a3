// Package config holds the server configuration: defaults, then an optional
// YAML file, then ADMAIORA_* environment overrides. Command line flags are
// applied by the CLI on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAddr         = "ADMAIORA_ADDR"
	EnvFormEndpoint = "ADMAIORA_FORM_ENDPOINT"
	EnvFormName     = "ADMAIORA_FORM_NAME"
	EnvLogLevel     = "ADMAIORA_LOG_LEVEL"
	EnvVisitTTL     = "ADMAIORA_VISIT_TTL"
	EnvContentPath  = "ADMAIORA_CONTENT"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Contact ContactConfig `yaml:"contact"`
	Theme   ThemeConfig   `yaml:"theme"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// ContentConfig points at the site copy. An empty Path serves the embedded
// copy.
type ContentConfig struct {
	Path         string `yaml:"path"`
	TemplatesDir string `yaml:"templates_dir"`
	Watch        bool   `yaml:"watch"`
}

// ContactConfig configures submission delivery and visit tracking. An empty
// Endpoint logs submissions instead of posting them.
type ContactConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	FormName        string        `yaml:"form_name"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	DeliveryTimeout time.Duration `yaml:"delivery_timeout"`
	QueueSize       int           `yaml:"queue_size"`
	VisitTTL        time.Duration `yaml:"visit_ttl"`
	MaxVisits       int           `yaml:"max_visits"`
	SecureCookie    bool          `yaml:"secure_cookie"`
}

type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Format      string `yaml:"format"` // json, console
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Contact: ContactConfig{
			FormName:        "contact",
			RequestTimeout:  10 * time.Second,
			DeliveryTimeout: 15 * time.Second,
			QueueSize:       64,
			VisitTTL:        30 * time.Minute,
			MaxVisits:       4096,
		},
		Theme: ThemeConfig{
			Name: "admaiora",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// ApplyEnv overrides fields from the ADMAIORA_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvFormEndpoint); ok {
		c.Contact.Endpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvFormName); ok && v != "" {
		c.Contact.FormName = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvContentPath); ok && v != "" {
		c.Content.Path = v
	}
	if v, ok := lookup(EnvVisitTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvVisitTTL, err)
		}
		c.Contact.VisitTTL = ttl
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Contact.VisitTTL <= 0 {
		errs = append(errs, errors.New("contact.visit_ttl must be positive"))
	}
	if c.Contact.MaxVisits <= 0 {
		errs = append(errs, errors.New("contact.max_visits must be positive"))
	}
	if c.Contact.QueueSize < 0 {
		errs = append(errs, errors.New("contact.queue_size must not be negative"))
	}
	if strings.TrimSpace(c.Contact.FormName) == "" {
		errs = append(errs, errors.New("contact.form_name is required"))
	}
	if c.Contact.Endpoint != "" {
		u, err := url.Parse(c.Contact.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("contact.endpoint %q must be an absolute http(s) URL", c.Contact.Endpoint))
		}
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}
