package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "admaiora.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	for _, key := range []string{EnvAddr, EnvFormEndpoint, EnvFormName, EnvLogLevel, EnvVisitTTL, EnvContentPath} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "contact", cfg.Contact.FormName)
	assert.Equal(t, 30*time.Minute, cfg.Contact.VisitTTL)
	assert.Equal(t, 4096, cfg.Contact.MaxVisits)
	assert.Empty(t, cfg.Contact.Endpoint)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvVisitTTL, "")
	path := writeConfig(t, `
server:
  addr: ":9090"
contact:
  endpoint: https://forms.example.com/
  visit_ttl: 5m
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "https://forms.example.com/", cfg.Contact.Endpoint)
	assert.Equal(t, 5*time.Minute, cfg.Contact.VisitTTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep defaults
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 80\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAddr:         "127.0.0.1:3000",
		EnvFormEndpoint: " https://forms.example.com/submit ",
		EnvFormName:     "inquiry",
		EnvLogLevel:     "warn",
		EnvVisitTTL:     "90s",
		EnvContentPath:  "/srv/site.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr)
	assert.Equal(t, "https://forms.example.com/submit", cfg.Contact.Endpoint)
	assert.Equal(t, "inquiry", cfg.Contact.FormName)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 90*time.Second, cfg.Contact.VisitTTL)
	assert.Equal(t, "/srv/site.yaml", cfg.Content.Path)
}

func TestApplyEnv_EmptyValuesKeepSettings(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvAddr: "", EnvFormName: ""})))
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "contact", cfg.Contact.FormName)
}

func TestApplyEnv_InvalidTTL(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{EnvVisitTTL: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvVisitTTL)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "addr", mutate: func(c *Config) { c.Server.Addr = " " }, want: "server.addr"},
		{name: "ttl", mutate: func(c *Config) { c.Contact.VisitTTL = 0 }, want: "visit_ttl"},
		{name: "endpoint", mutate: func(c *Config) { c.Contact.Endpoint = "forms.example.com" }, want: "contact.endpoint"},
		{name: "level", mutate: func(c *Config) { c.Logging.Level = "loud" }, want: "logging.level"},
		{name: "format", mutate: func(c *Config) { c.Logging.Format = "xml" }, want: "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	require.NoError(t, Default().Validate())
}
