// Package config loads and validates application configuration from an
// optional YAML file and ANNOTATOR_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
// ANNOTATOR_LOG_LEVEL sets log_level, ANNOTATOR_SUBMIT_URL sets submit_url, etc.
const EnvPrefix = "ANNOTATOR_"

// Config holds all configuration values for the annotator server and CLI.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `koanf:"port"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CORSOrigins is a comma-separated list of allowed cross-origin request
	// origins. Defaults to the Angular dev server, http://localhost:4200.
	CORSOrigins string `koanf:"cors_origins"`

	// DatabaseURL is the Postgres connection string. Optional: when empty the
	// server does not mount the /DocumentAnnotations/ collection endpoint.
	DatabaseURL string `koanf:"database_url"`

	// SubmitURL is the endpoint every export is POSTed to.
	SubmitURL string `koanf:"submit_url"`

	// SubmitDisabled turns off remote submission; exports are download-only.
	SubmitDisabled bool `koanf:"submit_disabled"`

	// SubmitTimeout bounds each submission. Zero means no client timeout.
	SubmitTimeout time.Duration `koanf:"submit_timeout"`

	// MaxBodyBytes limits request bodies accepted by the server.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// Defaults returns the configuration used for every key not set elsewhere.
func Defaults() Config {
	return Config{
		Port:          "8080",
		LogLevel:      "info",
		CORSOrigins:   "http://localhost:4200",
		SubmitURL:     "http://localhost:8000/DocumentAnnotations/",
		SubmitTimeout: 30 * time.Second,
		MaxBodyBytes:  1 << 20,
	}
}

// Load builds a Config from Defaults, then the YAML file at path (skipped when
// path is empty or the file does not exist), then ANNOTATOR_* environment
// variables. Empty values fall back to the defaults. Returns an error listing
// every invalid key.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Variables that are set but empty count as unset, so they are dropped
	// before merging over the file.
	ek := koanf.New(".")
	if err := ek.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}
	for key, v := range ek.All() {
		if s, ok := v.(string); ok && s == "" {
			ek.Delete(key)
		}
	}
	if err := k.Merge(ek); err != nil {
		return Config{}, fmt.Errorf("merging environment: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys the YAML file set to an empty value.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.CORSOrigins == "" {
		c.CORSOrigins = d.CORSOrigins
	}
	if c.SubmitURL == "" {
		c.SubmitURL = d.SubmitURL
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
}

// Validate reports every invalid value in one error.
func (c Config) Validate() error {
	var problems []string

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if !c.SubmitDisabled {
		u, err := url.Parse(c.SubmitURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, fmt.Sprintf("submit_url %q is not an absolute http(s) URL", c.SubmitURL))
		}
	}
	if c.SubmitTimeout < 0 {
		problems = append(problems, "submit_timeout must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		problems = append(problems, "max_body_bytes must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// AllowedOrigins splits CORSOrigins into a trimmed slice, ignoring empty entries.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
