// Package config provides YAML configuration parsing for pokedex.
//
// This package enables running pokedex as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Kanto Dex
//	port: 8080
//
//	api:
//	  url: ${POKEDEX_UPSTREAM:-http://localhost:9999/pokemon}
//	  timeout: 5s
//	  headers:
//	    Authorization: Bearer ${POKEDEX_TOKEN}
//
// Environment variables prefixed with POKEDEX_ override file values; see
// [Parse].
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/pokedex/internal/render"
)

const (
	defaultPort    = 8080
	defaultTimeout = 10 * time.Second

	// minTimeout is the smallest accepted api.timeout.
	minTimeout = 100 * time.Millisecond
)

// Config is the root configuration structure for pokedex.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the page title. Defaults to "Interactive Data Explorer".
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// API describes the creature-listing endpoint.
	API APIConfig `yaml:"api"`
}

// APIConfig describes the creature-listing endpoint fetched at startup.
type APIConfig struct {
	// URL is the listing endpoint.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// Timeout bounds the fetch. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are sent with the fetch request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches a reference such as ${POKEAPI_HOST} or
// ${POKEAPI_HOST:-pokeapi.co}. The second group is non-empty only when a
// fallback was written, so ${VAR:-} falls back to the empty string.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars substitutes every variable reference in s.
//
// Every unset variable without a fallback is reported, not only the first.
func expandEnvVars(s string) (string, error) {
	var missing []error

	result := envVarPattern.ReplaceAllStringFunc(s, func(ref string) string {
		m := envVarPattern.FindStringSubmatch(ref)
		name, fallback, hasFallback := m[1], m[3], m[2] != ""

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if !hasFallback {
			missing = append(missing, fmt.Errorf("environment variable %q is not set", name))
			return ref
		}
		return fallback
	})

	if len(missing) > 0 {
		return "", errors.Join(missing...)
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// FromEnv builds a configuration from defaults and POKEDEX_ environment
// variables alone, for running without a file.
func FromEnv() (*Config, error) {
	return Parse(nil)
}

// Parse parses YAML configuration data.
//
// Processing order:
//  1. YAML is decoded; empty input yields an empty document
//  2. Defaults are applied for Title, Port (8080) and API.Timeout (10s)
//  3. POKEDEX_TITLE, POKEDEX_PORT, POKEDEX_API_URL and POKEDEX_API_TIMEOUT
//     override the result
//  4. ${VAR} patterns in the URL and header values are expanded
//  5. The result is validated
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Title == "" {
		cfg.Title = render.DefaultTitle
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(defaultTimeout)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.API.URL == "" {
		return errors.New("api.url is required")
	}
	expanded, err := expandEnvVars(c.API.URL)
	if err != nil {
		return fmt.Errorf("api.url: %w", err)
	}
	c.API.URL = expanded

	parsedURL, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("api.url: invalid url: %w", err)
	}
	if parsedURL.Scheme == "" {
		return errors.New("api.url: url must have a scheme (http:// or https://)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("api.url: url scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("api.url: url must have a host")
	}

	for k, v := range c.API.Headers {
		if k == "" {
			return errors.New("api.headers: header name cannot be empty")
		}
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("api.headers[%s]: %w", k, err)
		}
		c.API.Headers[k] = expanded
	}

	if c.API.Timeout.Duration() < 0 {
		return fmt.Errorf("api.timeout cannot be negative, got %s", c.API.Timeout.Duration())
	}
	if c.API.Timeout.Duration() < minTimeout {
		return fmt.Errorf("api.timeout must be at least %s, got %s", minTimeout, c.API.Timeout.Duration())
	}

	return nil
}
