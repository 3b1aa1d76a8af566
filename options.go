package pokedex

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// pdConfig holds mutable state during Pokedex construction.
type pdConfig struct {
	title         string
	apiURL        string
	port          int
	timeout       time.Duration
	headers       map[string]string
	logger        *slog.Logger
	loadCallbacks []func(LoadResult)
}

// Option is a function that configures a [Pokedex] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithAPIURL], [WithPort], [WithTitle], [WithTimeout],
// [WithHeaders], [WithLogger], [WithLoadCallback].
type Option func(*pdConfig) error

// WithAPIURL sets the creature-listing endpoint fetched at startup.
//
// The endpoint must answer GET with a JSON array of
// {"id", "name", "types": [{"slot", "type": {"name", "url"}}]} objects.
// This option is required.
//
// Example:
//
//	pd, err := pokedex.New(
//	    pokedex.WithAPIURL("https://example.com/api/pokemon"),
//	)
//
// Returns an error if the URL is not an absolute http or https URL.
func WithAPIURL(rawURL string) Option {
	return func(cfg *pdConfig) error {
		if err := validateAPIURL(rawURL); err != nil {
			return err
		}
		cfg.apiURL = rawURL
		return nil
	}
}

// WithPort sets the HTTP port for the explorer page.
//
// The page and API will be available at http://localhost:<port>.
// Defaults to 8080 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *pdConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the page title displayed in the browser tab and header.
//
// If not specified, defaults to "Interactive Data Explorer".
func WithTitle(title string) Option {
	return func(cfg *pdConfig) error {
		cfg.title = title
		return nil
	}
}

// WithTimeout sets the deadline for the one-time fetch.
//
// Defaults to 10 seconds if not specified. A fetch that exceeds it settles
// the explorer in [PhaseFailed].
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *pdConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHeaders adds static headers to the fetch request.
//
// Arguments are key-value pairs. Can be called multiple times; later values
// for the same key win.
//
// Example:
//
//	pd, err := pokedex.New(
//	    pokedex.WithAPIURL(apiURL),
//	    pokedex.WithHeaders("Authorization", "Bearer token"),
//	)
//
// Returns an error if an odd number of arguments is given or a key is empty.
func WithHeaders(kv ...string) Option {
	return func(cfg *pdConfig) error {
		if len(kv)%2 != 0 {
			return errors.New("headers must be key-value pairs")
		}
		if cfg.headers == nil {
			cfg.headers = make(map[string]string, len(kv)/2)
		}
		for i := 0; i < len(kv); i += 2 {
			key := strings.TrimSpace(kv[i])
			if key == "" {
				return errors.New("header key cannot be empty")
			}
			cfg.headers[http.CanonicalHeaderKey(key)] = kv[i+1]
		}
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Pokedex instance.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pdConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithLoadCallback registers a function to be called once the fetch settles.
//
// The callback receives a [LoadResult] describing the outcome. Multiple
// callbacks may be registered; they execute in registration order, after the
// page has switched to its terminal phase.
//
// Callbacks are invoked synchronously from the loader goroutine. Panics
// within callbacks are recovered and logged.
//
// Example:
//
//	pd, err := pokedex.New(
//	    pokedex.WithAPIURL(apiURL),
//	    pokedex.WithLoadCallback(func(r pokedex.LoadResult) {
//	        if r.Phase == pokedex.PhaseFailed {
//	            log.Printf("ALERT: fetch failed: %v", r.Err)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithLoadCallback(cb func(LoadResult)) Option {
	return func(cfg *pdConfig) error {
		if cb == nil {
			return nil
		}
		cfg.loadCallbacks = append(cfg.loadCallbacks, cb)
		return nil
	}
}

func validateAPIURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("api url cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("api url must have a host")
	}
	return nil
}
