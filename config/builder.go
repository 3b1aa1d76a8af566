package config

import (
	"log/slog"
	"sort"

	"github.com/jpalmerr/pokedex"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The logger is passed through when non-nil. Callers append their own
// options (callbacks, for example) before calling [pokedex.New].
func BuildOptions(cfg *Config, logger *slog.Logger) []pokedex.Option {
	opts := []pokedex.Option{
		pokedex.WithAPIURL(cfg.API.URL),
		pokedex.WithPort(cfg.Port),
		pokedex.WithTitle(cfg.Title),
	}

	if cfg.API.Timeout != 0 {
		opts = append(opts, pokedex.WithTimeout(cfg.API.Timeout.Duration()))
	}

	if len(cfg.API.Headers) > 0 {
		opts = append(opts, pokedex.WithHeaders(mapToKeyValuePairs(cfg.API.Headers)...))
	}

	if logger != nil {
		opts = append(opts, pokedex.WithLogger(logger))
	}

	return opts
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
