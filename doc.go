// Package pokedex provides an embeddable, searchable explorer for a list of
// creatures fetched from a JSON endpoint.
//
// Pokedex fetches the list exactly once, then serves a page that shows a
// loading indicator, the fixed failure message, or the list narrowed by a
// free-text name search and a type selector. Filtering is a pure function of
// the fetched list and the request's query string, so every visitor gets
// their own filter.
//
// # Quick Start
//
//	pd, _ := pokedex.New(pokedex.WithAPIURL("https://example.com/api/pokemon"))
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	pd.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Pokedex uses the functional options pattern for configuration:
//
//	pd, err := pokedex.New(
//	    pokedex.WithAPIURL(apiURL),
//	    pokedex.WithPort(9090),
//	    pokedex.WithTitle("Kanto Dex"),
//	    pokedex.WithTimeout(5 * time.Second),
//	    pokedex.WithHeaders("Authorization", "Bearer token"),
//	)
//
// The config package builds the same options from a YAML file.
//
// # One-shot queries
//
// [Pokedex.Explore] runs the fetch and derivation without a server:
//
//	res := pd.Explore(ctx, pokedex.Filter{Search: "char", Type: "fire"})
//
// # Architecture
//
// Pokedex consists of several internal packages (under internal/):
//
//   - internal/api: HTTP client for the listing endpoint
//   - internal/lifecycle: one-shot load with loading, failed and ready phases
//   - internal/explorer: filtering and type derivation
//   - internal/render: HTML components for each phase
//   - internal/server: HTTP server with the page, a JSON API and Server-Sent Events
//   - web: embedded stylesheet and script
//
// The internal packages are not part of the public API and may change
// without notice.
package pokedex
