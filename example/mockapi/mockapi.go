// Package mockapi serves a fixed creature listing for demos and manual
// testing of the pokedex CLI.
package mockapi

import (
	_ "embed"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

//go:embed creatures.json
var creaturesJSON []byte

// Options tune the mock listing.
type Options struct {
	// MinLatency and MaxLatency bound a random delay before each response,
	// so the loading indicator is visible.
	MinLatency time.Duration
	MaxLatency time.Duration

	// Fail makes every response a 503.
	Fail bool

	Logger *slog.Logger
}

// Handler returns a handler serving the listing at "/pokemon".
//
// A "fail" query parameter forces a 503 for that request, which exercises
// the explorer's error phase without restarting the mock.
func Handler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		delay := opts.MinLatency
		if spread := opts.MaxLatency - opts.MinLatency; spread > 0 {
			delay += time.Duration(rand.Int63n(int64(spread)))
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if opts.Fail || r.URL.Query().Has("fail") {
			logger.Info("mock listing failing on purpose", "remote", r.RemoteAddr)
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}

		logger.Info("mock listing served", "remote", r.RemoteAddr, "delay_ms", delay.Milliseconds())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(creaturesJSON)
	})
	return mux
}
