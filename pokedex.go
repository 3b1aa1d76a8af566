package pokedex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jpalmerr/pokedex/internal/api"
	"github.com/jpalmerr/pokedex/internal/explorer"
	"github.com/jpalmerr/pokedex/internal/lifecycle"
	"github.com/jpalmerr/pokedex/internal/server"
	"github.com/jpalmerr/pokedex/web"
)

const (
	defaultPort    = 8080
	defaultTimeout = api.DefaultTimeout
)

// Pokedex fetches a creature list once and serves an explorer page for it.
//
// Pokedex is created using [New] with functional options and started with
// [Pokedex.Start]. The page shows a loading indicator until the fetch
// settles, then either the fixed failure message or the searchable list.
//
// The typical lifecycle is:
//
//	pd, err := pokedex.New(pokedex.WithAPIURL(apiURL))
//	if err != nil {
//	    slog.Error("failed to create pokedex", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	pd.Start(ctx) // blocks until context cancelled
type Pokedex struct {
	title         string
	apiURL        string
	port          int
	timeout       time.Duration
	headers       map[string]string
	logger        *slog.Logger
	loadCallbacks []func(LoadResult)
}

// New creates a new [Pokedex] instance with the given options.
//
// The listing endpoint must be configured via [WithAPIURL]. Other options
// have sensible defaults:
//   - Port: 8080
//   - Fetch timeout: 10 seconds
//   - Title: "Interactive Data Explorer"
//
// Returns an error if no API URL is configured or if any option is invalid.
func New(opts ...Option) (*Pokedex, error) {
	cfg := &pdConfig{
		port:    defaultPort,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.apiURL == "" {
		return nil, errors.New("api url is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pokedex{
		title:         cfg.title,
		apiURL:        cfg.apiURL,
		port:          cfg.port,
		timeout:       cfg.timeout,
		headers:       maps.Clone(cfg.headers),
		logger:        logger,
		loadCallbacks: cfg.loadCallbacks,
	}, nil
}

// Start fetches the list and serves the explorer page.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The HTTP server starts on the configured port, initially in the loading phase
//   - The list is fetched exactly once in the background; there is no retry
//   - Load callbacks run once the fetch settles
//   - The page is available at http://localhost:<port>
//
// Cancelling the context while the fetch is in flight aborts it.
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server fails to start.
func (pd *Pokedex) Start(ctx context.Context) error {
	pd.logger.Info("pokedex starting", "api_url", pd.apiURL)
	pd.logger.Info("explorer available", "url", fmt.Sprintf("http://localhost:%d", pd.port))

	if ctx.Err() != nil {
		return nil
	}

	client := pd.newClient()
	defer client.Close()

	controller := lifecycle.NewController(client, pd.logger)

	httpServer := server.NewServer(controller, pd.port, web.Assets, pd.title, pd.logger)
	if err := httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pd.load(gctx, controller)
		return nil
	})

	<-ctx.Done()
	_ = g.Wait()
	pd.logger.Info("pokedex stopped")
	return nil
}

// Explore performs a one-shot fetch and returns the filtered view.
//
// Explore does not start a server. A failed fetch is reported through the
// result's phase and [FailureMessage], the same way the page reports it.
func (pd *Pokedex) Explore(ctx context.Context, f Filter) Result {
	client := pd.newClient()
	defer client.Close()

	state := pd.load(ctx, lifecycle.NewController(client, pd.logger))

	result := Result{
		Phase:     publicPhase(state.Phase),
		Message:   state.Message,
		Filter:    f,
		Creatures: []Creature{},
		Types:     []string{},
	}
	if state.Phase == lifecycle.PhaseReady {
		view := explorer.Derive(state.Creatures, f.internal())
		result.Creatures = toPublicCreatures(view.Creatures)
		result.Types = view.Types
	}
	return result
}

// APIURL returns the configured listing endpoint.
func (pd *Pokedex) APIURL() string {
	return pd.apiURL
}

// Port returns the configured HTTP port for the explorer page.
func (pd *Pokedex) Port() int {
	return pd.port
}

// Timeout returns the configured deadline for the fetch.
func (pd *Pokedex) Timeout() time.Duration {
	return pd.timeout
}

func (pd *Pokedex) newClient() *api.Client {
	return api.NewClient(api.Config{
		URL:     pd.apiURL,
		Headers: maps.Clone(pd.headers),
		Timeout: pd.timeout,
	})
}

// load settles the controller and notifies load callbacks.
func (pd *Pokedex) load(ctx context.Context, controller *lifecycle.Controller) lifecycle.State {
	start := time.Now()
	state := controller.Load(ctx)

	if len(pd.loadCallbacks) > 0 {
		result := LoadResult{
			Phase:    publicPhase(state.Phase),
			Message:  state.Message,
			Err:      controller.Cause(),
			URL:      pd.apiURL,
			Latency:  time.Since(start),
			LoadedAt: time.Now(),
		}
		for _, cb := range pd.loadCallbacks {
			// each callback gets its own copy of the list
			result.Creatures = toPublicCreatures(state.Creatures)
			invokeCallbackSafe(cb, result, pd.logger)
		}
	}
	return state
}

// invokeCallbackSafe calls a load callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(LoadResult), result LoadResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("load callback panicked",
				"panic", r,
				"correlation_id", uuid.NewString(),
				"phase", result.Phase.String(),
			)
		}
	}()
	cb(result)
}
