package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/jpalmerr/pokedex/internal/explorer"
	"github.com/jpalmerr/pokedex/internal/lifecycle"
	"github.com/jpalmerr/pokedex/internal/render"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write operation.
	// Must be <= shutdown timeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// shutdownTimeout bounds graceful shutdown after the context is cancelled.
	shutdownTimeout = 5 * time.Second
)

// Server handles HTTP requests for the explorer page and its API.
//
// Server provides these endpoints:
//   - GET /: the explorer page for the current phase and ?q=&type= filter
//   - GET /assets/: embedded stylesheet and script
//   - GET /api/creatures: the filtered view as JSON
//   - GET /api/types: the distinct types as JSON
//   - GET /api/sse: Server-Sent Events announcing the phase until it settles
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	source     lifecycle.Source
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	logger     *slog.Logger
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - src: lifecycle state to render
//   - port: TCP port to listen on (0 lets the OS choose)
//   - assets: embedded filesystem containing the static assets (may be nil)
//   - title: page title (defaults to render.DefaultTitle if empty)
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(src lifecycle.Source, port int, assets fs.FS, title string, logger *slog.Logger) *Server {
	if title == "" {
		title = render.DefaultTitle
	}
	return &Server{
		source: src,
		port:   port,
		assets: assets,
		title:  title,
		logger: logger,
	}
}

// Handler returns the server's request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("/api/creatures", s.handleCreatures)
	mux.HandleFunc("/api/types", s.handleTypes)
	mux.HandleFunc("/api/sse", s.handleSSE)

	if s.assets != nil {
		mux.Handle("/assets/", http.FileServer(http.FS(s.assets)))
	}

	mux.HandleFunc("/", s.handlePage)
	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening. The server continues until the context is cancelled, then
// shuts down gracefully with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers exit on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// filterFromRequest reads the filter state carried in the query string.
func filterFromRequest(r *http.Request) explorer.Filter {
	q := r.URL.Query()
	return explorer.Filter{
		Search: q.Get("q"),
		Type:   q.Get("type"),
	}
}

// handlePage renders the explorer page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := render.NewPageData(s.title, s.source.State(), filterFromRequest(r))

	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(render.Page(data),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			s.logger.Error("failed to render page", "error", err, "phase", data.Phase.String())
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

// creaturesResponse is the JSON body of /api/creatures.
type creaturesResponse struct {
	Phase     string              `json:"phase"`
	Message   string              `json:"message,omitempty"`
	Filter    explorer.Filter     `json:"filter"`
	Creatures []explorer.Creature `json:"creatures"`
	Types     []string            `json:"types"`
}

// handleCreatures returns the filtered view as JSON.
//
// A failed load answers 503 with the fixed message; loading answers 200 with
// an empty list and phase "loading".
func (s *Server) handleCreatures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.source.State()
	f := filterFromRequest(r)

	resp := creaturesResponse{
		Phase:     state.Phase.String(),
		Message:   state.Message,
		Filter:    f,
		Creatures: []explorer.Creature{},
		Types:     []string{},
	}
	status := http.StatusOK
	switch state.Phase {
	case lifecycle.PhaseReady:
		view := explorer.Derive(state.Creatures, f)
		resp.Creatures = view.Creatures
		resp.Types = view.Types
	case lifecycle.PhaseFailed:
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, resp)
}

// handleTypes returns the distinct types across all creatures.
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	types := []string{}
	if state := s.source.State(); state.Phase == lifecycle.PhaseReady {
		types = explorer.Categories(state.Creatures)
	}

	s.writeJSON(w, http.StatusOK, types)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// phaseEvent is the SSE payload.
type phaseEvent struct {
	Phase   string `json:"phase"`
	Message string `json:"message,omitempty"`
}

func newPhaseEvent(state lifecycle.State) phaseEvent {
	return phaseEvent{Phase: state.Phase.String(), Message: state.Message}
}

// handleSSE announces the lifecycle phase via Server-Sent Events.
//
// The current phase is sent immediately. If it is still loading, the handler
// waits for settlement, sends the terminal phase and ends the stream. Write
// deadlines keep a stalled client from pinning the handler.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	rc := http.NewResponseController(w)

	// write deadlines may not be supported by every ResponseWriter
	deadlinesSupported := true

	writeAndFlush := func(ev phaseEvent) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// subscribe before reading the snapshot so settlement cannot be missed
	ch := s.source.Subscribe()
	defer s.source.Unsubscribe(ch)

	current := s.source.State()
	if err := writeAndFlush(newPhaseEvent(current)); err != nil {
		return
	}
	if current.Phase.Settled() {
		return
	}

	select {
	case state, ok := <-ch:
		if !ok {
			return
		}
		_ = writeAndFlush(newPhaseEvent(state))

	case <-r.Context().Done():
		// fires on both client disconnect and server shutdown
	}
}
