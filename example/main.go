package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/pokedex"
	"github.com/jpalmerr/pokedex/example/mockapi"
)

func main() {
	// start mock listing (slow enough to see the loading indicator)
	mock := &http.Server{
		Addr: ":9999",
		Handler: mockapi.Handler(mockapi.Options{
			MinLatency: 1 * time.Second,
			MaxLatency: 2 * time.Second,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := mock.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mock server error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	pd, err := pokedex.New(
		pokedex.WithAPIURL("http://localhost:9999/pokemon"),
		pokedex.WithPort(8080),
		pokedex.WithTimeout(5*time.Second),
		pokedex.WithLoadCallback(func(r pokedex.LoadResult) {
			if r.Phase == pokedex.PhaseFailed {
				slog.Warn("listing unavailable", "error", r.Err)
				return
			}
			slog.Info("listing ready", "creatures", len(r.Creatures), "latency", r.Latency.String())
		}),
	)
	if err != nil {
		slog.Error("failed to create pokedex", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Pokedex Demo                                        ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║   Try http://localhost:8080/?q=char&type=fire         ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pd.Start(ctx); err != nil {
		slog.Error("pokedex error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = mock.Shutdown(shutdownCtx)
}
