// Standalone mock listing server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/pokedex serve -c example/config.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/pokedex/example/mockapi"
)

func main() {
	addr := flag.String("addr", ":9999", "listen address")
	fail := flag.Bool("fail", false, "answer every request with 503")
	flag.Parse()

	fmt.Printf("Mock listing server starting on %s\n", *addr)
	fmt.Println("Listing: /pokemon (append ?fail to force an error)")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	srv := &http.Server{
		Addr: *addr,
		Handler: mockapi.Handler(mockapi.Options{
			MinLatency: 300 * time.Millisecond,
			MaxLatency: 1200 * time.Millisecond,
			Fail:       *fail,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
