package config

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/jpalmerr/pokedex"
)

func TestBuildOptions_Minimal(t *testing.T) {
	cfg := &Config{
		Port: 8080,
		API:  APIConfig{URL: "https://example.com/pokemon"},
	}

	pd, err := pokedex.New(BuildOptions(cfg, nil)...)
	if err != nil {
		t.Fatalf("pokedex.New() error = %v", err)
	}

	if pd.APIURL() != "https://example.com/pokemon" {
		t.Errorf("APIURL() = %q, want %q", pd.APIURL(), "https://example.com/pokemon")
	}
	if pd.Port() != 8080 {
		t.Errorf("Port() = %d, want 8080", pd.Port())
	}
	// zero timeout leaves the SDK default in place
	if pd.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", pd.Timeout())
	}
}

func TestBuildOptions_AllFields(t *testing.T) {
	cfg := &Config{
		Title: "Kanto Dex",
		Port:  9090,
		API: APIConfig{
			URL:     "https://example.com/pokemon",
			Timeout: Duration(3 * time.Second),
			Headers: map[string]string{"Authorization": "Bearer token"},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pd, err := pokedex.New(BuildOptions(cfg, logger)...)
	if err != nil {
		t.Fatalf("pokedex.New() error = %v", err)
	}

	if pd.Port() != 9090 {
		t.Errorf("Port() = %d, want 9090", pd.Port())
	}
	if pd.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", pd.Timeout())
	}
}

func TestBuildOptions_InvalidConfigSurfacesFromNew(t *testing.T) {
	cfg := &Config{
		Port: 0,
		API:  APIConfig{URL: "https://example.com"},
	}

	if _, err := pokedex.New(BuildOptions(cfg, nil)...); err == nil {
		t.Error("pokedex.New() expected error for port 0, got nil")
	}
}

func TestBuildOptions_FromParsedConfig(t *testing.T) {
	cfg, err := Parse([]byte("port: 9191\napi:\n  url: http://localhost:9999/pokemon\n  timeout: 2s\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	pd, err := pokedex.New(BuildOptions(cfg, nil)...)
	if err != nil {
		t.Fatalf("pokedex.New() error = %v", err)
	}
	if pd.Port() != 9191 || pd.Timeout() != 2*time.Second {
		t.Errorf("Port() = %d, Timeout() = %v, want 9191, 2s", pd.Port(), pd.Timeout())
	}
}

func TestMapToKeyValuePairs(t *testing.T) {
	got := mapToKeyValuePairs(map[string]string{
		"X-B": "2",
		"X-A": "1",
	})
	want := []string{"X-A", "1", "X-B", "2"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("mapToKeyValuePairs() = %v, want %v", got, want)
	}
}
