package pokedex

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fixtureJSON = `[
	{"id": 1, "name": "bulbasaur", "types": [{"slot": 1, "type": {"name": "grass", "url": "https://example.com/type/12/"}}]},
	{"id": 4, "name": "charmander", "types": [{"slot": 1, "type": {"name": "fire", "url": "https://example.com/type/10/"}}]},
	{"id": 6, "name": "charizard", "types": [
		{"slot": 1, "type": {"name": "fire", "url": "https://example.com/type/10/"}},
		{"slot": 2, "type": {"name": "flying", "url": "https://example.com/type/3/"}}
	]}
]`

// newCreatureServer serves the fixture list.
func newCreatureServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, fixtureJSON)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// newFailingServer answers every request with 500.
func newFailingServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func names(creatures []Creature) string {
	out := make([]string, len(creatures))
	for i, c := range creatures {
		out[i] = c.Name
	}
	return strings.Join(out, ",")
}

func TestExplore_NoFilterReturnsAll(t *testing.T) {
	ts := newCreatureServer(t)

	pd, err := New(WithAPIURL(ts.URL), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := pd.Explore(context.Background(), Filter{})

	if got.Phase != PhaseReady {
		t.Fatalf("Phase = %q, want %q", got.Phase, PhaseReady)
	}
	if names(got.Creatures) != "bulbasaur,charmander,charizard" {
		t.Errorf("Creatures = %s, want fetch order", names(got.Creatures))
	}
	if strings.Join(got.Types, ",") != "grass,fire,flying" {
		t.Errorf("Types = %v, want [grass fire flying]", got.Types)
	}
	if got.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestExplore_Filters(t *testing.T) {
	ts := newCreatureServer(t)

	pd, err := New(WithAPIURL(ts.URL), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "search", filter: Filter{Search: "char"}, want: "charmander,charizard"},
		{name: "search is case-insensitive", filter: Filter{Search: "BULBA"}, want: "bulbasaur"},
		{name: "type", filter: Filter{Type: "flying"}, want: "charizard"},
		{name: "search and type", filter: Filter{Search: "char", Type: "fire"}, want: "charmander,charizard"},
		{name: "no match", filter: Filter{Type: "water"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pd.Explore(context.Background(), tt.filter)
			if names(got.Creatures) != tt.want {
				t.Errorf("Creatures = %q, want %q", names(got.Creatures), tt.want)
			}
			if got.Filter != tt.filter {
				t.Errorf("Filter = %+v, want %+v", got.Filter, tt.filter)
			}
			if len(got.Types) != 3 {
				t.Errorf("Types = %v, want all three regardless of filter", got.Types)
			}
		})
	}
}

func TestExplore_EmptyResult(t *testing.T) {
	ts := newCreatureServer(t)

	pd, err := New(WithAPIURL(ts.URL), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := pd.Explore(context.Background(), Filter{Search: "zzz"})
	if !got.Empty() {
		t.Errorf("Empty() = false, want true for %+v", got)
	}
	if got.Message != "" {
		t.Errorf("Message = %q, an empty result is not an error", got.Message)
	}
}

func TestExplore_FetchFailure(t *testing.T) {
	ts := newFailingServer(t)

	pd, err := New(WithAPIURL(ts.URL), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := pd.Explore(context.Background(), Filter{})

	if got.Phase != PhaseFailed {
		t.Errorf("Phase = %q, want %q", got.Phase, PhaseFailed)
	}
	if got.Message != FailureMessage {
		t.Errorf("Message = %q, want %q", got.Message, FailureMessage)
	}
	if got.Creatures == nil || len(got.Creatures) != 0 {
		t.Errorf("Creatures = %#v, want empty slice", got.Creatures)
	}
	if got.Empty() {
		t.Error("Empty() = true, a failed load is not an empty view")
	}
}

func TestExplore_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	pd, err := New(
		WithAPIURL(ts.URL),
		WithTimeout(50*time.Millisecond),
		WithLogger(discardLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	start := time.Now()
	got := pd.Explore(context.Background(), Filter{})

	if got.Phase != PhaseFailed {
		t.Errorf("Phase = %q, want %q", got.Phase, PhaseFailed)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Explore() took %v, want the timeout to cut it short", elapsed)
	}
}

func TestExplore_SendsHeaders(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "[]")
	}))
	defer ts.Close()

	pd, err := New(
		WithAPIURL(ts.URL),
		WithHeaders("authorization", "Bearer token"),
		WithLogger(discardLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := pd.Explore(context.Background(), Filter{})
	if got.Phase != PhaseReady {
		t.Fatalf("Phase = %q, want %q", got.Phase, PhaseReady)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token")
	}
}

func TestExplore_ResultDoesNotAlias(t *testing.T) {
	ts := newCreatureServer(t)

	pd, err := New(WithAPIURL(ts.URL), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	first := pd.Explore(context.Background(), Filter{})
	first.Creatures[0].Types[0] = "mutated"

	second := pd.Explore(context.Background(), Filter{})
	if second.Creatures[0].Types[0] != "grass" {
		t.Errorf("Types[0] = %q, want %q", second.Creatures[0].Types[0], "grass")
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseLoading, "loading"},
		{PhaseFailed, "failed"},
		{PhaseReady, "ready"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase.String() = %q, want %q", got, tt.want)
		}
	}
}
