package lifecycle

import (
	"context"

	"github.com/jpalmerr/pokedex/internal/explorer"
)

// FailureMessage is the only text shown to users when the load fails.
const FailureMessage = "Failed to fetch Pokémon"

// Phase is the stage of the load lifecycle.
type Phase int

const (
	// PhaseLoading is the initial phase, held until the fetch settles.
	PhaseLoading Phase = iota

	// PhaseFailed is terminal: the fetch failed and no data is available.
	PhaseFailed

	// PhaseReady is terminal: the creature list is available.
	PhaseReady
)

// String returns the lower-case phase name used in logs and JSON.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFailed:
		return "failed"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Settled reports whether p is terminal.
func (p Phase) Settled() bool {
	return p == PhaseFailed || p == PhaseReady
}

// State is a snapshot of the lifecycle.
//
// Message is set only in [PhaseFailed]; Creatures only in [PhaseReady].
// The Creatures slice is shared between snapshots and must not be modified.
type State struct {
	Phase     Phase
	Message   string
	Creatures []explorer.Creature
}

// Fetcher produces the full creature list, or fails.
type Fetcher interface {
	FetchCreatures(ctx context.Context) ([]explorer.Creature, error)
}

// FetcherFunc adapts a plain function to [Fetcher].
type FetcherFunc func(ctx context.Context) ([]explorer.Creature, error)

// FetchCreatures calls f(ctx).
func (f FetcherFunc) FetchCreatures(ctx context.Context) ([]explorer.Creature, error) {
	return f(ctx)
}

// Source is the read side of a [Controller].
//
// Implementations must be safe for concurrent access.
type Source interface {
	// State returns the current snapshot.
	State() State

	// Subscribe returns a channel that receives the settled state once and
	// is then closed. Caller must call Unsubscribe when done.
	Subscribe() <-chan State

	// Unsubscribe removes a subscription. Safe to call more than once.
	Unsubscribe(ch <-chan State)
}
