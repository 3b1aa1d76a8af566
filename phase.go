package pokedex

import (
	"time"

	"github.com/jpalmerr/pokedex/internal/explorer"
	"github.com/jpalmerr/pokedex/internal/lifecycle"
)

// Phase is the load state of the creature list.
//
// Phase is a string type holding one of [PhaseLoading], [PhaseFailed] or
// [PhaseReady]. Loading is the initial phase; it moves forward exactly once
// and both other phases are terminal.
type Phase string

const (
	// PhaseLoading indicates the fetch has not completed yet.
	PhaseLoading Phase = "loading"

	// PhaseFailed indicates the fetch failed. The list stays empty.
	PhaseFailed Phase = "failed"

	// PhaseReady indicates the list was fetched and can be explored.
	PhaseReady Phase = "ready"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// FailureMessage is the only error text shown to users when the fetch fails.
const FailureMessage = lifecycle.FailureMessage

// Creature is one record of the fetched list.
type Creature struct {
	ID    int      `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
}

// Filter narrows the list. Search matches a case-insensitive substring of the
// name; Type matches one type name exactly. Empty fields match everything.
type Filter struct {
	Search string `json:"search" yaml:"search"`
	Type   string `json:"type" yaml:"type"`
}

// LoadResult describes how the one-time fetch settled.
//
// LoadResult is passed to callbacks registered with [WithLoadCallback].
// Creatures is a copy; callbacks may keep or modify it freely.
type LoadResult struct {
	// Phase is [PhaseReady] or [PhaseFailed].
	Phase Phase

	// Message is [FailureMessage] when Phase is [PhaseFailed], otherwise empty.
	Message string

	// Creatures holds the fetched list when Phase is [PhaseReady].
	Creatures []Creature

	// Err is the underlying failure, for logging by the caller. Never shown
	// to users.
	Err error

	// URL is the listing endpoint that was fetched.
	URL string

	// Latency is the time from the start of the load to settlement.
	Latency time.Duration

	// LoadedAt is when the load settled.
	LoadedAt time.Time
}

// Result is a filtered view of the list, as returned by [Pokedex.Explore].
type Result struct {
	Phase     Phase      `json:"phase" yaml:"phase"`
	Message   string     `json:"message,omitempty" yaml:"message,omitempty"`
	Filter    Filter     `json:"filter" yaml:"filter"`
	Creatures []Creature `json:"creatures" yaml:"creatures"`
	Types     []string   `json:"types" yaml:"types"`
}

// Empty reports whether a ready result has no creatures left after filtering.
func (r Result) Empty() bool {
	return r.Phase == PhaseReady && len(r.Creatures) == 0
}

func publicPhase(p lifecycle.Phase) Phase {
	switch p {
	case lifecycle.PhaseFailed:
		return PhaseFailed
	case lifecycle.PhaseReady:
		return PhaseReady
	default:
		return PhaseLoading
	}
}

// toPublicCreatures copies internal records so callers cannot alias the
// shared list.
func toPublicCreatures(in []explorer.Creature) []Creature {
	out := make([]Creature, len(in))
	for i, c := range in {
		types := make([]string, len(c.Types))
		copy(types, c.Types)
		out[i] = Creature{ID: c.ID, Name: c.Name, Types: types}
	}
	return out
}

func (f Filter) internal() explorer.Filter {
	return explorer.Filter{Search: f.Search, Type: f.Type}
}
