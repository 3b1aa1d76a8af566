// Package lifecycle tracks the one-shot load of the creature list.
//
// This package is internal to pokedex. A [Controller] starts in
// [PhaseLoading] and makes exactly one forward transition, to [PhaseReady]
// with the fetched creatures or to [PhaseFailed] with a fixed user-facing
// message. Both are terminal: there is no refetch.
//
// The main components are:
//
//   - [State]: the phase plus its payload (message or creatures)
//   - [Fetcher]: the dependency that produces the creature list
//   - [Controller]: runs the fetch once and publishes the settled state
//   - [Source]: read-side interface consumed by the HTTP server
//
// Subscribers receive the settled state exactly once, via buffered channels,
// including when they subscribe after settlement.
package lifecycle
