// Package explorer derives the views shown by the pokedex page from the
// fetched creature list and the current filter.
//
// Everything in this package is a pure function of its inputs: the filtered
// list and the set of distinct types are recomputed on every request rather
// than stored, so they can never drift from the underlying data.
//
// The main components are:
//
//   - [Creature]: one fetched record (id, name, ordered type tags)
//   - [Filter]: search text plus an optional selected type
//   - [FilterCreatures]: the subsequence of creatures matching a filter
//   - [Categories]: distinct type names in first-occurrence order
//   - [Derive]: both outputs bundled as a [View]
package explorer
