// Package api fetches the creature listing from the remote service.
//
// This package is internal to pokedex. It issues a single GET per call to
// [Client.FetchCreatures] and decodes a JSON array of records of the form:
//
//	[{"id": 1, "name": "bulbasaur", "types": [{"slot": 1, "type": {"name": "grass"}}]}]
//
// Every failure (transport, status, decoding) wraps [ErrFetchFailed]. The
// client never retries; the load lifecycle decides what a failure means.
package api
