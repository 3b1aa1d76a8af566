// Package server provides the HTTP server for the pokedex explorer.
//
// This package is internal to pokedex and handles all HTTP concerns:
//
//   - Page serving: renders the explorer at "/" for the request's filter
//   - Static assets: serves the embedded stylesheet and script at "/assets/"
//   - REST API: "/api/creatures" and "/api/types"
//   - Server-Sent Events: "/api/sse" announces when loading settles
//
// Filter state lives in the query string (q, type), so each request carries
// its own and nothing is shared between visitors except the loaded list.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
