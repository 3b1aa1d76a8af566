// Package web provides the static assets for the pokedex page.
//
// The stylesheet and script are embedded at compile time so the binary can
// be deployed on its own. The HTML itself is rendered per request by the
// render package; these files are served from "/assets/".
package web

import "embed"

// Assets is an embedded filesystem containing the page's static files.
//
// The filesystem structure is:
//
//	assets/
//	  app.css  - layout and card styles
//	  app.js   - submits filter changes and reloads once loading settles
//
//go:embed assets/*
var Assets embed.FS
