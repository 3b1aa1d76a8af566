package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jpalmerr/pokedex/internal/explorer"
	"github.com/jpalmerr/pokedex/internal/lifecycle"
)

const (
	// DefaultTitle is used when no custom title is configured.
	DefaultTitle = "Interactive Data Explorer"

	// LoadingText is shown while the creature list is being fetched.
	LoadingText = "Loading..."

	// NoResultsText is the empty-state placeholder.
	NoResultsText = "No Pokémon found"

	// AllTypesLabel labels the selector option that clears the type filter.
	AllTypesLabel = "All types"
)

// PageData is everything the page needs, already computed.
type PageData struct {
	Title   string
	Phase   lifecycle.Phase
	Message string
	View    explorer.View
}

// NewPageData derives the page inputs from a lifecycle snapshot and a filter.
//
// The view is empty unless the state is ready.
func NewPageData(title string, state lifecycle.State, f explorer.Filter) PageData {
	if title == "" {
		title = DefaultTitle
	}
	data := PageData{
		Title:   title,
		Phase:   state.Phase,
		Message: state.Message,
		View:    explorer.View{Filter: f},
	}
	if state.Phase == lifecycle.PhaseReady {
		data.View = explorer.Derive(state.Creatures, f)
	}
	return data
}

// Page renders the full HTML document for the current phase.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`, templ.EscapeString(data.Title), `</title>`,
			`<link rel="stylesheet" href="/assets/app.css">`,
			`<script src="/assets/app.js" defer></script>`,
			`</head><body data-phase="`, data.Phase.String(), `">`)
		if hw.err != nil {
			return hw.err
		}

		var body templ.Component
		switch data.Phase {
		case lifecycle.PhaseLoading:
			body = Loading()
		case lifecycle.PhaseFailed:
			body = Failure(data.Message)
		default:
			body = Results(data.Title, data.View)
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`</body></html>`)
		return hw.err
	})
}

// Loading renders the loading indicator.
func Loading() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="loading" role="status">`, LoadingText, `</div>`)
		return hw.err
	})
}

// Failure renders the fixed error message in place of the results view.
func Failure(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="error" role="alert">`, templ.EscapeString(message), `</div>`)
		return hw.err
	})
}

// Results renders the header, the filter controls and the filtered list.
func Results(title string, view explorer.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="app"><header><h1>`, templ.EscapeString(title), `</h1></header>`,
			`<form class="controls" method="get" action="/">`)
		if hw.err != nil {
			return hw.err
		}
		if err := SearchBar(view.Filter.Search).Render(ctx, w); err != nil {
			return err
		}
		if err := TypeFilter(view.Types, view.Filter.Type).Render(ctx, w); err != nil {
			return err
		}
		hw.raw(`<noscript><button type="submit">Filter</button></noscript></form>`,
			`<div class="pokemon-list">`)
		if hw.err != nil {
			return hw.err
		}

		if view.Empty() {
			if err := NoResults().Render(ctx, w); err != nil {
				return err
			}
		}
		for _, c := range view.Creatures {
			if err := Card(c).Render(ctx, w); err != nil {
				return err
			}
		}

		hw.raw(`</div></div>`)
		return hw.err
	})
}

// SearchBar renders the free-text search input.
func SearchBar(search string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<input class="search" type="search" name="q" placeholder="Search Pokémon..." autocomplete="off" value="`,
			templ.EscapeString(search), `">`)
		return hw.err
	})
}

// TypeFilter renders the type selector with the "all types" sentinel first.
func TypeFilter(types []string, selected string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<select class="type-filter" name="type"><option value=""`)
		if selected == "" {
			hw.raw(` selected`)
		}
		hw.raw(`>`, AllTypesLabel, `</option>`)
		for _, t := range types {
			escaped := templ.EscapeString(t)
			hw.raw(`<option value="`, escaped, `"`)
			if t == selected {
				hw.raw(` selected`)
			}
			hw.raw(`>`, templ.EscapeString(explorer.DisplayName(t)), `</option>`)
		}
		hw.raw(`</select>`)
		return hw.err
	})
}

// Card renders one creature.
func Card(c explorer.Creature) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		id := strconv.Itoa(c.ID)
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="pokemon-card" data-id="`, id, `">`,
			`<span class="pokemon-id">#`, id, `</span>`,
			`<h2>`, templ.EscapeString(explorer.DisplayName(c.Name)), `</h2>`,
			`<ul class="types">`)
		for _, t := range c.Types {
			escaped := templ.EscapeString(t)
			hw.raw(`<li class="type type-`, escaped, `">`, escaped, `</li>`)
		}
		hw.raw(`</ul></div>`)
		return hw.err
	})
}

// NoResults renders the empty-state placeholder.
func NoResults() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="no-results">`, NoResultsText, `</div>`)
		return hw.err
	})
}

// htmlWriter writes raw fragments, keeping the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}
