package explorer

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Creature is a single record fetched from the creature service.
//
// Creature values are treated as immutable once fetched. Types keeps the
// order returned by the service; a creature may carry any number of tags.
type Creature struct {
	// ID is the service's unique, stable identifier.
	ID int `json:"id"`

	// Name is the display name, compared case-insensitively when filtering.
	Name string `json:"name"`

	// Types holds the category tag names in service order.
	Types []string `json:"types"`
}

// HasType reports whether any of the creature's tags equals t exactly.
func (c Creature) HasType(t string) bool {
	return slices.Contains(c.Types, t)
}

// DisplayName returns name title-cased for display ("bulbasaur" → "Bulbasaur").
func DisplayName(name string) string {
	// a Caser holds state, so one is built per call rather than shared
	return cases.Title(language.English).String(name)
}
