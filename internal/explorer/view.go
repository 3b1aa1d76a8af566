package explorer

import "strings"

// Filter is the user-controlled filter state.
//
// The zero value matches every creature: an empty Search matches all names
// and an empty Type means no type is selected.
type Filter struct {
	// Search is matched as a case-insensitive substring of the name.
	Search string `json:"search"`

	// Type, when non-empty, must equal one of the creature's tags exactly.
	Type string `json:"type"`
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Type == ""
}

// Matches reports whether c satisfies both the search and the type condition.
//
// Containment is byte-wise on the lower-cased forms; no locale-aware folding
// is applied.
func (f Filter) Matches(c Creature) bool {
	return f.matches(c, strings.ToLower(f.Search))
}

func (f Filter) matches(c Creature, lowerSearch string) bool {
	if lowerSearch != "" && !strings.Contains(strings.ToLower(c.Name), lowerSearch) {
		return false
	}
	if f.Type != "" && !c.HasType(f.Type) {
		return false
	}
	return true
}

// FilterCreatures returns the creatures matching f, preserving their order.
//
// The result is always a fresh, non-nil slice; the input is never modified.
// With a zero filter the result equals creatures element for element.
func FilterCreatures(creatures []Creature, f Filter) []Creature {
	lowerSearch := strings.ToLower(f.Search)

	result := make([]Creature, 0, len(creatures))
	for _, c := range creatures {
		if f.matches(c, lowerSearch) {
			result = append(result, c)
		}
	}
	return result
}

// Categories returns every distinct type name across creatures, each exactly
// once, in order of first occurrence.
func Categories(creatures []Creature) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0)

	for _, c := range creatures {
		for _, t := range c.Types {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			result = append(result, t)
		}
	}
	return result
}

// View bundles the derived outputs for one (creatures, filter) pair.
type View struct {
	// Filter is the filter the view was derived with.
	Filter Filter `json:"filter"`

	// Creatures is the filtered subsequence.
	Creatures []Creature `json:"creatures"`

	// Types is the category set over the full, unfiltered list.
	Types []string `json:"types"`
}

// Empty reports whether no creature matched the filter.
func (v View) Empty() bool {
	return len(v.Creatures) == 0
}

// Derive computes the filtered list and the category set in one call.
func Derive(creatures []Creature, f Filter) View {
	return View{
		Filter:    f,
		Creatures: FilterCreatures(creatures, f),
		Types:     Categories(creatures),
	}
}
