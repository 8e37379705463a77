// Package catalog is the fixed, priority-ordered table of the 23 lattice families.
//
// Each family pairs an edge-equality pattern with an angle pattern. Entries are
// ordered from the most specific family (id 23, Hypercubic) to the least specific
// (id 1, Hexaclinic); the first entry whose predicate holds wins, so symmetric
// refinements are never shadowed by the general families they refine.
package catalog

import "github.com/danielpatrickdp/lattice-stage/internal/geometry"

// #region lookup

// Definitions returns the catalog in priority order. The slice is a copy.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Unclassified describes the sentinel category. It has no predicate and no
// generation parameters.
func Unclassified() Definition {
	return Definition{ID: UnclassifiedID, Name: UnclassifiedName, Edges: "indep.", Angles: "indep."}
}

// Describe returns the definition for id, or the sentinel when id names no family.
func Describe(id int) Definition {
	if d, ok := Lookup(id); ok {
		return d
	}
	return Unclassified()
}

// Lookup returns the definition with the given id.
func Lookup(id int) (Definition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// ByName returns the definition with the given name.
func ByName(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Names lists family names in priority order.
func Names() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.Name
	}
	return names
}

// #endregion lookup

// #region match

// Match evaluates predicates from id 23 down to id 1 and returns the first family that
// holds. ok is false when no family matches.
func Match(m geometry.Metrics, s SymmetryMap) (def Definition, ok bool) {
	for _, d := range definitions {
		if d.Check(m.Lengths, m.Angles, s) {
			return d, true
		}
	}
	return Definition{}, false
}

// #endregion match
