package catalog

import (
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region symmetry-map

// SymmetryMap is the set of derived predicates computed once per classification call.
// Length equality uses LengthTol; every angle comparison uses AngleTol. It is never
// reused across tolerance pairs.
type SymmetryMap struct {
	LengthTol float64
	AngleTol  float64

	AllEdgesEq   bool // a=b=c=d
	ABCEq        bool // a=b=c
	BCEq         bool // b=c
	ADEq         bool // a=d
	AllEdgesDiff bool // no two lengths equal
	All90        bool
	AllEq        bool // α≈β≈γ≈δ≈ε≈ζ, checked as a chain
	None90       bool
}

// NewSymmetryMap derives the symmetry flags for l and a at the given tolerances.
func NewSymmetryMap(l geometry.Lengths, a geometry.Angles, lengthTol, angleTol float64) SymmetryMap {
	s := SymmetryMap{LengthTol: lengthTol, AngleTol: angleTol}

	s.AllEdgesEq = s.Eq(l.A, l.B) && s.Eq(l.B, l.C) && s.Eq(l.C, l.D)
	s.ABCEq = s.Eq(l.A, l.B) && s.Eq(l.B, l.C)
	s.BCEq = s.Eq(l.B, l.C)
	s.ADEq = s.Eq(l.A, l.D)
	s.AllEdgesDiff = !s.Eq(l.A, l.B) && !s.Eq(l.A, l.C) && !s.Eq(l.A, l.D) &&
		!s.Eq(l.B, l.C) && !s.Eq(l.B, l.D) && !s.Eq(l.C, l.D)

	vals := a.Slice()
	s.All90, s.None90, s.AllEq = true, true, true
	for i, v := range vals {
		if s.Is90(v) {
			s.None90 = false
		} else {
			s.All90 = false
		}
		if i > 0 && !s.Ang(vals[i-1], v) {
			s.AllEq = false
		}
	}
	return s
}

// #endregion symmetry-map

// #region comparisons

// Eq compares two scalars (lengths or cosines) at the length tolerance.
func (s SymmetryMap) Eq(v1, v2 float64) bool { return math.Abs(v1-v2) < s.LengthTol }

// Ang compares two angles in degrees at the angle tolerance.
func (s SymmetryMap) Ang(a1, a2 float64) bool { return math.Abs(a1-a2) < s.AngleTol }

// Is90 reports whether deg is a right angle within the angle tolerance.
func (s SymmetryMap) Is90(deg float64) bool { return s.Ang(deg, 90) }

// Is120 reports whether deg is 120° within the angle tolerance.
func (s SymmetryMap) Is120(deg float64) bool { return s.Ang(deg, 120) }

// #endregion comparisons
