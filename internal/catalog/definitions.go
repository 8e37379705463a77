package catalog

import "github.com/danielpatrickdp/lattice-stage/internal/geometry"

// #region helpers

var cos = geometry.CosDeg

func fixed(edges [4]float64, a geometry.Angles) *GenParams {
	return &GenParams{Edges: edges, Angles: AngleSpec{Rule: RuleFixed, Values: a}}
}

func ruled(edges [4]float64, rule AngleRule, free geometry.Angles) *GenParams {
	return &GenParams{Edges: edges, Angles: AngleSpec{Rule: rule, Values: free}}
}

// angles builds an Angles value in α, β, γ, δ, ε, ζ order.
func angles(alpha, beta, gamma, delta, epsilon, zeta float64) geometry.Angles {
	return geometry.Angles{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta, Epsilon: epsilon, Zeta: zeta}
}

// distinctABD is the a≠b=c≠d edge pattern.
func distinctABD(l geometry.Lengths, s SymmetryMap) bool {
	return !s.Eq(l.A, l.B) && s.BCEq && !s.Eq(l.C, l.D)
}

// pairedADBC is the a=d ≠ b=c edge pattern.
func pairedADBC(l geometry.Lengths, s SymmetryMap) bool {
	return s.ADEq && s.BCEq && !s.Eq(l.A, l.B)
}

// outer90 reports β=γ=δ=ε=90, i.e. every angle except α and ζ is right.
func outer90(a geometry.Angles, s SymmetryMap) bool {
	return s.Is90(a.Beta) && s.Is90(a.Gamma) && s.Is90(a.Delta) && s.Is90(a.Epsilon)
}

// #endregion helpers

// #region table

// definitions is the priority-ordered table, most specific family first.
// Families 1–4 (all edges distinct with free non-right angles) and 11 are classify-only.
var definitions = []Definition{
	{
		ID: 23, Name: "Hypercubic",
		Edges: "a=b=c=d", Angles: "all 90°",
		Gen: fixed([4]float64{1, 1, 1, 1}, geometry.AllAngles(90)),
		Check: func(_ geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.All90
		},
	},
	{
		ID: 22, Name: "Icosagonal",
		Edges: "a=b=c=d", Angles: "all eq, cos α = -1/4",
		Gen: ruled([4]float64{1, 1, 1, 1}, RuleIcosagonal, geometry.AllAngles(90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.AllEq && s.Eq(cos(a.Alpha), -0.25)
		},
	},
	{
		ID: 21, Name: "Diisohexagonal orthogonal",
		Edges: "a=b=c=d", Angles: "α=ζ=120°, others 90°",
		Gen: fixed([4]float64{1, 1, 1, 1}, angles(120, 90, 90, 90, 90, 120)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.Is120(a.Alpha) && s.Is120(a.Zeta) && outer90(a, s)
		},
	},
	{
		ID: 20, Name: "Dodecagonal",
		Edges: "a=b=c=d", Angles: "α=ζ=90°, β=ε=120°, γ=δ≠90°",
		Gen: fixed([4]float64{1, 1, 1, 1}, angles(90, 120, 80, 80, 120, 90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.Is90(a.Alpha) && s.Is90(a.Zeta) && s.Is120(a.Beta) && s.Is120(a.Epsilon) &&
				s.Ang(a.Gamma, a.Delta) && !s.Is90(a.Gamma)
		},
	},
	{
		ID: 19, Name: "Decagonal",
		Edges: "a=b=c=d", Angles: "α=γ=ζ, β=δ=ε, cos β = -0.5 - cos α",
		Gen: ruled([4]float64{1, 1, 1, 1}, RuleDecagonal, angles(144, 90, 90, 90, 90, 90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.Ang(a.Alpha, a.Gamma) && s.Ang(a.Gamma, a.Zeta) &&
				s.Ang(a.Beta, a.Delta) && s.Ang(a.Delta, a.Epsilon) && s.Eq(cos(a.Beta), -0.5-cos(a.Alpha))
		},
	},
	{
		ID: 18, Name: "Octagonal",
		Edges: "a=b=c=d", Angles: "α=γ=ζ≠90°, β=ε=90°, δ=180-α",
		Gen: fixed([4]float64{1, 1, 1, 1}, angles(45, 90, 45, 135, 90, 45)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesEq && s.Ang(a.Alpha, a.Gamma) && s.Ang(a.Gamma, a.Zeta) && !s.Is90(a.Alpha) &&
				s.Is90(a.Beta) && s.Is90(a.Epsilon) && s.Ang(a.Delta, 180-a.Alpha)
		},
	},
	{
		ID: 17, Name: "Cubic orthogonal",
		Edges: "a=b=c ≠ d", Angles: "all 90°",
		Gen: fixed([4]float64{1, 1, 1, 2}, geometry.AllAngles(90)),
		Check: func(l geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return s.ABCEq && !s.Eq(l.C, l.D) && s.All90
		},
	},
	{
		ID: 16, Name: "Dihexagonal orthogonal",
		Edges: "a=d ≠ b=c", Angles: "α=ζ=120°, others 90°",
		Gen: fixed([4]float64{1, 2, 2, 1}, angles(120, 90, 90, 90, 90, 120)),
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return pairedADBC(l, s) && s.Is120(a.Alpha) && s.Is120(a.Zeta) && outer90(a, s)
		},
	},
	{
		ID: 15, Name: "Hexagonal tetragonal",
		Edges: "a=d ≠ b=c", Angles: "all 90°, ζ=120°",
		Gen: fixed([4]float64{1, 2, 2, 1}, angles(90, 90, 90, 90, 90, 120)),
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return pairedADBC(l, s) && s.Is120(a.Zeta) && s.Is90(a.Alpha) && outer90(a, s)
		},
	},
	{
		ID: 14, Name: "Ditetragonal orthogonal",
		Edges: "a=d ≠ b=c", Angles: "all 90°",
		Gen: fixed([4]float64{1, 2, 2, 1}, geometry.AllAngles(90)),
		Check: func(l geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return pairedADBC(l, s) && s.All90
		},
	},
	{
		ID: 13, Name: "Ditrigonal monoclinic",
		Edges: "a=d ≠ b=c", Angles: "α=ζ=120°, β=ε, γ=δ, cos γ = -0.5 cosβ",
		Gen: ruled([4]float64{1, 2, 2, 1}, RuleDitrigonalMonoclinic, angles(90, 60, 90, 90, 90, 90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.ADEq && s.BCEq && s.Is120(a.Alpha) && s.Is120(a.Zeta) && s.Ang(a.Beta, a.Epsilon) &&
				s.Ang(a.Gamma, a.Delta) && s.Eq(cos(a.Gamma), -0.5*cos(a.Beta)) && !s.Is90(a.Beta) && !s.Is90(a.Gamma)
		},
	},
	{
		ID: 12, Name: "Ditetragonal monoclinic",
		Edges: "a=d ≠ b=c", Angles: "α=γ=δ=ζ=90°, β=ε≠90°",
		Gen: fixed([4]float64{1, 2, 2, 1}, angles(90, 45, 90, 90, 45, 90)),
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return pairedADBC(l, s) && s.Is90(a.Alpha) && s.Is90(a.Gamma) && s.Is90(a.Delta) && s.Is90(a.Zeta) &&
				s.Ang(a.Beta, a.Epsilon) && !s.Is90(a.Beta)
		},
	},
	{
		ID: 11, Name: "Hexagonal orthogonal",
		Edges: "a≠b=c≠d", Angles: "ζ=120°, others 90°",
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return distinctABD(l, s) && s.Is120(a.Zeta) && s.Is90(a.Alpha) && outer90(a, s)
		},
	},
	{
		ID: 10, Name: "Tetragonal orthogonal",
		Edges: "a≠b=c≠d", Angles: "all 90°",
		Gen: fixed([4]float64{1, 2, 2, 3}, geometry.AllAngles(90)),
		Check: func(l geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return distinctABD(l, s) && s.All90
		},
	},
	{
		ID: 9, Name: "Ditrigonal diclinic",
		Edges: "a=d ≠ b=c", Angles: "α=ζ=120°, β=ε≠90°, cos δ = cos β - cos γ",
		Gen: ruled([4]float64{1, 2, 2, 1}, RuleDitrigonalDiclinic, angles(90, 75, 100, 90, 90, 90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.ADEq && s.BCEq && s.Is120(a.Alpha) && s.Is120(a.Zeta) && s.Ang(a.Beta, a.Epsilon) &&
				!s.Ang(a.Gamma, a.Delta) && !s.Is90(a.Gamma) && !s.Is90(a.Beta) && !s.Is90(a.Delta) &&
				s.Eq(cos(a.Delta), cos(a.Beta)-cos(a.Gamma))
		},
	},
	{
		ID: 8, Name: "Ditetragonal diclinic",
		Edges: "a=d ≠ b=c", Angles: "α=ζ=90°, β=ε≠90°, γ≠90°, δ=180°−γ",
		Gen: fixed([4]float64{1, 2, 2, 1}, angles(90, 75, 60, 120, 75, 90)),
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.ADEq && s.BCEq && s.Is90(a.Alpha) && s.Is90(a.Zeta) && s.Ang(a.Beta, a.Epsilon) &&
				!s.Is90(a.Beta) && !s.Is90(a.Gamma) && s.Ang(a.Delta, 180-a.Gamma)
		},
	},
	{
		ID: 7, Name: "Hexagonal monoclinic",
		Edges: "a≠b=c≠d", Angles: "α≠90°, ζ=120°, others 90°",
		Gen: fixed([4]float64{1, 2, 2, 3}, angles(75, 90, 90, 90, 90, 120)),
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return distinctABD(l, s) && !s.Is90(a.Alpha) && s.Is120(a.Zeta) && outer90(a, s)
		},
	},
	{
		ID: 6, Name: "Tetragonal monoclinic",
		Edges: "a≠b=c≠d", Angles: "α≠90°, others 90°",
		Gen: fixed([4]float64{1, 2, 2, 3}, angles(75, 90, 90, 90, 90, 90)),
		Check: func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return distinctABD(l, s) && !s.Is90(a.Alpha) && outer90(a, s) && s.Is90(a.Zeta)
		},
	},
	{
		ID: 5, Name: "Orthogonal",
		Edges: "a≠b≠c≠d", Angles: "all 90°",
		Gen: fixed([4]float64{1, 2, 3, 4}, geometry.AllAngles(90)),
		Check: func(_ geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesDiff && s.All90
		},
	},
	{
		ID: 4, Name: "Monoclinic",
		Edges: "a≠b≠c≠d", Angles: "α≠90°, others 90°",
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesDiff && !s.Is90(a.Alpha) && outer90(a, s) && s.Is90(a.Zeta)
		},
	},
	{
		ID: 3, Name: "Diclinic",
		Edges: "a≠b≠c≠d", Angles: "α≠90°, ζ≠90°, others 90°",
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesDiff && !s.Is90(a.Alpha) && !s.Is90(a.Zeta) && outer90(a, s)
		},
	},
	{
		ID: 2, Name: "Triclinic",
		Edges: "a≠b≠c≠d", Angles: "α≠β≠γ≠90°, δ=ε=ζ=90°",
		Check: func(_ geometry.Lengths, a geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesDiff && !s.Is90(a.Alpha) && !s.Is90(a.Beta) && !s.Is90(a.Gamma) &&
				s.Is90(a.Delta) && s.Is90(a.Epsilon) && s.Is90(a.Zeta)
		},
	},
	{
		ID: 1, Name: "Hexaclinic",
		Edges: "a≠b≠c≠d", Angles: "all ≠ 90°, none eq",
		Check: func(_ geometry.Lengths, _ geometry.Angles, s SymmetryMap) bool {
			return s.AllEdgesDiff && s.None90 && !s.AllEq
		},
	},
}

// #endregion table
