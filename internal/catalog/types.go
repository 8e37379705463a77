package catalog

import "github.com/danielpatrickdp/lattice-stage/internal/geometry"

// #region sentinel

const (
	// UnclassifiedID is the category id reported when no definition matches.
	UnclassifiedID = 0
	// UnclassifiedName is the category name reported when no definition matches.
	UnclassifiedName = "Unclassified configuration"
)

// #endregion sentinel

// #region predicate

// Predicate decides whether measured lengths and angles belong to a family.
type Predicate func(l geometry.Lengths, a geometry.Angles, s SymmetryMap) bool

// #endregion predicate

// #region angle-rule

// AngleRule names how a family's generation angles are resolved.
type AngleRule string

const (
	// RuleFixed takes Values verbatim.
	RuleFixed AngleRule = "fixed"
	// RuleIcosagonal sets all six angles to arccos(-1/4).
	RuleIcosagonal AngleRule = "icosagonal"
	// RuleDecagonal takes Values.Alpha as free; γ=ζ=α and β=δ=ε=arccos(-0.5-cos α).
	RuleDecagonal AngleRule = "decagonal"
	// RuleDitrigonalMonoclinic fixes α=ζ=120, takes Values.Beta as free; ε=β, γ=δ=arccos(-0.5·cos β).
	RuleDitrigonalMonoclinic AngleRule = "ditrigonal_monoclinic"
	// RuleDitrigonalDiclinic fixes α=ζ=120, takes Values.Beta and Values.Gamma as free;
	// ε=β, δ=arccos(cos β - cos γ).
	RuleDitrigonalDiclinic AngleRule = "ditrigonal_diclinic"
)

// AngleSpec is the symbolic angle half of a family's generation parameters.
// Values holds either the full fixed set (RuleFixed) or the free parameters a rule reads;
// unused entries default to 90.
type AngleSpec struct {
	Rule   AngleRule
	Values geometry.Angles
}

// #endregion angle-rule

// #region gen-params

// GenParams are the inverse-generation parameters of a family: integer edge ratios a, b, c, d
// and the symbolic angle specification.
type GenParams struct {
	Edges  [4]float64
	Angles AngleSpec
}

// #endregion gen-params

// #region definition

// Definition is one immutable catalog entry. ID runs 1..23; a higher id is a more
// specific family. Edges and Angles are human-readable descriptions only.
type Definition struct {
	ID     int
	Name   string
	Edges  string
	Angles string
	Gen    *GenParams
	Check  Predicate
}

// Invertible reports whether the family carries generation parameters.
func (d Definition) Invertible() bool { return d.Gen != nil }

// #endregion definition
