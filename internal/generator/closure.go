package generator

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// icosagonalDeg is arccos(-1/4), the angle between any two edges of a regular 4-simplex.
var icosagonalDeg = geometry.Degrees(math.Acos(-0.25))

// #region lengths

// ResolveLengths turns integer edge ratios into concrete lengths.
func ResolveLengths(p catalog.GenParams) geometry.Lengths {
	return geometry.Lengths{A: p.Edges[0], B: p.Edges[1], C: p.Edges[2], D: p.Edges[3]}
}

// #endregion lengths

// #region angles

// ResolveAngles applies a family's closure rule to its free angle parameters.
// A derived cosine outside [-1, 1] is ErrGeometry.
func ResolveAngles(spec catalog.AngleSpec) (geometry.Angles, error) {
	free := spec.Values
	switch spec.Rule {
	case catalog.RuleFixed, "":
		return free, nil

	case catalog.RuleIcosagonal:
		return geometry.AllAngles(icosagonalDeg), nil

	case catalog.RuleDecagonal:
		cb := -0.5 - geometry.CosDeg(free.Alpha)
		if math.Abs(cb) > 1 {
			return geometry.Angles{}, fmt.Errorf("%w: decagonal closure cos β = %.4f for α = %v", ErrGeometry, cb, free.Alpha)
		}
		beta := geometry.Degrees(math.Acos(cb))
		return geometry.Angles{
			Alpha: free.Alpha, Gamma: free.Alpha, Zeta: free.Alpha,
			Beta: beta, Delta: beta, Epsilon: beta,
		}, nil

	case catalog.RuleDitrigonalMonoclinic:
		// |0.5·cos β| never exceeds 1.
		gamma := geometry.Degrees(math.Acos(-0.5 * geometry.CosDeg(free.Beta)))
		return geometry.Angles{
			Alpha: 120, Zeta: 120,
			Beta: free.Beta, Epsilon: free.Beta,
			Gamma: gamma, Delta: gamma,
		}, nil

	case catalog.RuleDitrigonalDiclinic:
		cd := geometry.CosDeg(free.Beta) - geometry.CosDeg(free.Gamma)
		if math.Abs(cd) > 1 {
			return geometry.Angles{}, fmt.Errorf("%w: ditrigonal diclinic closure cos δ = %.4f for β = %v, γ = %v",
				ErrGeometry, cd, free.Beta, free.Gamma)
		}
		return geometry.Angles{
			Alpha: 120, Zeta: 120,
			Beta: free.Beta, Epsilon: free.Beta,
			Gamma: free.Gamma,
			Delta: geometry.Degrees(math.Acos(cd)),
		}, nil
	}
	return geometry.Angles{}, fmt.Errorf("%w: unknown angle rule %q", ErrConfiguration, spec.Rule)
}

// #endregion angles
