package verifier

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// snapFloor keeps normalized components away from zero.
const snapFloor = 0.01

// Normalize maps v from [min, max] onto [-1, 1], clamping out-of-range input. Results
// within 0.01 of zero become +0.01 whatever their sign. max must differ from min.
func Normalize(v, min, max float64) float64 {
	n := geometry.Clamp(2*(v-min)/(max-min)-1, -1, 1)
	if math.Abs(n) < snapFloor {
		return snapFloor
	}
	return n
}

// Angle is the angle between a and b in degrees; 90 when either is zero.
func Angle(a, b geometry.Vector4) float64 { return geometry.AngleBetween(a, b) }

// NormalizeSet normalizes every component of raw with its range.
func NormalizeSet(raw geometry.Set, ranges []Range) (geometry.Set, error) {
	if err := validateRanges(ranges); err != nil {
		return geometry.Set{}, err
	}
	var out geometry.Set
	for p, point := range raw {
		for i, v := range point {
			out[p][i] = Normalize(v, ranges[i].Min, ranges[i].Max)
		}
	}
	return out, nil
}

func validateRanges(ranges []Range) error {
	if len(ranges) != 4 {
		return fmt.Errorf("%w: want 4 component ranges, got %d", ErrShape, len(ranges))
	}
	for i, r := range ranges {
		if r.Max == r.Min || math.IsNaN(r.Min) || math.IsNaN(r.Max) {
			return fmt.Errorf("%w: component %d range [%v, %v] has no width", ErrShape, i, r.Min, r.Max)
		}
	}
	return nil
}
