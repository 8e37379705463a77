package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitudeAndDot(t *testing.T) {
	assert.InDelta(t, 5.0, Magnitude(Vector4{3, 4, 0, 0}), 1e-12)
	assert.InDelta(t, 0.0, Dot(Vector4{1, 0, 0, 0}, Vector4{0, 1, 0, 0}), 1e-12)
	assert.InDelta(t, 11.0, Dot(Vector4{1, 2, 3, 0}, Vector4{0, 1, 3, 7}), 1e-12)
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		v, w Vector4
		want float64
	}{
		{"orthogonal", Vector4{1, 0, 0, 0}, Vector4{0, 2, 0, 0}, 90},
		{"parallel", Vector4{1, 1, 0, 0}, Vector4{2, 2, 0, 0}, 0},
		{"antiparallel", Vector4{1, 0, 0, 0}, Vector4{-3, 0, 0, 0}, 180},
		{"hexagonal", Vector4{1, 0, 0, 0}, Vector4{-0.5, math.Sqrt(3) / 2, 0, 0}, 120},
		{"zero vector", Vector4{}, Vector4{1, 0, 0, 0}, 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngleBetween(tc.v, tc.w)
			require.False(t, math.IsNaN(got))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestAngleBetween_ClampsRoundingOverflow(t *testing.T) {
	// Nearly parallel vectors whose normalized dot product can round past 1.
	v := Vector4{0.1, 0.2, 0.3, 0.4}
	w := Vector4{0.1 * 3, 0.2 * 3, 0.3 * 3, 0.4 * 3}
	got := AngleBetween(v, w)
	require.False(t, math.IsNaN(got))
	assert.InDelta(t, 0, got, 1e-5)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(1.0000001, -1, 1))
	assert.Equal(t, -1.0, Clamp(-1.5, -1, 1))
	assert.Equal(t, 0.25, Clamp(0.25, -1, 1))
	assert.Equal(t, -1.0, Clamp(math.NaN(), -1, 1))
}

func TestMeasure_PairMapping(t *testing.T) {
	a := Vector4{1, 0, 0, 0}
	b := Vector4{0, 1, 0, 0}
	c := Vector4{0, 1, 1, 0}
	d := Vector4{1, 0, 0, 1}
	m := Measure(Set{a, b, c, d})

	assert.InDelta(t, 1, m.Lengths.A, 1e-12)
	assert.InDelta(t, math.Sqrt2, m.Lengths.C, 1e-12)
	assert.InDelta(t, 45, m.Angles.Alpha, 1e-9, "alpha spans b,c")
	assert.InDelta(t, 90, m.Angles.Beta, 1e-9, "beta spans a,c")
	assert.InDelta(t, 90, m.Angles.Gamma, 1e-9, "gamma spans a,b")
	assert.InDelta(t, 45, m.Angles.Delta, 1e-9, "delta spans a,d")
	assert.InDelta(t, 90, m.Angles.Epsilon, 1e-9, "epsilon spans b,d")
	assert.InDelta(t, 90, m.Angles.Zeta, 1e-9, "zeta spans c,d")
}

func TestAnglesBetween_MatchesMeasure(t *testing.T) {
	s := Set{{1, 2, 0, 0}, {0, 1, 3, 0}, {2, 0, 1, 1}, {0, 0, 1, 4}}
	m := Measure(s)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				assert.Equal(t, 0.0, m.Angles.Between(i, j))
				continue
			}
			assert.InDelta(t, AngleBetween(s[i], s[j]), m.Angles.Between(i, j), 1e-12, "pair %d,%d", i, j)
		}
	}
}
