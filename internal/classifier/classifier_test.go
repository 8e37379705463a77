package classifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

type countingRecorder struct {
	calls map[string]int
}

func (r *countingRecorder) ObserveClassification(category string, _ int) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[category]++
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 12, 30, 45, 123_000_000, time.UTC)
}

func TestAnalyze_Orthogonal(t *testing.T) {
	c := New(DefaultConfig())
	res := c.AnalyzeDefault(
		geometry.Vector4{5, 0, 0, 0},
		geometry.Vector4{0, 1, 0, 0},
		geometry.Vector4{0, 0, 2, 0},
		geometry.Vector4{0, 0, 0, 3},
	)
	assert.Equal(t, "Orthogonal", res.Category)
	assert.Equal(t, 5, res.CategoryID)
	assert.True(t, res.Classified())
	assert.InDelta(t, 5, res.Metrics.Lengths.A, 1e-12)
	assert.InDelta(t, 90, res.Metrics.Angles.Zeta, 1e-12)
}

func TestAnalyze_Hypercubic(t *testing.T) {
	c := New(DefaultConfig())
	res := c.AnalyzeDefault(
		geometry.Vector4{1, 0, 0, 0},
		geometry.Vector4{0, 1, 0, 0},
		geometry.Vector4{0, 0, 1, 0},
		geometry.Vector4{0, 0, 0, 1},
	)
	assert.Equal(t, "Hypercubic", res.Category)
	assert.Equal(t, 23, res.CategoryID)
}

func TestAnalyze_UnclassifiedIsAValue(t *testing.T) {
	c := New(DefaultConfig())
	res := c.Analyze(
		geometry.Vector4{1, 0.3, 0, 0},
		geometry.Vector4{0.2, 1, 0, 0},
		geometry.Vector4{0, 0.4, 2, 0},
		geometry.Vector4{0.1, 0, 0.5, 3},
		1e-4, 1,
	)
	assert.Equal(t, catalog.UnclassifiedName, res.Category)
	assert.Equal(t, catalog.UnclassifiedID, res.CategoryID)
	assert.False(t, res.Classified())
}

func TestAnalyze_ToleranceDecidesFamily(t *testing.T) {
	// Rounded decagonal coordinates only resolve to the family at a loose length tolerance.
	a := geometry.Vector4{1, 0, 0, 0}
	b := geometry.Vector4{-0.809, 0.588, 0, 0}
	cv := geometry.Vector4{0.309, -0.951, 0, 0}
	d := geometry.Vector4{0.309, 0.951, 0, 0}
	c := New(DefaultConfig())

	assert.Equal(t, catalog.UnclassifiedName, c.Analyze(a, b, cv, d, 1e-4, 15).Category)
	assert.Equal(t, "Decagonal", c.Analyze(a, b, cv, d, 1e-3, 15).Category)
}

func TestAnalyze_StrictLengthToleranceDowngradesFamily(t *testing.T) {
	a := geometry.Vector4{1, 0, 0, 0}
	b := geometry.Vector4{0, 2, 0, 0}
	cv := geometry.Vector4{0, 0, 2, 0}
	d := geometry.Vector4{0, 0, -0.5, 0.866}
	c := New(DefaultConfig())

	assert.Equal(t, "Hexagonal tetragonal", c.Analyze(a, b, cv, d, 1e-3, 15).Category)
	assert.Equal(t, "Hexagonal orthogonal", c.Analyze(a, b, cv, d, 1e-7, 15).Category)
}

func TestAnalyze_RecordsTolerancesAndTrail(t *testing.T) {
	rec := &countingRecorder{}
	c := New(DefaultConfig(), WithClock(fixedClock), WithRecorder(rec))
	unit := geometry.Vector4{1, 0, 0, 0}

	first := c.Analyze(unit, geometry.Vector4{0, 1, 0, 0}, geometry.Vector4{0, 0, 1, 0}, geometry.Vector4{0, 0, 0, 1}, 0.01, 5)
	assert.Equal(t, Tolerances{Length: 0.01, Angle: 5}, first.Tolerances)
	require.Len(t, first.Trail, 1)
	assert.Equal(t, "[12:30:45.123] Analysis with Tol: 0.01, AngTol: 5 -> Result: Hypercubic", first.Trail[0])

	second := c.AnalyzeDefault(unit, unit, unit, unit)
	require.Len(t, second.Trail, 2)
	assert.True(t, strings.HasSuffix(second.Trail[1], "-> Result: "+second.Category))
	assert.Len(t, first.Trail, 1, "earlier snapshot is unaffected by later analyses")
	assert.Len(t, c.Trail(), 2)

	assert.Equal(t, 1, rec.calls["Hypercubic"])
}

func TestAnalyzeSet_MatchesAnalyze(t *testing.T) {
	c := New(DefaultConfig())
	s := geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 2}}
	assert.Equal(t, "Cubic orthogonal", c.AnalyzeSet(s, 1e-4, 15).Category)
}
