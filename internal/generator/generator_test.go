package generator

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

type outcomeRecorder struct {
	ok, failed []int
}

func (r *outcomeRecorder) ObserveGeneration(id int, err error) {
	if err != nil {
		r.failed = append(r.failed, id)
		return
	}
	r.ok = append(r.ok, id)
}

func newGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(catalog.Lookup, opts...)
	require.NoError(t, err)
	return g
}

func TestNew_RequiresCatalog(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGenerate_RoundTrip(t *testing.T) {
	g := newGenerator(t)
	c := classifier.New(classifier.DefaultConfig())

	for _, def := range catalog.Definitions() {
		if !def.Invertible() {
			continue
		}
		t.Run(def.Name, func(t *testing.T) {
			set, err := g.Generate(def.ID)
			require.NoError(t, err)
			for _, row := range set {
				for _, v := range row {
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite entry in %v", set)
				}
			}
			res := c.AnalyzeSet(set, 1e-3, 1e-3)
			assert.Equal(t, def.ID, res.CategoryID, "classified as %q", res.Category)
		})
	}
}

func TestGenerate_CubicOrthogonal(t *testing.T) {
	set, err := newGenerator(t).Generate(17)
	require.NoError(t, err)

	want := [4]float64{1, 1, 1, 2}
	for i := 0; i < 4; i++ {
		assert.InDelta(t, want[i], geometry.Magnitude(set[i]), 1e-6)
		for j := i + 1; j < 4; j++ {
			assert.InDelta(t, 90, geometry.AngleBetween(set[i], set[j]), 1e-6, "pair (%d,%d)", i, j)
		}
	}
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	rec := &outcomeRecorder{}
	g := newGenerator(t, WithRecorder(rec))

	for _, id := range []int{0, 24, -3, 1, 4, 11} {
		_, err := g.Generate(id)
		assert.ErrorIs(t, err, ErrConfiguration, "id %d", id)
		assert.False(t, errors.Is(err, ErrGeometry))
	}
	assert.Len(t, rec.failed, 6)
	assert.Empty(t, rec.ok)
}

func TestGenerate_PropagatesGeometryError(t *testing.T) {
	impossible := func(id int) (catalog.Definition, bool) {
		return catalog.Definition{
			ID: id, Name: "impossible",
			Gen: &catalog.GenParams{
				Edges:  [4]float64{1, 1, 1, 1},
				Angles: catalog.AngleSpec{Rule: catalog.RuleDecagonal, Values: geometry.AllAngles(30)},
			},
		}, true
	}
	g, err := New(impossible)
	require.NoError(t, err)

	_, err = g.Generate(19)
	assert.ErrorIs(t, err, ErrGeometry)
}

func TestResolveAngles_Rules(t *testing.T) {
	ico, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleIcosagonal})
	require.NoError(t, err)
	for _, v := range ico.Slice() {
		assert.InDelta(t, -0.25, geometry.CosDeg(v), 1e-12)
	}

	dec, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDecagonal, Values: geometry.Angles{Alpha: 144}})
	require.NoError(t, err)
	assert.Equal(t, 144.0, dec.Gamma)
	assert.Equal(t, 144.0, dec.Zeta)
	assert.InDelta(t, 72, dec.Beta, 1e-9)
	assert.Equal(t, dec.Beta, dec.Delta)
	assert.Equal(t, dec.Beta, dec.Epsilon)

	mono, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDitrigonalMonoclinic, Values: geometry.Angles{Beta: 60}})
	require.NoError(t, err)
	assert.Equal(t, geometry.Angles{Alpha: 120, Zeta: 120, Beta: 60, Epsilon: 60, Gamma: mono.Gamma, Delta: mono.Gamma}, mono)
	assert.InDelta(t, -0.25, geometry.CosDeg(mono.Gamma), 1e-12)

	dic, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDitrigonalDiclinic, Values: geometry.Angles{Beta: 75, Gamma: 100}})
	require.NoError(t, err)
	assert.Equal(t, 75.0, dic.Epsilon)
	assert.InDelta(t, geometry.CosDeg(75)-geometry.CosDeg(100), geometry.CosDeg(dic.Delta), 1e-12)
}

func TestResolveAngles_ImpossibleClosures(t *testing.T) {
	_, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDecagonal, Values: geometry.Angles{Alpha: 30}})
	assert.ErrorIs(t, err, ErrGeometry)

	_, err = ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDitrigonalDiclinic, Values: geometry.Angles{Beta: 10, Gamma: 120}})
	assert.ErrorIs(t, err, ErrGeometry)

	_, err = ResolveAngles(catalog.AngleSpec{Rule: "spiral"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGramMatrix_PairMapping(t *testing.T) {
	l := geometry.Lengths{A: 1, B: 2, C: 3, D: 4}
	a := geometry.Angles{Alpha: 10, Beta: 20, Gamma: 30, Delta: 40, Epsilon: 50, Zeta: 60}
	g := GramMatrix(l, a)

	assert.InDelta(t, 1*2*geometry.CosDeg(30), g[0][1], 1e-12, "(a,b) uses γ")
	assert.InDelta(t, 1*3*geometry.CosDeg(20), g[0][2], 1e-12, "(a,c) uses β")
	assert.InDelta(t, 1*4*geometry.CosDeg(40), g[0][3], 1e-12, "(a,d) uses δ")
	assert.InDelta(t, 2*3*geometry.CosDeg(10), g[1][2], 1e-12, "(b,c) uses α")
	assert.InDelta(t, 2*4*geometry.CosDeg(50), g[1][3], 1e-12, "(b,d) uses ε")
	assert.InDelta(t, 3*4*geometry.CosDeg(60), g[2][3], 1e-12, "(c,d) uses ζ")
	assert.Equal(t, g, g.Transpose())
	assert.Equal(t, 16.0, g[3][3])
}

func TestCholesky_NotPositiveSemidefinite(t *testing.T) {
	// a·b and a·c at 30° while b ⟂ c cannot be realized.
	l := geometry.Lengths{A: 1, B: 1, C: 1, D: 1}
	a := geometry.Angles{Gamma: 30, Beta: 30, Alpha: 90, Delta: 90, Epsilon: 90, Zeta: 90}
	_, err := Cholesky(GramMatrix(l, a))
	require.ErrorIs(t, err, ErrGeometry)
	assert.Contains(t, err.Error(), "not positive semidefinite")
}

func TestCholesky_ZeroPivot(t *testing.T) {
	g := Matrix{
		{1, 1, 0, 0},
		{1, 1, 0.5, 0},
		{0, 0.5, 1, 0},
		{0, 0, 0, 1},
	}
	l, err := Cholesky(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l[1][1])
	assert.Equal(t, 0.0, l[2][1], "entries under a zero pivot are zeroed, not divided")
	assert.Equal(t, 1.0, l[2][2])
}

func TestCholesky_ToleratesRoundingNoise(t *testing.T) {
	g := Matrix{{1, 1, 0, 0}, {1, 1 - 1e-12, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	l, err := Cholesky(g)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l[1][1])
}

func TestCholesky_ReconstructsGram(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	component := gen.Float64Range(-1, 1)
	vector := gen.SliceOfN(4, component)

	properties.Property("L·Lᵗ reproduces the Gram matrix of real vectors", prop.ForAll(
		func(a, b, c, d []float64) bool {
			var s geometry.Set
			for i, v := range [][]float64{a, b, c, d} {
				copy(s[i][:], v)
			}
			var g Matrix
			for i := range s {
				for j := range s {
					g[i][j] = geometry.Dot(s[i], s[j])
				}
			}
			l, err := Cholesky(g)
			if err != nil {
				return errors.Is(err, ErrGeometry)
			}
			back := l.Mul(l.Transpose())
			for i := range g {
				for j := range g[i] {
					if math.Abs(back[i][j]-g[i][j]) > 1e-6 {
						return false
					}
				}
			}
			return true
		},
		vector, vector, vector, vector,
	))

	properties.Property("decagonal closure holds wherever it resolves", prop.ForAll(
		func(alpha float64) bool {
			a, err := ResolveAngles(catalog.AngleSpec{Rule: catalog.RuleDecagonal, Values: geometry.Angles{Alpha: alpha}})
			if err != nil {
				return errors.Is(err, ErrGeometry) && alpha <= 60+1e-9
			}
			return math.Abs(geometry.CosDeg(a.Beta)-(-0.5-geometry.CosDeg(alpha))) < 1e-9
		},
		gen.Float64Range(0, 180),
	))

	properties.TestingRun(t)
}

func TestCached_MemoizesSuccesses(t *testing.T) {
	rec := &outcomeRecorder{}
	cached := NewCached(newGenerator(t, WithRecorder(rec)))

	first, err := cached.Generate(23)
	require.NoError(t, err)
	second, err := cached.Generate(23)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{23}, rec.ok, "second call served from cache")
	assert.Equal(t, 1, cached.Len())

	_, err = cached.Generate(11)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, _ = cached.Generate(11)
	assert.Equal(t, []int{11, 11}, rec.failed, "failures are not cached")
	hits, misses := cached.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(3), misses)

	cached.Flush()
	assert.Equal(t, 0, cached.Len())
}
