package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

func TestDefinitions_PriorityOrder(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 23)
	for i, d := range defs {
		assert.Equal(t, 23-i, d.ID, "entry %d (%s) out of priority order", i, d.Name)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Edges)
		assert.NotEmpty(t, d.Angles)
		assert.NotNil(t, d.Check)
	}
	assert.Equal(t, "Hypercubic", defs[0].Name)
	assert.Equal(t, "Hexaclinic", defs[22].Name)
}

func TestDefinitions_ReturnsCopy(t *testing.T) {
	defs := Definitions()
	defs[0].Name = "mutated"
	d, ok := Lookup(23)
	require.True(t, ok)
	assert.Equal(t, "Hypercubic", d.Name)
}

func TestInvertibleFamilies(t *testing.T) {
	var invertible, classifyOnly []int
	for _, d := range Definitions() {
		if d.Invertible() {
			invertible = append(invertible, d.ID)
		} else {
			classifyOnly = append(classifyOnly, d.ID)
		}
	}
	assert.Len(t, invertible, 18)
	assert.ElementsMatch(t, []int{11, 4, 3, 2, 1}, classifyOnly)
}

func TestLookupAndByName(t *testing.T) {
	d, ok := Lookup(17)
	require.True(t, ok)
	assert.Equal(t, "Cubic orthogonal", d.Name)
	assert.Equal(t, [4]float64{1, 1, 1, 2}, d.Gen.Edges)

	_, ok = Lookup(0)
	assert.False(t, ok)
	_, ok = Lookup(24)
	assert.False(t, ok)

	d, ok = ByName("Decagonal")
	require.True(t, ok)
	assert.Equal(t, 19, d.ID)
	assert.Equal(t, RuleDecagonal, d.Gen.Angles.Rule)

	_, ok = ByName(UnclassifiedName)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	d := Describe(17)
	assert.Equal(t, "Cubic orthogonal", d.Name)

	s := Describe(UnclassifiedID)
	assert.Equal(t, UnclassifiedName, s.Name)
	assert.Equal(t, "indep.", s.Edges)
	assert.Equal(t, "indep.", s.Angles)
	assert.Nil(t, s.Check)
	assert.False(t, s.Invertible())
	assert.Equal(t, s, Unclassified())
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, 23)
	assert.Equal(t, "Hypercubic", names[0])
	assert.Contains(t, names, "Ditrigonal diclinic")
}

func TestSymmetryMap_IndependentToleranceAxes(t *testing.T) {
	l := geometry.Lengths{A: 1, B: 1.05, C: 1, D: 1}
	a := geometry.AllAngles(95)

	loose := NewSymmetryMap(l, a, 0.1, 1)
	assert.True(t, loose.AllEdgesEq, "length tolerance 0.1 absorbs 0.05")
	assert.False(t, loose.All90, "angle tolerance 1 does not absorb 5°")
	assert.True(t, loose.None90)

	swapped := NewSymmetryMap(l, a, 0.01, 10)
	assert.False(t, swapped.AllEdgesEq)
	assert.True(t, swapped.All90)
	assert.False(t, swapped.None90)
}

func TestSymmetryMap_Flags(t *testing.T) {
	s := NewSymmetryMap(geometry.Lengths{A: 1, B: 2, C: 3, D: 4}, geometry.Angles{
		Alpha: 10, Beta: 20, Gamma: 30, Delta: 40, Epsilon: 50, Zeta: 60,
	}, 1e-4, 5)
	assert.True(t, s.AllEdgesDiff)
	assert.False(t, s.BCEq)
	assert.False(t, s.AllEq)
	assert.True(t, s.None90)
	assert.True(t, s.Is120(118))
	assert.False(t, s.Is120(126))
}

func TestMatch_SpecificFamilyShadowsGeneral(t *testing.T) {
	// The regular-simplex configuration satisfies both the Icosagonal (22) and the
	// Decagonal (19) predicates: cos β = -1/4 = -0.5 - cos α.
	ico := geometry.Degrees(math.Acos(-0.25))
	m := geometry.Metrics{Lengths: geometry.Lengths{A: 1, B: 1, C: 1, D: 1}, Angles: geometry.AllAngles(ico)}
	s := NewSymmetryMap(m.Lengths, m.Angles, 1e-6, 1e-6)

	decagonal, ok := ByName("Decagonal")
	require.True(t, ok)
	require.True(t, decagonal.Check(m.Lengths, m.Angles, s), "precondition: decagonal predicate holds")

	got, ok := Match(m, s)
	require.True(t, ok)
	assert.Equal(t, 22, got.ID)
}

func TestMatch_NoFamily(t *testing.T) {
	m := geometry.Metrics{
		Lengths: geometry.Lengths{A: 1, B: 1, C: 2, D: 3},
		Angles:  geometry.Angles{Alpha: 30, Beta: 40, Gamma: 50, Delta: 60, Epsilon: 70, Zeta: 80},
	}
	_, ok := Match(m, NewSymmetryMap(m.Lengths, m.Angles, 1e-4, 1))
	assert.False(t, ok)
}
