// Package probe synthesizes vector sets for surveys, chain scenarios and the monitor:
// random noise, fixed structured levels, per-family targets and known keys, with jitter.
package probe

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region source

// Source is a seeded generator of synthetic vector sets. Not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded with seed. Equal seeds give equal streams.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float returns a uniform value in [0, 1).
func (s *Source) Float() float64 { return s.rng.Float64() }

// Intn returns a uniform value in [0, n).
func (s *Source) Intn(n int) int { return s.rng.IntN(n) }

// Random returns a set with every component uniform in [0, 2).
func (s *Source) Random() geometry.Set {
	var out geometry.Set
	for p := range out {
		for i := range out[p] {
			out[p][i] = (s.rng.Float64()-0.5)*2 + 1
		}
	}
	return out
}

// Noise returns a set with every component uniform in [-scale/2, scale/2).
func (s *Source) Noise(scale float64) geometry.Set {
	var out geometry.Set
	for p := range out {
		for i := range out[p] {
			out[p][i] = (s.rng.Float64() - 0.5) * scale
		}
	}
	return out
}

// Jitter perturbs every component of set by a uniform offset in [-amount/2, amount/2).
func (s *Source) Jitter(set geometry.Set, amount float64) geometry.Set {
	for p := range set {
		for i := range set[p] {
			set[p][i] += (s.rng.Float64() - 0.5) * amount
		}
	}
	return set
}

// JitterHistory jitters each set of history into a new slice.
func (s *Source) JitterHistory(history []geometry.Set, amount float64) []geometry.Set {
	out := make([]geometry.Set, len(history))
	for i, set := range history {
		out[i] = s.Jitter(set, amount)
	}
	return out
}

// #endregion source

// #region fixtures

// StructuredLevels is the number of fixed structured sets.
const StructuredLevels = 3

// Structured returns fixed set level (0 all-distinct orthogonal, 1 paired edges,
// 2 a 120° first pair). ok is false for any other level.
func Structured(level int) (geometry.Set, bool) {
	switch level {
	case 0:
		return geometry.Set{{2, 0, 0, 0}, {0, 1.5, 0, 0}, {0, 0, 2.2, 0}, {0, 0, 0, 1.8}}, true
	case 1:
		return geometry.Set{{2, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}, true
	case 2:
		return geometry.Set{{1, 0, 0, 0}, {-0.5, 0.866, 0, 0}, {0, 0, 2, 0}, {0, 0, 0, 1}}, true
	}
	return geometry.Set{}, false
}

// Targeted returns a hand-built set aimed at the named family (case-insensitive).
// ok is false for families without a target.
func Targeted(family string) (geometry.Set, bool) {
	switch strings.ToLower(family) {
	case "hypercubic":
		return identity(), true
	case "decagonal":
		return geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {-0.5, -0.5, -0.5, 0.5}}, true
	case "cubic orthogonal":
		return geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 2}}, true
	case "orthogonal":
		return geometry.Set{{2, 0, 0, 0}, {0, 1.5, 0, 0}, {0, 0, 2.2, 0}, {0, 0, 0, 1.1}}, true
	case "monoclinic":
		return geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0.5, 0.866, 0, 0}, {0, 0, 0, 3}}, true
	case "triclinic":
		return geometry.Set{{1, 0.2, 0.3, 0}, {0.1, 1, 0.2, 0}, {0.3, 0.1, 1, 0}, {0, 0, 0, 1}}, true
	}
	return geometry.Set{}, false
}

var keys = map[string]geometry.Set{
	"orthogonal":            {{5, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 2, 0}, {0, 0, 0, 3}},
	"decagonal":             {{1, 0, 0, 0}, {-0.809, 0.588, 0, 0}, {0.309, -0.951, 0, 0}, {0.309, 0.951, 0, 0}},
	"hexagonal tetragonal":  {{1, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 2, 0}, {0, 0, -0.5, 0.866}},
	"ditetragonal diclinic": {{1, 0, 0, 0}, {1, 1.732, 0, 0}, {0.518, -0.299, 1.909, 0}, {-0.5, 0.588, 0.228, 0.594}},
	"cubic orthogonal":      {{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 2}},
	"hypercubic":            identity(),
}

// Key returns the rounded-coordinate key set for a family used in chain scenarios.
// Keys resolve to their family only at a loose length tolerance (about 1e-3).
func Key(family string) (geometry.Set, bool) {
	k, ok := keys[strings.ToLower(family)]
	return k, ok
}

func identity() geometry.Set {
	return geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// #endregion fixtures

// #region monitor

// MonitorAnchors are the two fixed raw points of every monitor frame.
var MonitorAnchors = [2]geometry.Vector4{{23, 1, 1, 1}, {0, 10, 7, 8}}

// Scanner produces the raw frames of the headless monitor: two moving points followed
// by the two anchors.
type Scanner struct {
	src   *Source
	tick  int
	scanX float64
	width float64
}

// NewScanner creates a scanner over a sweep of the given width.
func NewScanner(src *Source, width float64) *Scanner {
	return &Scanner{src: src, width: width}
}

// Next advances one tick and returns the raw frame.
func (s *Scanner) Next() geometry.Set {
	s.scanX = math.Mod(s.scanX+1.5, s.width)
	hour := float64(s.tick % 24)
	s.tick++

	a := geometry.Vector4{hour, 3 + math.Sin(s.scanX*0.05), 2 + math.Cos(s.scanX*0.05), 2 + s.src.Float()*3}
	b := geometry.Vector4{hour, 2 + s.src.Float()*3, 2 + s.src.Float()*6, 2 + s.src.Float()*7}
	return geometry.Set{a, b, MonitorAnchors[0], MonitorAnchors[1]}
}

// Tick reports how many frames have been produced.
func (s *Scanner) Tick() int { return s.tick }

// #endregion monitor
