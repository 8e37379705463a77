package probe

import (
	"cmp"
	"slices"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region distribution

// Distribution counts classifier labels.
type Distribution struct {
	Counts map[string]int
	Total  int
}

// NewDistribution returns an empty distribution.
func NewDistribution() Distribution { return Distribution{Counts: map[string]int{}} }

// Add counts one label.
func (d *Distribution) Add(label string) {
	d.Counts[label]++
	d.Total++
}

// Merge adds every count of other into d.
func (d *Distribution) Merge(other Distribution) {
	for k, v := range other.Counts {
		d.Counts[k] += v
	}
	d.Total += other.Total
}

// Rank is one row of a ranked distribution.
type Rank struct {
	Label string
	Count int
	Share float64 // in [0, 1]
}

// Ranked returns labels by descending count, ties by name.
func (d Distribution) Ranked() []Rank {
	out := make([]Rank, 0, len(d.Counts))
	for label, n := range d.Counts {
		r := Rank{Label: label, Count: n}
		if d.Total > 0 {
			r.Share = float64(n) / float64(d.Total)
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Rank) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// #endregion distribution

// #region survey

// SurveyConfig sizes the three survey phases.
type SurveyConfig struct {
	Random     int
	Structured int
	Targeted   int
	Jitter     float64
	Strict     [2]float64 // length, angle
	Loose      [2]float64 // length, angle
}

// DefaultSurveyConfig returns 50 random, 100 structured and 100 targeted draws.
func DefaultSurveyConfig() SurveyConfig {
	return SurveyConfig{
		Random:     50,
		Structured: 100,
		Targeted:   100,
		Jitter:     0.001,
		Strict:     [2]float64{1e-7, 0.1},
		Loose:      [2]float64{0.01, 5.0},
	}
}

// SurveyReport holds per-phase distributions and the families never observed.
type SurveyReport struct {
	Random     Distribution
	Structured Distribution
	Strict     Distribution
	Loose      Distribution
	Overall    Distribution // random + structured + loose
	Missing    []string     // catalog order
	Generated  int          // targeted draws seeded from a generated basis
}

// RunSurvey classifies random, structured and jittered targeted sets. Random and
// structured draws use the analyzer's default tolerances (lengthTol, angleTol).
// Targeted draws start from the family basis produced by bases when the family is
// invertible, else from the hand-built target, else from noise. bases may be nil.
func RunSurvey(a assembler.Analyzer, src *Source, bases generator.Source, cfg SurveyConfig, lengthTol, angleTol float64) SurveyReport {
	r := SurveyReport{
		Random:     NewDistribution(),
		Structured: NewDistribution(),
		Strict:     NewDistribution(),
		Loose:      NewDistribution(),
		Overall:    NewDistribution(),
	}

	for i := 0; i < cfg.Random; i++ {
		r.Random.Add(a.AnalyzeSet(src.Random(), lengthTol, angleTol).Category)
	}
	for i := 0; i < cfg.Structured; i++ {
		set, _ := Structured(src.Intn(StructuredLevels))
		r.Structured.Add(a.AnalyzeSet(set, lengthTol, angleTol).Category)
	}

	defs := catalog.Definitions()
	for i := 0; i < cfg.Targeted; i++ {
		set, generated := target(bases, defs[src.Intn(len(defs))], src)
		if generated {
			r.Generated++
		}
		set = src.Jitter(set, cfg.Jitter)
		r.Strict.Add(a.AnalyzeSet(set, cfg.Strict[0], cfg.Strict[1]).Category)
		r.Loose.Add(a.AnalyzeSet(set, cfg.Loose[0], cfg.Loose[1]).Category)
	}

	r.Overall.Merge(r.Random)
	r.Overall.Merge(r.Structured)
	r.Overall.Merge(r.Loose)
	for _, def := range defs {
		if r.Overall.Counts[def.Name] == 0 {
			r.Missing = append(r.Missing, def.Name)
		}
	}
	return r
}

func target(bases generator.Source, def catalog.Definition, src *Source) (geometry.Set, bool) {
	if bases != nil && def.Invertible() {
		if set, err := bases.Generate(def.ID); err == nil {
			return set, true
		}
	}
	if set, ok := Targeted(def.Name); ok {
		return set, false
	}
	return src.Random(), false
}

// #endregion survey
