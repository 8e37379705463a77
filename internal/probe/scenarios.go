package probe

import (
	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// ChainScenario is the outcome of one assembler demonstration.
type ChainScenario struct {
	Name    string
	Report  assembler.ChainReport
	Compare *assembler.ChainReport // observer view, when the scenario compares two tolerances
	Cloaked bool                   // middle label differs between the two views
	Pass    bool
}

// Motif is the three-key history the chain scenarios replay.
var Motif = []string{"Decagonal", "Cubic orthogonal", "Hexagonal tetragonal"}

// RunChainScenarios replays the motif at four tolerance settings: a matching tolerance,
// a strict one that hides the middle step, a loose one that keeps it visible, and pure
// noise that must stay unattributed.
func RunChainScenarios(a *assembler.Assembler, src *Source, angleTol float64) []ChainScenario {
	history := make([]geometry.Set, len(Motif))
	for i, name := range Motif {
		history[i], _ = Key(name)
	}
	soft := src.JitterHistory(history, 0.001)

	match := a.VerifyChain(soft, 0.001, angleTol)

	strict := a.VerifyChain(soft, 1e-7, angleTol)
	observer := a.VerifyChain(soft, 0.1, angleTol)

	visible := a.VerifyChain(soft, 0.2, angleTol)

	noise := make([]geometry.Set, 3)
	for i := range noise {
		noise[i] = src.Noise(5)
	}
	rejected := a.VerifyChain(noise, 0.1, angleTol)

	return []ChainScenario{
		{Name: "high-discernment motif", Report: match, Pass: match.Protocol == "PlayerA"},
		{
			Name: "strict-tolerance bypass", Report: strict, Compare: &observer,
			Cloaked: middle(strict) != middle(observer), Pass: middle(strict) != middle(observer),
		},
		{
			Name: "loose-tolerance visibility", Report: visible, Compare: &observer,
			Cloaked: middle(visible) != middle(observer), Pass: middle(visible) == middle(observer),
		},
		{Name: "informational noise", Report: rejected, Pass: !rejected.Matched()},
	}
}

func middle(r assembler.ChainReport) string {
	if len(r.Chain) < 2 {
		return ""
	}
	return r.Chain[1]
}
