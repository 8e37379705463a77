package assembler

import (
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// UnknownActor is reported when no signature appears in the chain.
const UnknownActor = "Unknown Actor"

// #region signature

// Signature is an actor's expected motif: an ordered run of unqualified family names.
type Signature struct {
	Actor    string   `json:"actor" yaml:"actor" mapstructure:"actor"`
	Sequence []string `json:"sequence" yaml:"sequence" mapstructure:"sequence"`
}

// DefaultSignatures returns the two demonstration motifs.
func DefaultSignatures() []Signature {
	return []Signature{
		{Actor: "PlayerA", Sequence: []string{"Decagonal", "Cubic orthogonal", "Hexagonal tetragonal"}},
		{Actor: "PlayerB", Sequence: []string{"Hypercubic", "Decagonal", "Ditetragonal diclinic"}},
	}
}

// #endregion signature

// #region report

// ChainReport is the result of matching one history against the signature set.
type ChainReport struct {
	Chain     []string  `json:"chain" yaml:"chain"` // raw labels, qualifiers intact
	Protocol  string    `json:"protocol" yaml:"protocol"`
	Entropy   float64   `json:"entropy" yaml:"entropy"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Matched reports whether a known actor was recognized.
func (r ChainReport) Matched() bool { return r.Protocol != UnknownActor }

// #endregion report

// #region analyzer

// Analyzer classifies one vector set. *classifier.Classifier satisfies it.
type Analyzer interface {
	AnalyzeSet(s geometry.Set, lengthTol, angleTol float64) classifier.Result
}

// #endregion analyzer
