// Package assembler labels a history of vector sets and looks for known actor motifs in it.
package assembler

import (
	"slices"
	"strings"
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region assembler

// Assembler matches classification chains against an ordered signature set.
// Signatures are fixed at construction; the first one found wins.
type Assembler struct {
	analyzer   Analyzer
	signatures []Signature
	now        func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// New creates an assembler. A nil or empty signature set selects DefaultSignatures.
func New(analyzer Analyzer, signatures []Signature, opts ...Option) *Assembler {
	if len(signatures) == 0 {
		signatures = DefaultSignatures()
	}
	owned := make([]Signature, len(signatures))
	for i, s := range signatures {
		owned[i] = Signature{Actor: s.Actor, Sequence: slices.Clone(s.Sequence)}
	}
	a := &Assembler{analyzer: analyzer, signatures: owned, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Signatures returns a copy of the configured signature set in match order.
func (a *Assembler) Signatures() []Signature {
	out := make([]Signature, len(a.signatures))
	for i, s := range a.signatures {
		out[i] = Signature{Actor: s.Actor, Sequence: slices.Clone(s.Sequence)}
	}
	return out
}

// #endregion assembler

// #region verify

// VerifyChain classifies every set in history and reports the first actor whose
// signature appears as a contiguous window of the cleaned chain.
func (a *Assembler) VerifyChain(history []geometry.Set, lengthTol, angleTol float64) ChainReport {
	raw := make([]string, len(history))
	for i, s := range history {
		raw[i] = a.analyzer.AnalyzeSet(s, lengthTol, angleTol).Category
	}
	return a.verifyLabels(raw)
}

// VerifyLabels matches an already-classified chain.
func (a *Assembler) VerifyLabels(labels []string) ChainReport {
	return a.verifyLabels(slices.Clone(labels))
}

func (a *Assembler) verifyLabels(raw []string) ChainReport {
	clean := make([]string, len(raw))
	for i, l := range raw {
		clean[i] = StripQualifier(l)
	}
	return ChainReport{
		Chain:     raw,
		Protocol:  a.match(clean),
		Entropy:   Entropy(clean),
		Timestamp: a.now().UTC(),
	}
}

func (a *Assembler) match(chain []string) string {
	for _, sig := range a.signatures {
		if containsWindow(chain, sig.Sequence) {
			return sig.Actor
		}
	}
	return UnknownActor
}

// containsWindow reports whether seq occurs in chain as a contiguous run.
// An empty seq never matches.
func containsWindow(chain, seq []string) bool {
	if len(seq) == 0 {
		return false
	}
	for i := 0; i+len(seq) <= len(chain); i++ {
		if slices.Equal(chain[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}

// #endregion verify

// #region labels

// StripQualifier drops a parenthetical suffix: "Decagonal (Verified)" becomes "Decagonal".
func StripQualifier(label string) string {
	before, _, _ := strings.Cut(label, " (")
	return strings.TrimSpace(before)
}

// Entropy is the share of distinct labels in chain, 0 for an empty chain.
func Entropy(chain []string) float64 {
	if len(chain) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(chain))
	for _, l := range chain {
		seen[l] = struct{}{}
	}
	return float64(len(seen)) / float64(len(chain))
}

// #endregion labels
