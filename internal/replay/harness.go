// Package replay re-runs recorded snapshot streams through a fresh verifier session and
// compares every audit with its expectation.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/lattice-stage/internal/gate"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// trustSlack absorbs float noise when trust bounds are exact recorded values.
const trustSlack = 1e-9

// #region types

// Step is the outcome of replaying one snapshot.
type Step struct {
	Index      int
	Label      string
	Audit      verifier.Audit
	Expect     *Expectation
	Mismatches []string
}

// OK reports whether the audit met its expectation (or had none).
func (s Step) OK() bool { return len(s.Mismatches) == 0 }

// Summary aggregates a replay run.
type Summary struct {
	Total      int
	Checked    int
	Matched    int
	Diverged   int
	Rewards    int
	Penalties  int
	Overrides  int
	FinalTrust float64
	Protocol   string // protocol of the last audit
}

// #endregion types

// #region replay

// Replay audits every fixture snapshot in order on a new session. opts are passed to
// verifier.New (observers, logger, clock). A snapshot the verifier rejects aborts the run.
func Replay(f *Fixture, opts ...verifier.Option) ([]Step, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	v := verifier.New(f.ToConfig(), opts...)

	steps := make([]Step, 0, len(f.Snapshots))
	for i, snap := range f.Snapshots {
		audit, err := v.AuditSnapshot(snap.Raw, f.Ranges)
		if err != nil {
			return steps, fmt.Errorf("snapshot %d: %w", i+1, err)
		}
		label := snap.Label
		if label == "" {
			label = fmt.Sprintf("step-%d", i+1)
		}
		step := Step{Index: i + 1, Label: label, Audit: audit, Expect: snap.Expect}
		if snap.Expect != nil {
			step.Mismatches = Check(audit, *snap.Expect)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Check lists every way a diverges from e.
func Check(a verifier.Audit, e Expectation) []string {
	var out []string
	if e.Motif != "" && a.Motif != e.Motif {
		out = append(out, fmt.Sprintf("motif %q, want %q", a.Motif, e.Motif))
	}
	if e.Protocol != "" && a.Protocol != e.Protocol {
		out = append(out, fmt.Sprintf("protocol %q, want %q", a.Protocol, e.Protocol))
	}
	if e.Action != "" && string(a.Action) != e.Action {
		out = append(out, fmt.Sprintf("action %q, want %q", a.Action, e.Action))
	}
	if e.MinTrust != nil && a.Trust < *e.MinTrust-trustSlack {
		out = append(out, fmt.Sprintf("trust %.4f below %.4f", a.Trust, *e.MinTrust))
	}
	if e.MaxTrust != nil && a.Trust > *e.MaxTrust+trustSlack {
		out = append(out, fmt.Sprintf("trust %.4f above %.4f", a.Trust, *e.MaxTrust))
	}
	return out
}

// Summarize computes aggregate stats from replay steps.
func Summarize(steps []Step) Summary {
	s := Summary{Total: len(steps)}
	for _, st := range steps {
		if st.Expect != nil {
			s.Checked++
			if st.OK() {
				s.Matched++
			} else {
				s.Diverged++
			}
		}
		switch st.Audit.Action {
		case gate.ActionReward:
			s.Rewards++
		case gate.ActionPenalize:
			s.Penalties++
		case gate.ActionOverride:
			s.Overrides++
		}
	}
	if n := len(steps); n > 0 {
		s.FinalTrust = steps[n-1].Audit.Trust
		s.Protocol = steps[n-1].Audit.Protocol
	}
	return s
}

// #endregion replay
