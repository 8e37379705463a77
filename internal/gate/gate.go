package gate

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/signals"
)

// #region gate
// Gate folds per-snapshot evidence and the full-history match into trust.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Config returns the gate's weights and thresholds.
func (g *Gate) Config() GateConfig { return g.config }

// Evaluate applies one step to prior. Positive evidence earns the reward, anything else
// pays the penalty; trust stays in [0, 1]. A full-history signature match then forces
// trust to exactly 1. The motif is derived from the stepped trust, so the step that
// completes a signature still carries the label it earned on its own.
func (g *Gate) Evaluate(prior float64, ev signals.Evidence, protocolMatched bool) GateDecision {
	d := GateDecision{Prior: prior}

	if ev.Positive() {
		d.Step = math.Min(1, prior+g.config.Reward)
		d.Action = ActionReward
		d.Reason = fmt.Sprintf("positive evidence: %s", describe(ev))
	} else {
		d.Step = math.Max(0, prior-g.config.Penalty)
		d.Action = ActionPenalize
		d.Reason = fmt.Sprintf("no family, angle %.2f° unlocked", ev.Angle)
	}

	d.Trust = d.Step
	if protocolMatched {
		d.Trust = 1
		d.Action = ActionOverride
		d.Reason = "signature matched across history"
	}

	d.Motif = g.Motif(d.Step, ev)
	return d
}

// #endregion gate

// #region motif
// Motif labels a trust level. In the locked tier a named family wins, then the 90° and
// 120° sync labels, then the generic relational label.
func (g *Gate) Motif(trust float64, ev signals.Evidence) string {
	switch {
	case trust > g.config.LockThreshold:
		switch {
		case ev.Named():
			return ev.Family + VerifiedSuffix
		case math.Abs(ev.Angle-90) < g.config.AngleTolerance:
			return MotifOrthogonal
		case math.Abs(ev.Angle-120) < g.config.AngleTolerance:
			return MotifDecagonal
		default:
			return MotifRelational
		}
	case trust > g.config.EmergeThreshold:
		return MotifEmergent
	default:
		return MotifBaseline
	}
}

// #endregion motif

// #region helpers
func describe(ev signals.Evidence) string {
	if ev.Named() {
		return ev.Family
	}
	return fmt.Sprintf("phase lock %.0f°", ev.LockAngle)
}

// #endregion helpers
