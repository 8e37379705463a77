package gate

// #region action
// Action enumerates how a decision moved trust.
type Action string

const (
	ActionReward   Action = "reward"
	ActionPenalize Action = "penalize"
	ActionOverride Action = "override" // full signature match forced trust to 1
)

// #endregion action

// #region motif
// Motif labels, from highest tier down.
const (
	VerifiedSuffix  = " (Verified)"
	MotifOrthogonal = "Orthogonal Sync (90°)"
	MotifDecagonal  = "Decagonal Sync (120°)"
	MotifRelational = "Relational Sync"
	MotifEmergent   = "Emergent Symmetry"
	MotifBaseline   = "Baseline Entropy"
)

// #endregion motif

// #region gate-config
// GateConfig holds the trust update weights and tier thresholds.
type GateConfig struct {
	Reward          float64 // added on positive evidence
	Penalty         float64 // subtracted otherwise
	LockThreshold   float64 // trust above this is the phase-locked tier
	EmergeThreshold float64 // trust above this (and at most LockThreshold) is emergent
	AngleTolerance  float64 // window for the 90°/120° sync labels
}

// DefaultGateConfig returns the reward-biased hysteresis weights.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Reward:          0.2,
		Penalty:         0.18,
		LockThreshold:   0.7,
		EmergeThreshold: 0.5,
		AngleTolerance:  15.0,
	}
}

// #endregion gate-config

// #region gate-decision
// GateDecision is the output of one trust evaluation.
type GateDecision struct {
	Action Action
	Reason string
	Prior  float64 // trust before the step
	Step   float64 // trust after reward/penalty, before any override
	Trust  float64 // final trust
	Motif  string  // label for Step
}

// #endregion gate-decision
