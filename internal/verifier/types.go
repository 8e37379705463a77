package verifier

import (
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/gate"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
	"github.com/danielpatrickdp/lattice-stage/internal/signals"
)

// #region range

// Range is the raw-domain span of one vector component.
type Range struct {
	Min float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max float64 `json:"max" yaml:"max" mapstructure:"max"`
}

// #endregion range

// #region config

// Config holds the per-session tuning.
type Config struct {
	LengthTolerance float64
	AngleTolerance  float64
	InitialTrust    float64
	PhaseLocks      []float64
	Signatures      []assembler.Signature // nil selects assembler.DefaultSignatures
	Gate            gate.GateConfig
}

// DefaultConfig returns the classifier tolerances, trust 0.5 and the default gate.
func DefaultConfig() Config {
	g := gate.DefaultGateConfig()
	g.AngleTolerance = classifier.DefaultAngleTolerance
	return Config{
		LengthTolerance: classifier.DefaultLengthTolerance,
		AngleTolerance:  classifier.DefaultAngleTolerance,
		InitialTrust:    0.5,
		PhaseLocks:      signals.DefaultProducerConfig().PhaseLocks,
		Gate:            g,
	}
}

// #endregion config

// #region audit

// Audit is the result of one AuditSnapshot call.
type Audit struct {
	SessionID   string       `json:"session_id" yaml:"session_id"`
	Step        int          `json:"step" yaml:"step"` // 1-based position in the session history
	Motif       string       `json:"motif" yaml:"motif"`
	Trust       float64      `json:"trust" yaml:"trust"`
	Angle       float64      `json:"angle" yaml:"angle"`
	Protocol    string       `json:"protocol" yaml:"protocol"`
	Family      string       `json:"family" yaml:"family"`
	FamilyID    int          `json:"family_id" yaml:"family_id"`
	PhaseLocked bool         `json:"phase_locked" yaml:"phase_locked"`
	Action      gate.Action  `json:"action" yaml:"action"`
	Entropy     float64      `json:"entropy" yaml:"entropy"`
	Snapshot    geometry.Set `json:"snapshot" yaml:"snapshot"` // normalized
	Time        time.Time    `json:"time" yaml:"time"`
}

// Observer is notified after every audit, in call order.
type Observer interface {
	ObserveAudit(a Audit)
}

// #endregion audit
