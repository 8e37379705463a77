package signals

import (
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region analyzer-interface

// Analyzer abstracts the classifier so Producer can be tested with canned labels.
type Analyzer interface {
	AnalyzeSet(s geometry.Set, lengthTol, angleTol float64) classifier.Result
}

// #endregion analyzer-interface

// #region config

// ProducerConfig holds tuning knobs for evidence computation.
type ProducerConfig struct {
	LengthTolerance float64
	AngleTolerance  float64   // also the phase-lock window
	PhaseLocks      []float64 // canonical angles in degrees
}

// DefaultProducerConfig returns the classifier tolerances and the four phase-lock angles.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		LengthTolerance: classifier.DefaultLengthTolerance,
		AngleTolerance:  classifier.DefaultAngleTolerance,
		PhaseLocks:      []float64{72, 90, 104, 120},
	}
}

// #endregion config

// #region evidence

// Evidence is what one normalized snapshot says on its own.
type Evidence struct {
	Family      string  // classifier label of the snapshot
	FamilyID    int     // 0 when unclassified
	Angle       float64 // between the first two vectors, degrees
	PhaseLocked bool
	LockAngle   float64 // nearest canonical angle when PhaseLocked
}

// Named reports whether the snapshot belongs to a catalog family.
func (e Evidence) Named() bool { return e.FamilyID != 0 }

// Positive reports whether the snapshot counts toward trust.
func (e Evidence) Positive() bool { return e.Named() || e.PhaseLocked }

// #endregion evidence
