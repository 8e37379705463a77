package signals

import (
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region producer

// Producer computes per-snapshot evidence.
type Producer struct {
	analyzer Analyzer
	config   ProducerConfig
}

// NewProducer creates a Producer. analyzer may be nil (every snapshot is unnamed).
func NewProducer(analyzer Analyzer, config ProducerConfig) *Producer {
	return &Producer{analyzer: analyzer, config: config}
}

// Config returns the producer's tolerances and lock angles.
func (p *Producer) Config() ProducerConfig { return p.config }

// #endregion producer

// #region produce

// Produce classifies the snapshot and measures its first-pair angle.
func (p *Producer) Produce(snapshot geometry.Set) Evidence {
	ev := Evidence{Angle: geometry.AngleBetween(snapshot[0], snapshot[1])}
	if p.analyzer != nil {
		res := p.analyzer.AnalyzeSet(snapshot, p.config.LengthTolerance, p.config.AngleTolerance)
		ev.Family, ev.FamilyID = res.Category, res.CategoryID
	}
	ev.LockAngle, ev.PhaseLocked = p.phaseLock(ev.Angle)
	return ev
}

// #endregion produce

// #region phase-lock

// phaseLock returns the canonical angle nearest to angle, and whether it lies inside the
// tolerance window.
func (p *Producer) phaseLock(angle float64) (float64, bool) {
	best, bestDist := 0.0, math.Inf(1)
	for _, lock := range p.config.PhaseLocks {
		if d := math.Abs(angle - lock); d < bestDist {
			best, bestDist = lock, d
		}
	}
	if bestDist < p.config.AngleTolerance {
		return best, true
	}
	return 0, false
}

// #endregion phase-lock
