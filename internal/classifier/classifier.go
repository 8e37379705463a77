// Package classifier labels four vectors with the most specific lattice family whose
// predicate they satisfy.
package classifier

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region classifier

// Classifier evaluates the catalog against measured metrics. It keeps an append-only
// audit trail for its lifetime; the trail is diagnostic and never affects matching.
type Classifier struct {
	config   Config
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu    sync.Mutex
	trail []string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for per-analysis debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// WithRecorder attaches a classification observer.
func WithRecorder(r Recorder) Option {
	return func(c *Classifier) { c.recorder = r }
}

// WithClock overrides the clock used to timestamp audit lines.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) { c.now = now }
}

// New creates a classifier with the given default tolerances.
func New(config Config, opts ...Option) *Classifier {
	c := &Classifier{
		config: config,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the instance-default tolerances.
func (c *Classifier) Config() Config { return c.config }

// #endregion classifier

// #region analyze

// Analyze classifies a, b, c, d. lengthTol governs length and cosine equality;
// angleTol governs every angle comparison. The two are never interchanged.
func (c *Classifier) Analyze(a, b, cv, d geometry.Vector4, lengthTol, angleTol float64) Result {
	metrics := geometry.Measure(geometry.Set{a, b, cv, d})
	sym := catalog.NewSymmetryMap(metrics.Lengths, metrics.Angles, lengthTol, angleTol)

	name, id := catalog.UnclassifiedName, catalog.UnclassifiedID
	if def, ok := catalog.Match(metrics, sym); ok {
		name, id = def.Name, def.ID
	}

	trail := c.record(fmt.Sprintf("Analysis with Tol: %v, AngTol: %v -> Result: %s", lengthTol, angleTol, name))
	c.logger.Debug("classified", "tol", lengthTol, "ang_tol", angleTol, "category", name, "id", id)
	if c.recorder != nil {
		c.recorder.ObserveClassification(name, id)
	}

	return Result{
		Category:   name,
		CategoryID: id,
		Metrics:    metrics,
		Tolerances: Tolerances{Length: lengthTol, Angle: angleTol},
		Trail:      trail,
	}
}

// AnalyzeSet is Analyze over a geometry.Set.
func (c *Classifier) AnalyzeSet(s geometry.Set, lengthTol, angleTol float64) Result {
	return c.Analyze(s[0], s[1], s[2], s[3], lengthTol, angleTol)
}

// AnalyzeDefault classifies with the instance-default tolerances.
func (c *Classifier) AnalyzeDefault(a, b, cv, d geometry.Vector4) Result {
	return c.Analyze(a, b, cv, d, c.config.LengthTolerance, c.config.AngleTolerance)
}

// #endregion analyze

// #region trail

// Trail returns a copy of the audit trail.
func (c *Classifier) Trail() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.trail))
	copy(out, c.trail)
	return out
}

// record appends a timestamped line and returns a snapshot of the whole trail.
// The snapshot shares storage with the trail but is capped at its current length,
// so later appends never show through it. Callers must not modify its elements.
func (c *Classifier) record(event string) []string {
	line := fmt.Sprintf("[%s] %s", c.now().UTC().Format("15:04:05.000"), event)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.trail = append(c.trail, line)
	n := len(c.trail)
	return c.trail[:n:n]
}

// #endregion trail
