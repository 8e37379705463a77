// Package generator realizes a lattice family as four concrete vectors: it resolves the
// family's symbolic edges and angles, builds their Gram matrix and factors it.
package generator

import (
	"fmt"
	"log/slog"

	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region generator

// Generator inverts classification for families that carry generation parameters.
type Generator struct {
	lookup   LookupFunc
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for generation failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRecorder attaches a generation observer.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// New creates a generator over the given catalog lookup.
func New(lookup LookupFunc, opts ...Option) (*Generator, error) {
	if lookup == nil {
		return nil, fmt.Errorf("%w: generator requires a catalog", ErrConfiguration)
	}
	g := &Generator{lookup: lookup, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// #endregion generator

// #region generate

// Generate returns four vectors whose lengths and pairwise angles realize family id.
// The vectors are the rows of the Cholesky factor of the family's Gram matrix.
func (g *Generator) Generate(id int) (geometry.Set, error) {
	set, err := g.generate(id)
	if g.recorder != nil {
		g.recorder.ObserveGeneration(id, err)
	}
	if err != nil {
		g.logger.Debug("generation failed", "id", id, "err", err)
	}
	return set, err
}

func (g *Generator) generate(id int) (geometry.Set, error) {
	def, ok := g.lookup(id)
	if !ok {
		return geometry.Set{}, fmt.Errorf("%w: unknown category id %d", ErrConfiguration, id)
	}
	if def.Gen == nil {
		return geometry.Set{}, fmt.Errorf("%w: %s (id %d) has no generation parameters", ErrConfiguration, def.Name, id)
	}

	angles, err := ResolveAngles(def.Gen.Angles)
	if err != nil {
		return geometry.Set{}, fmt.Errorf("resolve %s angles: %w", def.Name, err)
	}
	l, err := Cholesky(GramMatrix(ResolveLengths(*def.Gen), angles))
	if err != nil {
		return geometry.Set{}, fmt.Errorf("factor %s: %w", def.Name, err)
	}
	return Rows(l), nil
}

// #endregion generate
