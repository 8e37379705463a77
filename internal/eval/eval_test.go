package eval

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

type fixedSource struct {
	set geometry.Set
	err error
}

func (s fixedSource) Generate(int) (geometry.Set, error) { return s.set, s.err }

func newHarness(t *testing.T, config EvalConfig) *EvalHarness {
	t.Helper()
	gen, err := generator.New(catalog.Lookup)
	if err != nil {
		t.Fatalf("generator.New: %v", err)
	}
	return NewEvalHarness(config, gen, classifier.New(classifier.DefaultConfig()))
}

func mustLookup(t *testing.T, id int) catalog.Definition {
	t.Helper()
	def, ok := catalog.Lookup(id)
	if !ok {
		t.Fatalf("no family %d", id)
	}
	return def
}

func TestEvalPassesOnInvertibleFamilies(t *testing.T) {
	h := newHarness(t, DefaultEvalConfig())
	for _, def := range catalog.Definitions() {
		if !def.Invertible() {
			continue
		}
		res, _, err := h.Run(def)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", def.Name, err)
		}
		if !res.Passed {
			t.Errorf("%s: %s", def.Name, res.Reason)
		}
		if len(res.Metrics) != 3 {
			t.Errorf("%s: expected 3 metrics, got %d", def.Name, len(res.Metrics))
		}
	}
}

func TestEvalReportsClassifyOnlyFamilies(t *testing.T) {
	h := newHarness(t, DefaultEvalConfig())
	res, _, err := h.Run(mustLookup(t, 11))
	if !errors.Is(err, generator.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if res.Passed {
		t.Fatal("classify-only family should not pass")
	}
}

func TestEvalFailsOnWrongBasis(t *testing.T) {
	identity := geometry.Set{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	h := NewEvalHarness(DefaultEvalConfig(), fixedSource{set: identity}, classifier.New(classifier.DefaultConfig()))

	// Cubic orthogonal wants d = 2; the identity classifies as Hypercubic.
	res, _, err := h.Run(mustLookup(t, 17))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Passed {
		t.Fatal("expected failure")
	}
	if res.Classified != "Hypercubic" {
		t.Errorf("expected Hypercubic, got %s", res.Classified)
	}
	if res.Metrics[0].Pass {
		t.Error("length check should fail")
	}
	if !res.Metrics[1].Pass {
		t.Error("angle check should pass")
	}
	if res.Reason != "eval failed: 2 checks: length error 1 exceeds 1e-06" {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestEvalRunAll(t *testing.T) {
	results := newHarness(t, DefaultEvalConfig()).RunAll()
	if len(results) != 23 {
		t.Fatalf("expected 23 results, got %d", len(results))
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	if passed != 18 {
		t.Errorf("expected 18 passing families, got %d", passed)
	}
	if results[0].ID != 23 {
		t.Errorf("expected priority order, first id %d", results[0].ID)
	}
}
