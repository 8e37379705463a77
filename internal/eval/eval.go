// Package eval validates generated bases: each must reproduce its family's lengths and
// angles and classify back to the family it was generated from.
package eval

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
)

// #region eval-harness
// EvalHarness generates and validates catalog families.
type EvalHarness struct {
	config   EvalConfig
	source   generator.Source
	analyzer assembler.Analyzer
}

// NewEvalHarness creates a harness generating from source and classifying with analyzer.
func NewEvalHarness(config EvalConfig, source generator.Source, analyzer assembler.Analyzer) *EvalHarness {
	return &EvalHarness{config: config, source: source, analyzer: analyzer}
}

// Run generates family def and validates the basis. A generation failure is a failed
// result with the error as reason; err is returned alongside for errors.Is checks.
func (h *EvalHarness) Run(def catalog.Definition) (EvalResult, geometry.Set, error) {
	res := EvalResult{ID: def.ID, Name: def.Name}
	set, err := h.source.Generate(def.ID)
	if err != nil {
		res.Reason = fmt.Sprintf("generate failed: %v", err)
		return res, set, err
	}

	var failReasons []string
	m := geometry.Measure(set)

	// 1. Reconstruction: lengths and angles against the resolved targets
	lengthErr, angleErr := reconstructionError(def, m)
	lengthPass := lengthErr <= h.config.MaxLengthError
	res.Metrics = append(res.Metrics, EvalMetric{Name: "length_error", Value: lengthErr, Pass: lengthPass})
	if !lengthPass {
		failReasons = append(failReasons, fmt.Sprintf("length error %.3g exceeds %.3g", lengthErr, h.config.MaxLengthError))
	}
	anglePass := angleErr <= h.config.MaxAngleError
	res.Metrics = append(res.Metrics, EvalMetric{Name: "angle_error", Value: angleErr, Pass: anglePass})
	if !anglePass {
		failReasons = append(failReasons, fmt.Sprintf("angle error %.3g° exceeds %.3g°", angleErr, h.config.MaxAngleError))
	}

	// 2. Round trip: the basis must classify back to its own family
	got := h.analyzer.AnalyzeSet(set, h.config.LengthTolerance, h.config.AngleTolerance)
	res.Classified = got.Category
	roundTrip := got.CategoryID == def.ID
	res.Metrics = append(res.Metrics, EvalMetric{Name: "classified_id", Value: float64(got.CategoryID), Pass: roundTrip})
	if !roundTrip {
		failReasons = append(failReasons, fmt.Sprintf("classified as %s", got.Category))
	}

	res.Passed = len(failReasons) == 0
	switch len(failReasons) {
	case 0:
		res.Reason = "all checks passed"
	case 1:
		res.Reason = fmt.Sprintf("eval failed: %s", failReasons[0])
	default:
		res.Reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
	}
	return res, set, nil
}

// RunAll validates every catalog family in priority order.
func (h *EvalHarness) RunAll() []EvalResult {
	defs := catalog.Definitions()
	out := make([]EvalResult, 0, len(defs))
	for _, def := range defs {
		r, _, _ := h.Run(def)
		out = append(out, r)
	}
	return out
}

// #endregion eval-harness

// #region helpers
// reconstructionError is the worst length and angle deviation from def's resolved targets.
func reconstructionError(def catalog.Definition, m geometry.Metrics) (float64, float64) {
	if def.Gen == nil {
		return math.Inf(1), math.Inf(1)
	}
	lengths := generator.ResolveLengths(*def.Gen)
	angles, err := generator.ResolveAngles(def.Gen.Angles)
	if err != nil {
		return math.Inf(1), math.Inf(1)
	}
	var lErr, aErr float64
	for i := 0; i < 4; i++ {
		lErr = math.Max(lErr, math.Abs(m.Lengths.At(i)-lengths.At(i)))
	}
	want, got := angles.Slice(), m.Angles.Slice()
	for i := range want {
		aErr = math.Max(aErr, math.Abs(got[i]-want[i]))
	}
	return lErr, aErr
}

// #endregion helpers
