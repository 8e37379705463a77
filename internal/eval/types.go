package eval

// #region eval-config
// EvalConfig holds the thresholds a generated basis is validated against.
type EvalConfig struct {
	LengthTolerance float64 // classifier length tolerance for the round trip
	AngleTolerance  float64 // classifier angle tolerance for the round trip
	MaxLengthError  float64 // reject if any vector length misses its target by more
	MaxAngleError   float64 // reject if any pairwise angle misses its target by more (degrees)
}

// DefaultEvalConfig returns the round-trip tolerances and tight reconstruction bounds.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		LengthTolerance: 1e-3,
		AngleTolerance:  1e-3,
		MaxLengthError:  1e-6,
		MaxAngleError:   1e-4,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the validation of one family's generated basis.
type EvalResult struct {
	ID         int
	Name       string
	Passed     bool
	Classified string // family the basis classified back to
	Metrics    []EvalMetric
	Reason     string
}

// #endregion eval-result
