package classifier

import "github.com/danielpatrickdp/lattice-stage/internal/geometry"

// #region config

const (
	// DefaultLengthTolerance is the absolute tolerance for length (and cosine) equality.
	DefaultLengthTolerance = 1e-4
	// DefaultAngleTolerance is the tolerance in degrees for angle equality and 90°/120° checks.
	DefaultAngleTolerance = 15.0
)

// Config holds the instance-default tolerance pair.
type Config struct {
	LengthTolerance float64
	AngleTolerance  float64
}

// DefaultConfig returns the default tolerance pair.
func DefaultConfig() Config {
	return Config{
		LengthTolerance: DefaultLengthTolerance,
		AngleTolerance:  DefaultAngleTolerance,
	}
}

// #endregion config

// #region tolerances

// Tolerances records the tolerance pair a result was computed with.
type Tolerances struct {
	Length float64 `json:"length" yaml:"length"`
	Angle  float64 `json:"angle" yaml:"angle"`
}

// #endregion tolerances

// #region result

// Result is the outcome of one Analyze call. CategoryID 0 with the
// "Unclassified configuration" name is a valid outcome, not a failure.
type Result struct {
	Category   string           `json:"category"`
	CategoryID int              `json:"category_id"`
	Metrics    geometry.Metrics `json:"metrics"`
	Tolerances Tolerances       `json:"tolerances"`
	Trail      []string         `json:"trail"` // audit trail snapshot at return time; read-only
}

// Classified reports whether the result names a family.
func (r Result) Classified() bool { return r.CategoryID != 0 }

// #endregion result

// #region recorder

// Recorder observes every classification. Used for telemetry.
type Recorder interface {
	ObserveClassification(category string, id int)
}

// #endregion recorder
