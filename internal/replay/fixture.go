package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// ErrFixture reports a fixture that cannot be replayed.
var ErrFixture = errors.New("replay: invalid fixture")

// #region fixture-types

// Fixture is a recorded session: ranges, tunables, raw snapshots and per-step expectations.
type Fixture struct {
	Description     string                `json:"description" yaml:"description"`
	Ranges          []verifier.Range      `json:"ranges" yaml:"ranges"`
	LengthTolerance float64               `json:"length_tolerance,omitempty" yaml:"length_tolerance,omitempty"`
	AngleTolerance  float64               `json:"angle_tolerance,omitempty" yaml:"angle_tolerance,omitempty"`
	InitialTrust    *float64              `json:"initial_trust,omitempty" yaml:"initial_trust,omitempty"`
	Signatures      []assembler.Signature `json:"signatures,omitempty" yaml:"signatures,omitempty"`
	Snapshots       []FixtureSnapshot     `json:"snapshots" yaml:"snapshots"`
}

// FixtureSnapshot is one raw snapshot and what its audit should look like.
type FixtureSnapshot struct {
	Label  string       `json:"label,omitempty" yaml:"label,omitempty"`
	Raw    geometry.Set `json:"raw" yaml:"raw"`
	Expect *Expectation `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Expectation constrains one audit. Zero fields are not checked.
type Expectation struct {
	Motif    string   `json:"motif,omitempty" yaml:"motif,omitempty"`
	Protocol string   `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Action   string   `json:"action,omitempty" yaml:"action,omitempty"`
	MinTrust *float64 `json:"min_trust,omitempty" yaml:"min_trust,omitempty"`
	MaxTrust *float64 `json:"max_trust,omitempty" yaml:"max_trust,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads a fixture file. .json files are JSON, anything else YAML.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks the fields Replay depends on.
func (f *Fixture) Validate() error {
	if len(f.Ranges) != 4 {
		return fmt.Errorf("%w: need 4 ranges, got %d", ErrFixture, len(f.Ranges))
	}
	if len(f.Snapshots) == 0 {
		return fmt.Errorf("%w: no snapshots", ErrFixture)
	}
	if f.LengthTolerance < 0 || f.AngleTolerance < 0 {
		return fmt.Errorf("%w: negative tolerance", ErrFixture)
	}
	if f.InitialTrust != nil && (*f.InitialTrust < 0 || *f.InitialTrust > 1) {
		return fmt.Errorf("%w: initial_trust %v outside [0, 1]", ErrFixture, *f.InitialTrust)
	}
	return nil
}

// ToConfig overlays the fixture's tunables on verifier.DefaultConfig.
func (f *Fixture) ToConfig() verifier.Config {
	cfg := verifier.DefaultConfig()
	if f.LengthTolerance > 0 {
		cfg.LengthTolerance = f.LengthTolerance
	}
	if f.AngleTolerance > 0 {
		cfg.AngleTolerance = f.AngleTolerance
		cfg.Gate.AngleTolerance = f.AngleTolerance
	}
	if f.InitialTrust != nil {
		cfg.InitialTrust = *f.InitialTrust
	}
	if len(f.Signatures) > 0 {
		cfg.Signatures = f.Signatures
	}
	return cfg
}

// #endregion fixture-loader

// #region ledger-source

// UnitRanges leave already-normalized snapshots unchanged.
func UnitRanges() []verifier.Range {
	return []verifier.Range{{Min: -1, Max: 1}, {Min: -1, Max: 1}, {Min: -1, Max: 1}, {Min: -1, Max: 1}}
}

// FromLedger builds a fixture from a recorded session. Stored snapshots are already
// normalized, so they replay under UnitRanges; each recorded audit becomes an exact
// expectation.
func FromLedger(sessionID string, entries []ledger.Entry, cfg verifier.Config) (*Fixture, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: session %s has no audits", ErrFixture, sessionID)
	}
	f := &Fixture{
		Description:     "ledger session " + sessionID,
		Ranges:          UnitRanges(),
		LengthTolerance: cfg.LengthTolerance,
		AngleTolerance:  cfg.AngleTolerance,
		Signatures:      cfg.Signatures,
	}
	trust := cfg.InitialTrust
	f.InitialTrust = &trust

	for _, e := range entries {
		t := e.Trust
		f.Snapshots = append(f.Snapshots, FixtureSnapshot{
			Label: fmt.Sprintf("step-%d", e.Step),
			Raw:   e.Snapshot,
			Expect: &Expectation{
				Motif:    e.Motif,
				Protocol: e.Protocol,
				Action:   e.Action,
				MinTrust: &t,
				MaxTrust: &t,
			},
		})
	}
	return f, nil
}

// #endregion ledger-source

// #region fixture-writer

// WriteFixture saves f to path, as JSON for .json files and YAML otherwise.
func WriteFixture(f *Fixture, path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = yaml.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// KeepLastExpectations drops the expectations of all but the last n snapshots. Earlier
// snapshots still replay, since trust depends on the whole history.
func (f *Fixture) KeepLastExpectations(n int) {
	for i := 0; i < len(f.Snapshots)-n; i++ {
		f.Snapshots[i].Expect = nil
	}
}

// #endregion fixture-writer
