// Package config layers defaults, an optional YAML file, LATTICE_* environment variables
// and command-line flags into one validated Config.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/ledger"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// EnvPrefix namespaces environment overrides, e.g. LATTICE_LENGTH_TOLERANCE.
const EnvPrefix = "LATTICE"

// #region types

// Config is the full runtime configuration.
type Config struct {
	LengthTolerance float64               `yaml:"length_tolerance" mapstructure:"length_tolerance"`
	AngleTolerance  float64               `yaml:"angle_tolerance" mapstructure:"angle_tolerance"`
	Ranges          []verifier.Range      `yaml:"ranges" mapstructure:"ranges"`
	Signatures      []assembler.Signature `yaml:"signatures" mapstructure:"signatures"`
	SignaturesFile  string                `yaml:"signatures_file,omitempty" mapstructure:"signatures_file"`
	Ledger          LedgerConfig          `yaml:"ledger" mapstructure:"ledger"`
	Monitor         MonitorConfig         `yaml:"monitor" mapstructure:"monitor"`
	Log             LogConfig             `yaml:"log" mapstructure:"log"`
}

// LedgerConfig locates the audit ledger.
type LedgerConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// MonitorConfig paces the headless monitor.
type MonitorConfig struct {
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`
	Ticks       int           `yaml:"ticks" mapstructure:"ticks"` // 0 runs until interrupted
	MetricsAddr string        `yaml:"metrics_addr,omitempty" mapstructure:"metrics_addr"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug | info | warn | error
	Format string `yaml:"format" mapstructure:"format"` // text | json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LengthTolerance: classifier.DefaultLengthTolerance,
		AngleTolerance:  classifier.DefaultAngleTolerance,
		Ranges:          []verifier.Range{{Min: 0, Max: 23}, {Min: 1, Max: 10}, {Min: 1, Max: 7}, {Min: 1, Max: 8}},
		Signatures:      assembler.DefaultSignatures(),
		Ledger:          LedgerConfig{DSN: ledger.MemoryDSN},
		Monitor:         MonitorConfig{Interval: 250 * time.Millisecond},
		Log:             LogConfig{Level: "info", Format: "text"},
	}
}

// #endregion types

// #region load

// NewViper returns a viper instance reading cfgFile, or $HOME/.lattice/config.yaml when
// cfgFile is empty, with LATTICE_* environment overrides. A missing default file is not
// an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".lattice"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load resolves v over the defaults, reads any signatures file and validates the result.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.SignaturesFile != "" {
		sigs, err := LoadSignatures(cfg.SignaturesFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Signatures = sigs
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("length_tolerance", d.LengthTolerance)
	v.SetDefault("angle_tolerance", d.AngleTolerance)
	v.SetDefault("ranges", d.Ranges)
	v.SetDefault("signatures", d.Signatures)
	v.SetDefault("signatures_file", "")
	v.SetDefault("ledger.dsn", d.Ledger.DSN)
	v.SetDefault("monitor.interval", d.Monitor.Interval)
	v.SetDefault("monitor.ticks", d.Monitor.Ticks)
	v.SetDefault("monitor.metrics_addr", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// #endregion load

// #region validate

// Validate reports the first problem found, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if !(c.LengthTolerance > 0) || math.IsInf(c.LengthTolerance, 0) {
		return fmt.Errorf("%w: length_tolerance must be positive, got %v", ErrInvalid, c.LengthTolerance)
	}
	if !(c.AngleTolerance > 0) || math.IsInf(c.AngleTolerance, 0) {
		return fmt.Errorf("%w: angle_tolerance must be positive, got %v", ErrInvalid, c.AngleTolerance)
	}
	if len(c.Ranges) != 4 {
		return fmt.Errorf("%w: want 4 component ranges, got %d", ErrInvalid, len(c.Ranges))
	}
	for i, r := range c.Ranges {
		if !(r.Max > r.Min) {
			return fmt.Errorf("%w: range %d [%v, %v] must have max > min", ErrInvalid, i, r.Min, r.Max)
		}
	}
	seen := make(map[string]bool, len(c.Signatures))
	for i, s := range c.Signatures {
		if strings.TrimSpace(s.Actor) == "" {
			return fmt.Errorf("%w: signature %d has no actor", ErrInvalid, i)
		}
		if len(s.Sequence) == 0 {
			return fmt.Errorf("%w: signature %q has an empty sequence", ErrInvalid, s.Actor)
		}
		if seen[s.Actor] {
			return fmt.Errorf("%w: duplicate signature actor %q", ErrInvalid, s.Actor)
		}
		seen[s.Actor] = true
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("%w: monitor.interval must be positive, got %v", ErrInvalid, c.Monitor.Interval)
	}
	if c.Monitor.Ticks < 0 {
		return fmt.Errorf("%w: monitor.ticks must not be negative", ErrInvalid)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// #endregion validate

// #region derived

// ClassifierConfig returns the classifier's default tolerances.
func (c Config) ClassifierConfig() classifier.Config {
	return classifier.Config{LengthTolerance: c.LengthTolerance, AngleTolerance: c.AngleTolerance}
}

// VerifierConfig returns a verifier session configuration using c's tolerances and signatures.
func (c Config) VerifierConfig() verifier.Config {
	vc := verifier.DefaultConfig()
	vc.LengthTolerance = c.LengthTolerance
	vc.AngleTolerance = c.AngleTolerance
	vc.Gate.AngleTolerance = c.AngleTolerance
	vc.Signatures = c.Signatures
	return vc
}

// #endregion derived
