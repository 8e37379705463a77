// Package cli is the lattice command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielpatrickdp/lattice-stage/internal/config"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// flagKeys maps config keys to the flags that may override them. A command binds only
// the flags it defines.
var flagKeys = map[string]string{
	"length_tolerance":     "length-tolerance",
	"angle_tolerance":      "angle-tolerance",
	"signatures_file":      "signatures",
	"ledger.dsn":           "ledger-dsn",
	"log.format":           "log-format",
	"log.level":            "log-level",
	"monitor.interval":     "interval",
	"monitor.ticks":        "ticks",
	"monitor.metrics_addr": "metrics-addr",
}

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile string
	verbose bool

	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "lattice",
		Short: "Lattice-family classification, generation and trust tracking for 4-D vector sets",
		Long: `lattice labels four 4-D vectors with the most specific of 23 lattice families,
builds concrete vectors for a family, matches classification streams against known
signatures and tracks a bounded trust score over a snapshot stream.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (LATTICE_*)
  3. Config file (~/.lattice/config.yaml or --config)
  4. Defaults`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.lattice/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.Float64("length-tolerance", 0, "length equality tolerance")
	pf.Float64("angle-tolerance", 0, "angle tolerance in degrees")
	pf.String("signatures", "", "YAML signature file")
	pf.String("log-format", "", "log format: text or json")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newClassifyCmd(a),
		newGenerateCmd(a),
		newChainCmd(a),
		newSurveyCmd(a),
		newMonitorCmd(a),
		newLedgerCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load resolves configuration for cmd and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.v, a.cfg = v, cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log, a.verbose)
	slog.SetDefault(a.logger)
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", "path", used)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lattice %s\n", Version)
		},
	}
}
