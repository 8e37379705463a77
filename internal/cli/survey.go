package cli

import (
	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/probe"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
)

func newSurveyCmd(a *app) *cobra.Command {
	var seed uint64
	sc := probe.DefaultSurveyConfig()
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Classify synthetic vector sets and report the family distribution",
		Long: `Classify random, structured and jittered targeted vector sets. Targeted sets start
from the generated basis of the drawn family and are classified at a strict and a
loose tolerance; the overall distribution merges the random, structured and loose
phases and lists the families never observed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := classifier.New(a.cfg.ClassifierConfig(), classifier.WithLogger(a.logger))
			gen, err := generator.New(catalog.Lookup, generator.WithLogger(a.logger))
			if err != nil {
				return err
			}
			bases := generator.NewCached(gen)
			r := probe.RunSurvey(c, probe.New(seed), bases, sc, a.cfg.LengthTolerance, a.cfg.AngleTolerance)
			report.Survey(cmd.OutOrStdout(), r)
			hits, misses := bases.Stats()
			a.logger.Debug("survey bases", "generated_draws", r.Generated, "cache_hits", hits, "cache_misses", misses)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.IntVar(&sc.Random, "random", sc.Random, "random draws")
	f.IntVar(&sc.Structured, "structured", sc.Structured, "structured draws")
	f.IntVar(&sc.Targeted, "targeted", sc.Targeted, "targeted draws")
	f.Float64Var(&sc.Jitter, "jitter", sc.Jitter, "jitter applied to targeted sets")
	return cmd
}
