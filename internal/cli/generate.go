package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/lattice-stage/internal/catalog"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/eval"
	"github.com/danielpatrickdp/lattice-stage/internal/generator"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
)

func newGenerateCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "generate [id]",
		Short: "Build four vectors realizing a lattice family",
		Long: `Build four vectors whose lengths and pairwise angles realize family id (1-23).
With --all every family is generated, classified back and reported PASS or FAIL.
Families without generation parameters FAIL with a configuration error.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := generator.New(catalog.Lookup, generator.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if all {
				return generateAll(cmd, a, gen)
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("family id: %w", err)
			}
			set, err := gen.Generate(id)
			if err != nil {
				return err
			}
			def, _ := catalog.Lookup(id)
			report.Matrix(cmd.OutOrStdout(), def.Name, id, set)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "generate and round-trip every family")
	return cmd
}

// generateAll validates every family in priority order. The error is non-nil when an
// invertible family fails.
func generateAll(cmd *cobra.Command, a *app, src generator.Source) error {
	c := classifier.New(a.cfg.ClassifierConfig(), classifier.WithLogger(a.logger))
	h := eval.NewEvalHarness(eval.DefaultEvalConfig(), src, c)
	out := cmd.OutOrStdout()
	failed := 0
	for _, def := range catalog.Definitions() {
		res, set, err := h.Run(def)
		switch {
		case err != nil:
			report.GenerationFailure(out, def.ID, fmt.Errorf("FAIL %s: %w", def.Name, err))
		case res.Passed:
			report.Matrix(out, def.Name+" PASS", def.ID, set)
		default:
			report.Matrix(out, def.Name+" FAIL ("+res.Reason+")", def.ID, set)
		}
		if !res.Passed && def.Invertible() {
			failed++
		}
		a.logger.Debug("round trip", "id", def.ID, "passed", res.Passed, "classified", res.Classified)
	}
	if failed > 0 {
		return fmt.Errorf("%d invertible families failed validation", failed)
	}
	return nil
}
