package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/lattice-stage/internal/assembler"
	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/probe"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
)

func newChainCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Run the signature-chain scenarios",
		Long: `Replay the Decagonal → Cubic orthogonal → Hexagonal tetragonal motif through the
assembler at four settings: a matching tolerance, a strict tolerance that hides the
middle step from a looser observer, a loose tolerance that keeps it visible, and pure
noise that must stay unattributed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := classifier.New(a.cfg.ClassifierConfig(), classifier.WithLogger(a.logger))
			asm := assembler.New(c, a.cfg.Signatures)
			scenarios := probe.RunChainScenarios(asm, probe.New(seed), a.cfg.AngleTolerance)
			report.Chains(cmd.OutOrStdout(), scenarios)

			passed := 0
			for _, s := range scenarios {
				if s.Pass {
					passed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d scenarios behaved as expected\n", passed, len(scenarios))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for jitter and noise")
	return cmd
}
