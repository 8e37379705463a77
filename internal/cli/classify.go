package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/lattice-stage/internal/classifier"
	"github.com/danielpatrickdp/lattice-stage/internal/geometry"
	"github.com/danielpatrickdp/lattice-stage/internal/report"
	"github.com/danielpatrickdp/lattice-stage/internal/verifier"
)

func newClassifyCmd(a *app) *cobra.Command {
	var (
		asJSON    bool
		normalize bool
	)
	cmd := &cobra.Command{
		Use:   "classify x1 y1 z1 w1 ... w4",
		Short: "Classify four 4-D vectors",
		Long: `Classify four 4-D vectors given as 16 numbers, row by row. Commas and semicolons
are accepted as separators, so "1,0,0,0 0,1,0,0 0,0,1,0 0,0,0,1" works.

With --normalize the numbers are raw values mapped onto [-1, 1] with the configured
component ranges before classification.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseSet(args)
			if err != nil {
				return err
			}
			if normalize {
				if set, err = verifier.NormalizeSet(set, a.cfg.Ranges); err != nil {
					return err
				}
			}
			c := classifier.New(a.cfg.ClassifierConfig(), classifier.WithLogger(a.logger))
			res := c.AnalyzeSet(set, a.cfg.LengthTolerance, a.cfg.AngleTolerance)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			report.Classification(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "normalize raw values with the configured ranges first")
	return cmd
}

// parseSet reads 16 numbers separated by spaces, commas or semicolons.
func parseSet(args []string) (geometry.Set, error) {
	fields := strings.FieldsFunc(strings.Join(args, " "), func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\t' || r == '\n'
	})
	if len(fields) != 16 {
		return geometry.Set{}, fmt.Errorf("want 16 numbers (four 4-D vectors), got %d", len(fields))
	}
	var set geometry.Set
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Set{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		set[i/4][i%4] = v
	}
	return set, nil
}
