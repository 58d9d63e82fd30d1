package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/partonmc/internal/process"
)

const leptonicUsage = "ee <nevent>"

// NewLeptonicCommand creates the ee command.
func NewLeptonicCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   leptonicUsage,
		Short: "Generate e+ e- -> Z/gamma* -> mu+ mu- events",
		Long: `Integrate the leptonic cross section at a fixed collision energy, then
generate nevent unweighted events and print them with the acceptance
statistics. The analytic cross section is printed for comparison.

Exit codes:
  0 - Events generated
  1 - Generation failed (no positive weight, trial limit reached)
  2 - Usage or configuration error

Examples:
  partonmc ee 100
  partonmc ee 100 --ecm 91.188 --seed 42
  partonmc ee 10 --samples 100000 --format json`,
		Args:          usageArgs(1, leptonicUsage),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseEvents(args[0], leptonicUsage)
			if err != nil {
				return err
			}
			return runGenerate(cmd, opts, generation{kind: process.KindLeptonic, events: n})
		},
	}

	addGenerateFlags(cmd.Flags(), opts)
	cmd.Flags().Float64Var(&opts.ECM, "ecm", process.DefaultLeptonicECM, "collision energy in GeV")

	return cmd
}
