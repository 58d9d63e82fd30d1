package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/partonmc/internal/pdf"
	"github.com/roach88/partonmc/internal/physics"
	"github.com/roach88/partonmc/internal/process"
)

const hadronicUsage = "pp <ECM> <nevent>"

// NewHadronicCommand creates the pp command.
func NewHadronicCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   hadronicUsage,
		Short: "Generate p p -> Z/gamma* -> mu+ mu- events",
		Long: `Integrate the hadronic Drell-Yan cross section at collision energy ECM,
folding the partonic cross section with a PDF set, then generate nevent
unweighted events in the lab frame.

The PDF set is "builtin" or the name of an LHAPDF6 set found on the search
path (--pdf-path, or LHAPDF_DATA_PATH).

Exit codes:
  0 - Events generated
  1 - Generation failed (no positive weight, trial limit reached)
  2 - Usage or configuration error

Examples:
  partonmc pp 13000 5
  partonmc pp 13000 100 --pdf CT10 --pdf-path /usr/share/LHAPDF
  partonmc pp 7000 10 --seed 7 --quiet`,
		Args:          usageArgs(2, hadronicUsage),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ecm, err := parseEnergy(args[0], hadronicUsage)
			if err != nil {
				return err
			}
			n, err := parseEvents(args[1], hadronicUsage)
			if err != nil {
				return err
			}
			return runGenerate(cmd, opts, generation{kind: process.KindHadronic, ecm: ecm, events: n})
		},
	}

	fs := cmd.Flags()
	addGenerateFlags(fs, opts)
	fs.StringVar(&opts.PDF, "pdf", pdf.BuiltinName, "PDF set name")
	fs.StringSliceVar(&opts.PDFPath, "pdf-path", nil, "directories searched for PDF sets")
	fs.Float64Var(&opts.QMin, "qmin", process.DefaultQMin, "minimum dimuon mass in GeV")
	fs.Float64Var(&opts.Mass, "mass", process.DefaultTransformMass, "mass of the sampling resonance in GeV")
	fs.Float64Var(&opts.Width, "width", process.DefaultTransformWidth, "width of the sampling resonance in GeV")
	fs.Float64Var(&opts.Scale, "scale", physics.MZ, "PDF factorisation scale in GeV")

	return cmd
}
