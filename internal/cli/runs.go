package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/partonmc/internal/config"
	"github.com/roach88/partonmc/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
	Process  string
	Limit    int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Long: `List the runs recorded in a SQLite ledger by ee or pp with --db,
oldest first.

Examples:
  partonmc runs --db ./runs.db
  partonmc runs --db ./runs.db --process pp --limit 10
  partonmc runs --db ./runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run ledger (defaults to PARTONMC_DB)")
	cmd.Flags().StringVar(&opts.Process, "process", "", "only list runs of this process (ee|pp)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "list only the most recent N runs")

	return cmd
}

func listRuns(opts *RunsOptions, cmd *cobra.Command) error {
	path := opts.Database
	if path == "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load configuration", err)
		}
		path = cfg.Database
	}
	if path == "" {
		return NewExitError(ExitCommandError, "no run ledger: pass --db or set PARTONMC_DB")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}

	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Process, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}
	if runs == nil {
		runs = []store.Run{}
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: w}
		return f.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	fmt.Fprintf(w, "%-4s %-36s %-4s %10s %12s %12s %8s %10s\n",
		"SEQ", "ID", "PROC", "ECM", "SIGMA_PB", "ERROR_PB", "EVENTS", "EFF")
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d %-36s %-4s %10g %12.6g %12.4g %8d %10.4g\n",
			r.Seq, r.ID, r.Process, r.ECM, r.SigmaPb, r.ErrorPb, r.Events, r.Efficiency)
	}
	return nil
}
