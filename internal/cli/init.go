package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestream/internal/sqlite"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
	Table    string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Provision a stream table",
		Long: `Provision a stream table in a SQLite database.

Creates the database file if needed and the stream table if it does not
exist. Idempotent. This is the one-time setup step the stream itself
refuses to perform implicitly: write and read fail on a missing table.

Example:
  tablestream init --db ./app.db --table stdout_stream`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Table, "table", "", "stream table name (required)")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	if err := sqlite.Provision(cmd.Context(), opts.Database, opts.Table); err != nil {
		return WrapExitError(ExitCommandError, "failed to provision table", err)
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "provisioned table %s in %s\n", opts.Table, opts.Database)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok\n")
	return nil
}
