package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestream/internal/stream"
)

// WriteOptions holds flags for the write command.
type WriteOptions struct {
	StreamOptions
}

// NewWriteCommand creates the write command.
func NewWriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WriteOptions{StreamOptions: StreamOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "write [text...]",
		Short: "Append lines to a stream table",
		Long: `Append lines to a stream table.

Each argument becomes one record; with no arguments, lines are read from
stdin until EOF. Every record carries the same session metadata (session
id, session timestamp, hostname, pid, plus any --meta pairs), so all lines
written by one invocation are attributable to one writer session.

Examples:
  tablestream write --db ./app.db --table stdout_stream "alpha" "beta"
  some-job | tablestream write --profile ./stream.yaml --meta job=nightly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(opts, args, cmd)
		},
	}

	opts.addStreamFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.Meta, "meta", nil, "extra session metadata as key=value (repeatable)")

	return cmd
}

func runWrite(opts *WriteOptions, args []string, cmd *cobra.Command) error {
	s, err := opts.openStream(stream.ModeWrite)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	written := 0

	if len(args) > 0 {
		for _, line := range args {
			if err := s.Write(ctx, line); err != nil {
				return WrapExitError(ExitFailure, "write failed", err)
			}
			written++
		}
	} else {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if err := s.Write(ctx, scanner.Text()); err != nil {
				return WrapExitError(ExitFailure, "write failed", err)
			}
			written++
		}
		if err := scanner.Err(); err != nil {
			return WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d line(s) to %s\n", written, opts.Table)
	}
	return nil
}
