package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestream/internal/stream"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	StreamOptions
}

// ReadResult is the JSON payload for a read.
type ReadResult struct {
	Table    string   `json:"table"`
	Reader   string   `json:"reader"`
	Lines    []string `json:"lines"`
	Position uint64   `json:"position"`
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{StreamOptions: StreamOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read unconsumed rows from a stream table",
		Long: `Read every row of a stream table this reader has not yet seen,
in write order, and print the payloads one per line.

Consumption position lives in process memory, so each CLI invocation starts
from the beginning of the table; the reader identity matters within one
invocation (and for the tail command's polling loop).

Examples:
  tablestream read --db ./app.db --table stdout_stream
  tablestream read --profile ./stream.yaml --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, cmd)
		},
	}

	opts.addStreamFlags(cmd)
	cmd.Flags().StringVar(&opts.Reader, "reader", "", `reader identity (default "cli")`)

	return cmd
}

func runRead(opts *ReadOptions, cmd *cobra.Command) error {
	s, err := opts.openStream(stream.ModeRead)
	if err != nil {
		return err
	}
	defer s.Close()

	// Flag, then profile, then the command default.
	if opts.Reader == "" {
		opts.Reader = "cli"
	}

	lines, err := s.ReadNew(cmd.Context(), opts.Reader)
	if err != nil {
		return WrapExitError(ExitFailure, "read failed", err)
	}

	return outputLines(opts, cmd, lines, s.Position(opts.Reader))
}

func outputLines(opts *ReadOptions, cmd *cobra.Command, lines []string, pos uint64) error {
	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(ReadResult{
			Table:    opts.Table,
			Reader:   opts.Reader,
			Lines:    lines,
			Position: pos,
		})
	}

	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "read %d line(s), position %d\n", len(lines), pos)
	}
	return nil
}
