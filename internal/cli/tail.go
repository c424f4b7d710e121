package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tablestream/internal/stream"
)

// TailOptions holds flags for the tail command.
type TailOptions struct {
	StreamOptions
	Interval time.Duration
}

// NewTailCommand creates the tail command.
func NewTailCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TailOptions{StreamOptions: StreamOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow a stream table, printing rows as they are appended",
		Long: `Follow a stream table: print everything present, then poll for
new rows and print them as they arrive, like tail -f on a growing file.

Each poll is a snapshot read past the reader's cursor; rows appended during
a poll are picked up by the next one. Runs until interrupted.

Example:
  tablestream tail --db ./app.db --table stdout_stream --interval 500ms`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTail(opts, cmd)
		},
	}

	opts.addStreamFlags(cmd)
	cmd.Flags().StringVar(&opts.Reader, "reader", "", `reader identity (default "tail")`)
	cmd.Flags().DurationVar(&opts.Interval, "interval", time.Second, "poll interval")

	return cmd
}

func runTail(opts *TailOptions, cmd *cobra.Command) error {
	s, err := opts.openStream(stream.ModeRead)
	if err != nil {
		return err
	}
	defer s.Close()

	// Flag, then profile, then the command default.
	if opts.Reader == "" {
		opts.Reader = "tail"
	}

	ctx := cmd.Context()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		lines, err := s.ReadNew(ctx, opts.Reader)
		if err != nil {
			// Interruption mid-scan is a normal exit, not a failure.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return WrapExitError(ExitFailure, "read failed", err)
		}
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
