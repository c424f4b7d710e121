package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestream/internal/testutil"
)

func TestTail_PrintsExistingAndExitsOnCancel(t *testing.T) {
	dbPath := testutil.TempDB(t)
	runWriteCmd(t, dbPath, "first", "second")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTailCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable, "--interval", "50ms"})

	require.NoError(t, cmd.ExecuteContext(ctx), "cancellation is a normal exit")
	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestTail_PicksUpRowsAppendedWhileFollowing(t *testing.T) {
	dbPath := testutil.TempDB(t)
	runWriteCmd(t, dbPath, "early")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Append from a second writer session once the tail is underway.
	go func() {
		time.Sleep(150 * time.Millisecond)
		rootOpts := &RootOptions{Format: "text"}
		cmd := NewWriteCommand(rootOpts)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable, "late"})
		_ = cmd.Execute()
	}()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTailCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable, "--interval", "50ms"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Equal(t, "early\nlate\n", buf.String(), "each row printed exactly once, in write order")
}

func TestTail_MissingTable(t *testing.T) {
	dbPath := testutil.TempDBTable(t, "some_other_table")

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTailCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
