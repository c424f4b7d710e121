package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablestream/internal/testutil"
)

// runWriteCmd appends the given lines through the write command.
func runWriteCmd(t *testing.T, dbPath string, args ...string) {
	t.Helper()
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewWriteCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--db", dbPath, "--table", testutil.DefaultTable}, args...))
	require.NoError(t, cmd.Execute())
}

// runReadCmd runs the read command and returns its stdout.
func runReadCmd(t *testing.T, dbPath, format string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable})
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestWriteThenRead_TextOutput(t *testing.T) {
	dbPath := testutil.TempDB(t)
	runWriteCmd(t, dbPath, "alpha", "beta")

	out := runReadCmd(t, dbPath, "text")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "read_text", []byte(out))
}

func TestWriteThenRead_JSONOutput(t *testing.T) {
	dbPath := testutil.TempDB(t)
	runWriteCmd(t, dbPath, "alpha", "beta")

	out := runReadCmd(t, dbPath, "json")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "read_json", []byte(out))
}

func TestWrite_FromStdin(t *testing.T) {
	dbPath := testutil.TempDB(t)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewWriteCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("line one\nline two\n"))
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable})
	require.NoError(t, cmd.Execute())

	out := runReadCmd(t, dbPath, "text")
	assert.Equal(t, "line one\nline two\n", out)
}

func TestWrite_SeparateSessionsInterleave(t *testing.T) {
	dbPath := testutil.TempDB(t)

	runWriteCmd(t, dbPath, "from first")
	runWriteCmd(t, dbPath, "from second")

	out := runReadCmd(t, dbPath, "text")
	assert.Equal(t, "from first\nfrom second\n", out, "write order holds across sessions")
}

func TestRead_EmptyTable(t *testing.T) {
	dbPath := testutil.TempDB(t)

	out := runReadCmd(t, dbPath, "text")
	assert.Empty(t, out, "reading an empty table prints nothing and succeeds")
}

func TestRead_MissingTable(t *testing.T) {
	dbPath := testutil.TempDBTable(t, "some_other_table")

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestWrite_MalformedMeta(t *testing.T) {
	dbPath := testutil.TempDB(t)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewWriteCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--table", testutil.DefaultTable, "--meta", "oops", "line"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
