package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/testutil"
)

// loginInput logs alice in and opens the movies page: two records, no
// errors.
func loginInput() model.Input {
	return testutil.Input(testutil.Seq(
		testutil.Login("alice", "pw"),
		testutil.One(testutil.GoTo("movies")),
	)...)
}

// failingInput logs alice in and searches off the movies page: two
// records, the second one an error.
func failingInput() model.Input {
	return testutil.Input(testutil.Seq(
		testutil.Login("alice", "pw"),
		testutil.One(testutil.SearchFor("H")),
	)...)
}

func writeInput(t *testing.T, dir string, in model.Input) string {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// journalRun runs input into a fresh journal under token and returns the
// journal path.
func journalRun(t *testing.T, in model.Input, token string) string {
	t.Helper()
	dir := t.TempDir()
	input := writeInput(t, dir, in)
	dbPath := filepath.Join(dir, "runs.db")

	opts := &RunOptions{
		RootOptions:    &RootOptions{Format: "text"},
		TokenGenerator: testutil.NewFixedRunToken(token),
	}
	cmd := newRunCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", dbPath, input})
	require.NoError(t, cmd.Execute())
	return dbPath
}
