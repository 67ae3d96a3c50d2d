package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamtv/internal/journal"
	"github.com/roach88/streamtv/internal/loader"
	"github.com/roach88/streamtv/internal/testutil"
)

func TestRun_WritesRecordsToStdout(t *testing.T) {
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, _, err := execute(t, "run", input)
	require.NoError(t, err)

	records, err := loader.ReadRecords([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].Failed())
	require.NotNil(t, records[0].CurrentUser)
	assert.Equal(t, "alice", records[0].CurrentUser.Credentials.Name)
	assert.Len(t, records[1].CurrentMoviesList, 5)
}

func TestRun_LogsGoToStderr(t *testing.T) {
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, stderr, err := execute(t, "run", input)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "["), "stdout carries only the output document")
	assert.Contains(t, stderr, "run complete")
	assert.Contains(t, stderr, "records=2")
}

func TestRun_ErrorRecords(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, failingInput())
	out := filepath.Join(dir, "out.json")

	stdout, _, err := execute(t, "run", input, "--out", out)
	require.NoError(t, err, "rejected actions are output, not failures")

	assert.Contains(t, stdout, "2 record(s) written to "+out)
	assert.Contains(t, stdout, "(1 error record(s))")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	records, err := loader.ReadRecords(data)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[1].Failed())
	assert.Empty(t, records[1].CurrentMoviesList)
	assert.Nil(t, records[1].CurrentUser)
}

func TestRun_Pretty(t *testing.T) {
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, _, err := execute(t, "run", input, "--pretty")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "[\n  {"), "got %q", stdout[:min(len(stdout), 20)])
}

func TestRun_PrettyFromEnv(t *testing.T) {
	t.Setenv("STREAMTV_OUTPUT_PRETTY", "true")
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, _, err := execute(t, "run", input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "[\n  {"))
}

func TestRun_JSONSummary(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, failingInput())
	out := filepath.Join(dir, "out.json")

	stdout, _, err := execute(t, "--format", "json", "run", input, "-o", out)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, RunSummary{Records: 2, Errors: 1, Output: out, LastSeq: 3}, resp.Data)
}

func TestRun_Journal(t *testing.T) {
	dbPath := journalRun(t, loginInput(), "run-1")

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	run, err := j.Run(context.Background(), "run-1")
	require.NoError(t, err)
	assert.True(t, run.Finished)
	assert.Equal(t, int64(3), run.LastSeq)

	entries, err := j.Entries(context.Background(), "run-1", "")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRun_JournalSummaryShowsToken(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, loginInput())
	out := filepath.Join(dir, "out.json")
	stdout := &bytes.Buffer{}

	opts := &RunOptions{
		RootOptions:    &RootOptions{Format: "text"},
		TokenGenerator: testutil.NewFixedRunToken("summary-run"),
	}
	cmd := newRunCommand(opts)
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", filepath.Join(dir, "runs.db"), "--out", out, input})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Run: summary-run")
}

func TestRun_JournalFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, loginInput())
	dbPath := filepath.Join(dir, "from-config.db")
	cfgPath := filepath.Join(dir, "streamtv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("journal:\n  path: "+dbPath+"\n"), 0644))

	_, _, err := execute(t, "--config", cfgPath, "run", input)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "journal created at the configured path")
}

func TestRun_Metrics(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, failingInput())
	metrics := filepath.Join(dir, "streamtv.prom")

	_, _, err := execute(t, "run", input, "--metrics", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "streamtv_actions_total")
	assert.Contains(t, string(data), "streamtv_rejections_total")
}

func TestRun_MissingInput(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load input")
}

func TestRun_StrictRejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [], "movies": [], "actions": [], "extra": 1}`), 0644))

	_, _, err := execute(t, "run", path)
	require.NoError(t, err, "unknown fields are ignored by default")

	_, _, err = execute(t, "run", "--strict", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("STREAMTV_RULES_MOVIE_COST", "-1")
	input := writeInput(t, t.TempDir(), loginInput())

	_, _, err := execute(t, "run", input)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "rules.movie_cost")
}

func TestRun_RequiresOneArgument(t *testing.T) {
	_, _, err := execute(t, "run")
	require.Error(t, err)
}
