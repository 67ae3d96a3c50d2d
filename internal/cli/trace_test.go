package cli

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_ListsRuns(t *testing.T) {
	dbPath := journalRun(t, loginInput(), "run-list")

	stdout, _, err := execute(t, "trace", "--journal", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Runs: 1")
	assert.Contains(t, stdout, "run-list  seq=3  Finished")
}

func TestTrace_Timeline(t *testing.T) {
	dbPath := journalRun(t, failingInput(), "run-t")

	stdout, _, err := execute(t, "trace", "--journal", dbPath, "--run", "run-t")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Trace for Run: run-t")
	assert.Contains(t, stdout, "Status: Finished")
	assert.Contains(t, stdout, "[1] change page -> 0 record(s)\n")
	assert.Contains(t, stdout, "[2] login -> 1 record(s)\n")
	assert.Contains(t, stdout, "[3] search -> 1 record(s) ✗")
	assert.Contains(t, stdout, "Error records: 1")
	assert.NotContains(t, stdout, "Action:", "action detail is verbose only")
}

func TestTrace_Verbose(t *testing.T) {
	dbPath := journalRun(t, failingInput(), "run-v")

	stdout, _, err := execute(t, "-v", "trace", "--journal", dbPath, "--run", "run-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "startsWith=H")
}

func TestTrace_KindFilterJSON(t *testing.T) {
	dbPath := journalRun(t, failingInput(), "run-k")

	stdout, _, err := execute(t, "--format", "json", "trace", "--journal", dbPath, "--run", "run-k", "--kind", "login")
	require.NoError(t, err)

	var resp struct {
		Status   string      `json:"status"`
		Data     TraceResult `json:"data"`
		RunToken string      `json:"run_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-k", resp.RunToken)

	require.Len(t, resp.Data.Timeline, 1)
	event := resp.Data.Timeline[0]
	assert.Equal(t, int64(2), event.Seq)
	assert.Equal(t, "login", event.Kind)
	assert.Equal(t, 1, event.Records)
	assert.False(t, event.Failed)
	assert.NotEmpty(t, event.RecordsDigest)
	assert.Equal(t, map[string]int{"login": 1}, resp.Data.Stats.ByKind)
	assert.Equal(t, int64(3), resp.Data.Stats.LastSeq)
}

func TestTrace_RunNotFound(t *testing.T) {
	dbPath := journalRun(t, loginInput(), "run-x")

	_, _, err := execute(t, "trace", "--journal", dbPath, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run not found: missing")
}

func TestTrace_MissingJournal(t *testing.T) {
	_, _, err := execute(t, "trace", "--journal", t.TempDir()+"/none.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFormatArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"empty", nil, "{}"},
		{"sorted keys", map[string]any{"page": "login", "feature": "login"}, "{feature=login, page=login}"},
		{"nested", map[string]any{"filters": map[string]any{"contains": map[string]any{"genre": []any{"Action"}}}}, "{filters={contains={genre=[Action]}}}"},
		{"number", map[string]any{"count": float64(10)}, "{count=10}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatArgs(tt.args))
		})
	}
}
