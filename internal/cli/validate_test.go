package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDocument(t *testing.T) {
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, _, err := execute(t, "validate", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Document valid (3 user(s), 5 movie(s), 3 action(s))")
}

func TestValidate_ValidDocumentJSON(t *testing.T) {
	input := writeInput(t, t.TempDir(), loginInput())

	stdout, _, err := execute(t, "--format", "json", "validate", input)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "json", resp.Data.Format)
	assert.Equal(t, 3, resp.Data.Actions)
}

func TestValidate_YAMLDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	doc := `users:
  - credentials: {name: ana, password: pw, accountType: standard, country: RO, balance: "10"}
movies:
  - {name: Dune, year: 2021, duration: 155, genres: [Sci-Fi], actors: [Zendaya], countriesBanned: []}
actions:
  - {type: change page, page: login}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	stdout, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(1 user(s), 1 movie(s), 1 action(s))")
}

func TestValidate_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [], "movies": [{"name": ""}], "actions": [{"page": "login"}]}`), 0644))

	stdout, _, err := execute(t, "validate", "--lenient", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ Validation failed")
	assert.Contains(t, err.Error(), "validation failed with")
}

func TestValidate_InvalidDocumentJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [], "movies": [], "actions": [{"page": "login"}]}`), 0644))

	stdout, _, err := execute(t, "--format", "json", "validate", "--lenient", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.NotEmpty(t, resp.Data.Errors)
	require.NotNil(t, resp.Error)
	assert.Equal(t, resp.Data.Errors[0].Code, resp.Error.Code)
}

func TestValidate_UnknownFieldStrictByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [], "movies": [], "actions": [], "extra": true}`), 0644))

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, _, err = execute(t, "validate", "--lenient", path)
	assert.NoError(t, err)
}

func TestValidate_CommandErrors(t *testing.T) {
	dir := t.TempDir()
	unsupported := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(unsupported, []byte("{}"), 0644))

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", filepath.Join(dir, "missing.json"), "E005"},
		{"unsupported extension", unsupported, "E007"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "validate", tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.code+"]")
		})
	}
}
