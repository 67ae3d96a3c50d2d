package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const inlineDocument = `
document:
  users:
    - credentials: {name: ana, password: pw, accountType: standard, country: RO, balance: "20"}
  movies:
    - {name: Dune, year: 2021, duration: 155, genres: [Sci-Fi], actors: [Timothee Chalamet], countriesBanned: []}
  actions:
    - {type: change page, page: login}
`

func TestLoadScenario_InlineDocument(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: inline
description: inline document
`+inlineDocument+`
assertions:
  - type: record_count
    count: 0
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "inline", scenario.Name)
	require.Len(t, scenario.Doc().Users, 1)
	assert.Equal(t, 20, int(scenario.Doc().Users[0].Credentials.Balance))
	assert.Len(t, scenario.Doc().Actions, 1)
}

func TestLoadScenario_InputRelativeToScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "premium-recommendation.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "inputs", "catalog.json"), scenario.Input)
	assert.Len(t, scenario.Doc().Users, 3)
	assert.Len(t, scenario.Doc().Movies, 5)
	assert.Equal(t, "premium-run", scenario.Token())
}

func TestLoadScenario_Rules(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: rules
description: custom prices
rules: {premiumCost: 4, movieCost: 1, freePremiumMovies: 0}
`+inlineDocument+`
assertions:
  - type: deterministic
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	rules := scenario.PriceList()
	assert.Equal(t, 4, rules.PremiumCost)
	assert.Equal(t, 1, rules.MovieCost)
	assert.Equal(t, 0, rules.FreePremiumMovies)
}

func TestLoadScenario_DefaultToken(t *testing.T) {
	s := &Scenario{}
	assert.Equal(t, "test-run-default", s.Token())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
description: typo
assertion: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingInput(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: missing
description: input file does not exist
input: nowhere.json
assertions:
  - type: deterministic
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestLoadScenario_InvalidDocument(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: bad-doc
description: action without a type
document:
  actions:
    - {page: login}
assertions:
  - type: deterministic
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document")
}

func TestValidateScenario(t *testing.T) {
	zero, one, neg := 0, 1, -1

	tests := []struct {
		name     string
		scenario Scenario
		wantErr  string
	}{
		{
			name:     "missing name",
			scenario: Scenario{Description: "d", Input: "x"},
			wantErr:  "name is required",
		},
		{
			name:     "missing description",
			scenario: Scenario{Name: "n", Input: "x"},
			wantErr:  "description is required",
		},
		{
			name:     "no document",
			scenario: Scenario{Name: "n", Description: "d"},
			wantErr:  "exactly one of input and document",
		},
		{
			name:     "no assertions",
			scenario: Scenario{Name: "n", Description: "d", Input: "x"},
			wantErr:  "assertions list is required",
		},
		{
			name: "record_count without count",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertRecordCount}}},
			wantErr: "count is required",
		},
		{
			name: "negative count",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertErrorCount, Count: &neg}}},
			wantErr: "count must be non-negative",
		},
		{
			name: "record_error without index",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertRecordError}}},
			wantErr: "index is required",
		},
		{
			name: "record_movies without movies",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertRecordMovies, Index: &zero}}},
			wantErr: "movies is required",
		},
		{
			name: "record_user without expect",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertRecordUser, Index: &one}}},
			wantErr: "expect is required",
		},
		{
			name: "trace_count without kind",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertTraceCount, Count: &one}}},
			wantErr: "kind is required",
		},
		{
			name: "trace_order without kinds",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertTraceOrder}}},
			wantErr: "kinds list is required",
		},
		{
			name: "final_user without user",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertFinalUser, Expect: map[string]any{"tokensCount": 1}}}},
			wantErr: "user is required",
		},
		{
			name: "final_movie without expect",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertFinalMovie, Movie: "Heat"}}},
			wantErr: "expect is required",
		},
		{
			name: "unknown type",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: "trace_contains"}}},
			wantErr: "unknown assertion type",
		},
		{
			name: "valid",
			scenario: Scenario{Name: "n", Description: "d", Input: "x",
				Assertions: []Assertion{{Type: AssertDeterministic}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScenario(&tt.scenario)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
