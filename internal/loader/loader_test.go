package loader

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamtv/internal/model"
)

func loadErr(t *testing.T, err error) *LoadError {
	t.Helper()
	var le *LoadError
	require.True(t, errors.As(err, &le), "want *LoadError, got %T: %v", err, err)
	return le
}

func TestLoad_JSONAndYAMLAgree(t *testing.T) {
	strict := Options{Strict: true, Mode: LoadModeCollectAll}

	fromJSON, errs := Load(filepath.Join("testdata", "valid.json"), strict)
	require.Empty(t, errs)
	require.NotNil(t, fromJSON)
	assert.Equal(t, FormatJSON, fromJSON.Format)

	fromYAML, errs := Load(filepath.Join("testdata", "valid.yaml"), strict)
	require.Empty(t, errs)
	assert.Equal(t, FormatYAML, fromYAML.Format)

	assert.Equal(t, fromJSON.Input, fromYAML.Input)

	in := fromJSON.Input
	require.Len(t, in.Users, 1)
	assert.Equal(t, model.Amount(100), in.Users[0].Credentials.Balance)
	require.Len(t, in.Actions, 3)
	assert.Equal(t, "alice", in.Actions[1].Credentials.Name)
	assert.Equal(t, model.Decreasing, in.Actions[2].Filters.Sort.Rating)
	assert.Equal(t, []string{}, in.Movies[0].CountriesBanned)
}

func TestLoad_Errors(t *testing.T) {
	_, errs := Load(filepath.Join("testdata", "missing.json"), Options{})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeNotFound, loadErr(t, errs[0]).Code)

	_, errs = Load(filepath.Join("testdata", "input.toml"), Options{})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeFormat, loadErr(t, errs[0]).Code)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{"a.json": FormatJSON, "a.yaml": FormatYAML, "A.YML": FormatYAML}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectFormat("input")
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	doc := []byte(`{"users": [], "extra": 1}`)

	_, errs := Parse(doc, FormatJSON, "doc.json", Options{})
	assert.Empty(t, errs, "lenient mode ignores unknown fields")

	_, errs = Parse(doc, FormatJSON, "doc.json", Options{Strict: true})
	require.Len(t, errs, 1)
	le := loadErr(t, errs[0])
	assert.Equal(t, ErrCodeSchema, le.Code)
	assert.Equal(t, "extra", le.Path)
}

func TestParse_UnknownFieldYAMLDecode(t *testing.T) {
	_, err := Decode([]byte("users: []\nextra: 1\n"), FormatYAML, true)
	require.Error(t, err)
	assert.Equal(t, ErrCodeDecode, loadErr(t, err).Code)

	_, err = Decode([]byte("users: []\nextra: 1\n"), FormatYAML, false)
	assert.NoError(t, err)
}

func TestParse_SchemaPaths(t *testing.T) {
	doc := []byte(`
actions:
  - type: dance
  - type: on page
    rate: high
`)
	_, errs := Parse(doc, FormatYAML, "doc.yaml", Options{Strict: true, Mode: LoadModeCollectAll})
	require.NotEmpty(t, errs)

	paths := map[string]bool{}
	for _, err := range errs {
		le := loadErr(t, err)
		if le.Code == ErrCodeSchema {
			paths[le.Path] = true
		}
	}
	assert.True(t, paths["actions.0.type"], "got %v", paths)
	assert.True(t, paths["actions.1.rate"], "got %v", paths)
}

func TestParse_SchemaFailFastStopsEarly(t *testing.T) {
	doc := []byte(`{"actions": [{"type": "dance"}], "movies": [{"name": ""}]}`)
	res, errs := Parse(doc, FormatJSON, "doc.json", Options{Strict: true})
	assert.Nil(t, res)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeSchema, loadErr(t, errs[0]).Code)
}

func TestParse_Validation(t *testing.T) {
	doc := []byte(`{
		"movies": [{"name": ""}],
		"actions": [{"type": "on page", "filters": {"sort": {"rating": "up"}}}]
	}`)

	res, errs := Parse(doc, FormatJSON, "doc.json", Options{Mode: LoadModeCollectAll})
	require.NotNil(t, res)
	require.Len(t, errs, 2)

	first := loadErr(t, errs[0])
	assert.Equal(t, ErrCodeInvalid, first.Code)
	assert.Equal(t, "movies.0.name", first.Path)
	assert.Equal(t, "is required", first.Message)

	second := loadErr(t, errs[1])
	assert.Equal(t, "actions.0.filters.sort.rating", second.Path)
	assert.Equal(t, "must be one of: increasing decreasing", second.Message)

	_, errs = Parse(doc, FormatJSON, "doc.json", Options{})
	assert.Len(t, errs, 1, "fail fast")
}

func TestParse_NegativeBalance(t *testing.T) {
	doc := []byte(`{"users": [{"credentials": {"name": "x", "password": "y", "balance": -5}}]}`)
	_, errs := Parse(doc, FormatJSON, "doc.json", Options{})
	require.Len(t, errs, 1)
	le := loadErr(t, errs[0])
	assert.Equal(t, "users.0.credentials.balance", le.Path)
	assert.Equal(t, "must be greater than or equal to 0", le.Message)
}

func TestParse_SyntaxError(t *testing.T) {
	_, errs := Parse([]byte(`{"users": [`), FormatJSON, "doc.json", Options{})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeDecode, loadErr(t, errs[0]).Code)
}

func TestLoadError_Format(t *testing.T) {
	assert.Equal(t, "E006: movies.0.name: is required", (&LoadError{Code: ErrCodeInvalid, Path: "movies.0.name", Message: "is required"}).Error())
	assert.Equal(t, "E005: gone", (&LoadError{Code: ErrCodeNotFound, Message: "gone"}).Error())
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRecords(&buf, []model.Record{model.ErrorRecord()}, false))
	assert.Equal(t, `[{"error":"Error","currentMoviesList":[],"currentUser":null}]`+"\n", buf.String())

	records, err := ReadRecords(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []model.Record{model.ErrorRecord()}, records)

	buf.Reset()
	require.NoError(t, WriteRecords(&buf, []model.Record{model.ErrorRecord()}, true))
	assert.Contains(t, buf.String(), "\n    \"error\": \"Error\",\n")
}

func TestSchemaPath(t *testing.T) {
	tests := []struct {
		name string
		sel  []string
		want string
	}{
		{"definition prefix dropped", []string{"#Input", "actions", "0", "type"}, "actions.0.type"},
		{"root field", []string{"#Input", "extra"}, "extra"},
		{"already relative", []string{"movies", "1", "name"}, "movies.1.name"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaPath(tt.sel))
		})
	}
}

func TestParse_NumericStringAmounts(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"json strings", FormatJSON, `{"actions": [{"type": "on page", "feature": "buy tokens", "count": "10"}, {"type": "on page", "feature": "rate", "movie": "Heat", "rate": "4"}]}`},
		{"json numbers", FormatJSON, `{"actions": [{"type": "on page", "feature": "buy tokens", "count": 10}, {"type": "on page", "feature": "rate", "movie": "Heat", "rate": 4}]}`},
		{"yaml strings", FormatYAML, "actions:\n  - type: on page\n    feature: buy tokens\n    count: \"10\"\n  - type: on page\n    feature: rate\n    movie: Heat\n    rate: \"4\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, errs := Parse([]byte(tt.doc), tt.format, "doc", Options{Strict: true, Mode: LoadModeCollectAll})
			require.Empty(t, errs)
			require.Len(t, res.Input.Actions, 2)
			assert.Equal(t, model.Amount(10), res.Input.Actions[0].Count)
			assert.Equal(t, model.Amount(4), res.Input.Actions[1].Rate)
		})
	}
}
