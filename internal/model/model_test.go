package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAmount_JSON(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    Amount
		wantErr bool
	}{
		{"number", `{"balance": 120}`, 120, false},
		{"string", `{"balance": "120"}`, 120, false},
		{"null", `{"balance": null}`, 0, false},
		{"garbage", `{"balance": "lots"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Credentials
			err := json.Unmarshal([]byte(tt.doc), &c)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Balance)
		})
	}
}

func TestAmount_YAML(t *testing.T) {
	var c Credentials
	require.NoError(t, yaml.Unmarshal([]byte("name: a\npassword: b\nbalance: \"75\"\n"), &c))
	assert.Equal(t, Amount(75), c.Balance)

	require.NoError(t, yaml.Unmarshal([]byte("balance: 30\n"), &c))
	assert.Equal(t, Amount(30), c.Balance)

	assert.Error(t, yaml.Unmarshal([]byte("balance: [1]\n"), &c))
}

func TestErrorRecord_Shape(t *testing.T) {
	rec := ErrorRecord()
	assert.True(t, rec.Failed())

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Error","currentMoviesList":[],"currentUser":null}`, string(data))
}

func TestRecord_NullMovieList(t *testing.T) {
	rec := Record{CurrentUser: &UserView{}}
	assert.False(t, rec.Failed())
	assert.Nil(t, rec.MovieNames())

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currentMoviesList":null`)
}

func TestRecord_MovieNames(t *testing.T) {
	rec := Record{CurrentMoviesList: []MovieView{{Name: "Heat"}, {Name: "Ronin"}}}
	assert.Equal(t, []string{"Heat", "Ronin"}, rec.MovieNames())
}
