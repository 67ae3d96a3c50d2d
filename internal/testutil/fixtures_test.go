package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedRunToken(t *testing.T) {
	assert.Equal(t, "run-1", NewFixedRunToken("run-1").Generate())
	assert.Equal(t, DefaultRunToken, NewFixedRunToken("").Generate())
}

func TestCatalog_ActionMovies(t *testing.T) {
	var action []string
	for _, m := range Catalog() {
		for _, g := range m.Genres {
			if g == "Action" {
				action = append(action, m.Name)
			}
		}
	}
	assert.Equal(t, []string{"The Matrix", "Ronin"}, action)
}

func TestSeq(t *testing.T) {
	actions := Seq(Login("alice", "pw"), One(GoTo("movies"), Back()))
	assert.Len(t, actions, 4)
	assert.Equal(t, "login", actions[1].Feature)
	assert.Equal(t, "back", actions[3].Type)
}
