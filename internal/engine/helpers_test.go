package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
	"github.com/roach88/streamtv/internal/testutil"
)

// newTestEngine bootstraps the fixture catalog and users.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *docstore.Store) {
	t.Helper()
	store := docstore.New()
	e := New(store, opts...)
	require.NoError(t, Bootstrap(store, testutil.Input(), e.Rules()))
	return e, store
}

func run(t *testing.T, e *Engine, actions ...[]model.Action) []model.Record {
	t.Helper()
	out, err := e.Run(context.Background(), testutil.Seq(actions...))
	require.NoError(t, err)
	return out
}

func simulate(t *testing.T, actions []model.Action, opts ...Option) *Result {
	t.Helper()
	res, err := Simulate(context.Background(), testutil.Input(actions...), opts...)
	require.NoError(t, err)
	return res
}

func userRecord(t *testing.T, users []docstore.Record, name string) docstore.Record {
	t.Helper()
	for _, u := range users {
		if u[session.FieldName] == name {
			return u
		}
	}
	t.Fatalf("user %q not found", name)
	return nil
}

func movieNames(views []model.MovieView) []string {
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	return names
}

func notificationPairs(notes []model.Notification) [][2]string {
	out := make([][2]string, len(notes))
	for i, n := range notes {
		out[i] = [2]string{n.MovieName, n.Message}
	}
	return out
}

// buyAndWatch logs in from the current page up to having watched movie.
func buyAndWatch(name, password string, tokens int, movie string) []model.Action {
	return testutil.Seq(
		testutil.Login(name, password),
		testutil.One(
			testutil.GoTo("upgrades"),
			testutil.BuyTokens(tokens),
			testutil.GoTo("movies"),
			testutil.SeeDetails(movie),
			testutil.Purchase(movie),
			testutil.Watch(movie),
		),
	)
}
