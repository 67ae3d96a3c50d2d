package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
)

func TestMovieRecord(t *testing.T) {
	rec := MovieRecord(model.Movie{
		Name: "Heat", Year: 1995, Duration: 170,
		Genres: []string{"Crime", "Drama"},
	})
	assert.Equal(t, docstore.Record{
		FieldName:            "Heat",
		FieldYear:            "1995",
		FieldDuration:        "170",
		FieldGenres:          "Crime,Drama",
		FieldActors:          docstore.Null,
		FieldCountriesBanned: docstore.Null,
		FieldNumLikes:        "0",
		FieldRating:          "Unknown:0",
		FieldNumRatings:      "0",
	}, rec)
}

func TestParseRatings(t *testing.T) {
	got := ParseRatings("Unknown:0,alice:3,bad,bob:x,a:b:5")
	assert.Equal(t, []Rating{
		{Rater: "Unknown", Score: 0},
		{Rater: "alice", Score: 3},
		{Rater: "a:b", Score: 5},
	}, got)
	assert.Empty(t, ParseRatings(docstore.Null))
}

func TestSetRating(t *testing.T) {
	ratings := ParseRatings("Unknown:0,alice:3")

	ratings, added := SetRating(ratings, "alice", 5)
	assert.False(t, added)
	assert.Equal(t, "Unknown:0,alice:5", EncodeRatings(ratings))

	// A rater whose name prefixes another's is still a distinct rater.
	ratings, added = SetRating(ratings, "ali", 2)
	assert.True(t, added)
	assert.Equal(t, "Unknown:0,alice:5,ali:2", EncodeRatings(ratings))
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		wantAvg   float64
		wantCount int
	}{
		{"placeholder only", "Unknown:0", 0, 0},
		{"two raters", "Unknown:0,alice:3,bob:5", 4, 2},
		{"one rater", "Unknown:0,alice:2", 2, 1},
		{"empty", docstore.Null, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, n := AverageRating(ParseRatings(tt.field))
			assert.Equal(t, tt.wantAvg, avg)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestCatalog_AvailableToAndViews(t *testing.T) {
	e, store := newTestEngine(t)
	cat := e.movies()

	assert.Equal(t, []string{"The Matrix", "Heat", "Ronin", "Alien"}, cat.availableTo("US"))
	assert.Len(t, cat.availableTo("RO"), 5)

	views := cat.views([]string{"Ronin", "Gone", "Alien"})
	require.Len(t, views, 2)
	assert.Equal(t, "Ronin", views[0].Name)
	assert.Equal(t, []string{}, views[1].CountriesBanned)

	assert.NotNil(t, cat.views(nil))

	info, ok := cat.Lookup("Heat")
	require.True(t, ok)
	assert.Equal(t, MovieInfo{Name: "Heat", Genres: []string{"Crime", "Drama"}}, info)

	store.DropCollection(docstore.Movies)
	_, ok = e.movies().Lookup("Heat")
	assert.False(t, ok)
	assert.Nil(t, e.movies().availableTo("US"))
}
