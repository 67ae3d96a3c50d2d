package engine

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
)

// NoRecommendation is recommended when no movie qualifies.
const NoRecommendation = "No recommendation"

// RecommendationMessage tags the recommendation in the notification log.
const RecommendationMessage = "Recommendation"

// MovieInfo is what the recommender needs to know about a catalog entry.
type MovieInfo struct {
	Name     string
	Genres   []string
	NumLikes int
}

// CatalogLookup resolves a movie name.
type CatalogLookup interface {
	Lookup(name string) (MovieInfo, bool)
}

// Recommend picks one unwatched movie for a user.
//
// Genres are ranked by how many liked movies carry them (ties by name).
// Available movies are ranked by likes, most liked first, keeping catalog
// order among equals. The first available, unwatched movie carrying the
// best-ranked genre that has any wins. A movie carries a genre when its
// genre string contains it, so "Drama" also matches "Drama-Thriller".
func Recommend(liked, available, watched []string, lookup CatalogLookup) string {
	tally := map[string]int{}
	for _, name := range liked {
		info, ok := lookup.Lookup(name)
		if !ok {
			continue
		}
		for _, g := range info.Genres {
			tally[g]++
		}
	}

	genres := make([]string, 0, len(tally))
	for g := range tally {
		genres = append(genres, g)
	}
	slices.SortFunc(genres, func(a, b string) int {
		if c := cmp.Compare(tally[b], tally[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	candidates := make([]MovieInfo, 0, len(available))
	for _, name := range available {
		if info, ok := lookup.Lookup(name); ok {
			candidates = append(candidates, info)
		}
	}
	slices.SortStableFunc(candidates, func(a, b MovieInfo) int {
		return cmp.Compare(b.NumLikes, a.NumLikes)
	})

	for _, g := range genres {
		for _, m := range candidates {
			if strings.Contains(docstore.EncodeList(m.Genres), g) && !slices.Contains(watched, m.Name) {
				return m.Name
			}
		}
	}
	return NoRecommendation
}

// recommend appends the recommendation to the notification log and
// returns the final snapshot record.
func (e *Engine) recommend(ctx context.Context) model.Record {
	s := e.session
	pick := Recommend(s.Liked(), s.Available(), s.Watched(), e.movies())
	s.Notify(pick, RecommendationMessage)

	outcome := "hit"
	if pick == NoRecommendation {
		outcome = "none"
	}
	e.metrics.recommendation(outcome)
	e.logger.InfoContext(ctx, "recommendation", "user", s.Name(), "movie", pick)

	return model.Record{CurrentUser: e.snapshot()}
}
