package engine

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Score bounds for Rate.
const (
	MinScore = 1
	MaxScore = 5
)

func (e *Engine) search(op Search) []model.Record {
	if e.session.Page() != session.Movies {
		return e.reject(op, "not on the movies page")
	}
	var matches []string
	for _, name := range e.session.Available() {
		if strings.HasPrefix(name, op.Prefix) {
			matches = append(matches, name)
		}
	}
	return e.success(e.movies().views(matches))
}

func (e *Engine) filter(op Filter) []model.Record {
	if e.session.Page() != session.Movies {
		return e.reject(op, "not on the movies page")
	}

	selected := []model.MovieView{}
	for _, v := range e.movies().views(e.session.Available()) {
		if contains(v, op.Filters.Contains) {
			selected = append(selected, v)
		}
	}
	if op.Filters.Sort != nil {
		slices.SortStableFunc(selected, movieOrder(*op.Filters.Sort))
	}

	e.session.FilterMovies()
	for _, v := range selected {
		e.session.AddFilteredMovie(v.Name)
	}
	return e.success(selected)
}

// contains reports whether every requested actor appears in v's actor
// string and every requested genre in its genre string. Matching is by
// substring on the encoded lists, so "Tom" matches "Tom Hanks".
func contains(v model.MovieView, f *model.ContainsFilter) bool {
	if f == nil {
		return true
	}
	actors := docstore.EncodeList(v.Actors)
	for _, actor := range f.Actors {
		if !strings.Contains(actors, actor) {
			return false
		}
	}
	genres := docstore.EncodeList(v.Genres)
	for _, genre := range f.Genre {
		if !strings.Contains(genres, genre) {
			return false
		}
	}
	return true
}

// movieOrder compares by duration, then by average rating. An empty
// direction skips that key.
func movieOrder(s model.SortFilter) func(a, b model.MovieView) int {
	return func(a, b model.MovieView) int {
		if s.Duration != "" {
			if c := directed(cmp.Compare(a.Duration, b.Duration), s.Duration); c != 0 {
				return c
			}
		}
		if s.Rating != "" {
			return directed(cmp.Compare(a.Rating, b.Rating), s.Rating)
		}
		return 0
	}
}

func directed(c int, direction string) int {
	if direction == model.Decreasing {
		return -c
	}
	return c
}

func (e *Engine) purchase() []model.Record {
	op := Purchase{Movie: e.session.Details()}
	if e.session.Page() != session.Details {
		return e.reject(op, "not on the details page")
	}
	if !e.session.PurchaseMovie(op.Movie) {
		return e.reject(op, "purchase refused")
	}
	return e.success(e.movies().views([]string{op.Movie}))
}

func (e *Engine) watch() []model.Record {
	op := Watch{Movie: e.session.Details()}
	if e.session.Page() != session.Details {
		return e.reject(op, "not on the details page")
	}
	if !e.session.WatchMovie(op.Movie) {
		return e.reject(op, "movie not purchased")
	}
	return e.success(e.movies().views([]string{op.Movie}))
}

func (e *Engine) like(ctx context.Context) []model.Record {
	op := Like{Movie: e.session.Details()}
	if e.session.Page() != session.Details {
		return e.reject(op, "not on the details page")
	}
	cat := e.movies()
	rec, ok := cat.find(op.Movie)
	if !ok {
		return e.noop(ctx, op, op.Movie)
	}

	first := !e.session.HasLiked(op.Movie)
	if !e.session.LikeMovie(op.Movie) {
		return e.reject(op, "movie not watched")
	}
	if first {
		likes, _ := strconv.Atoi(rec[FieldNumLikes])
		cat.c.ModifyField(FieldName, op.Movie, FieldNumLikes, strconv.Itoa(likes+1))
	}
	return e.success(cat.views([]string{op.Movie}))
}

func (e *Engine) rate(ctx context.Context, op Rate) []model.Record {
	op.Movie = e.session.Details()
	if e.session.Page() != session.Details {
		return e.reject(op, "not on the details page")
	}
	if op.Score < MinScore || op.Score > MaxScore {
		return e.reject(op, "score out of range")
	}
	cat := e.movies()
	rec, ok := cat.find(op.Movie)
	if !ok {
		return e.noop(ctx, op, op.Movie)
	}
	if !e.session.RateMovie(op.Movie) {
		return e.reject(op, "movie not watched")
	}

	ratings, _ := SetRating(ParseRatings(rec[FieldRating]), e.session.Name(), op.Score)
	_, count := AverageRating(ratings)
	rec[FieldRating] = EncodeRatings(ratings)
	rec[FieldNumRatings] = strconv.Itoa(count)
	cat.c.Replace(FieldName, op.Movie, rec)

	return e.success(cat.views([]string{op.Movie}))
}

func (e *Engine) subscribe(ctx context.Context, op Subscribe) []model.Record {
	if e.session.Page() != session.Details {
		return e.reject(op, "not on the details page")
	}
	movie := e.session.Details()
	rec, ok := e.movies().find(movie)
	if !ok {
		return e.noop(ctx, op, movie)
	}
	if !slices.Contains(docstore.DecodeList(rec[FieldGenres]), op.Genre) {
		return e.reject(op, "genre not on this movie")
	}
	if !e.session.SubscribeToGenre(op.Genre) {
		return e.reject(op, "already subscribed")
	}
	return nil
}
