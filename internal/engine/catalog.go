package engine

import (
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
)

// Movie record fields.
const (
	FieldName            = "name"
	FieldYear            = "year"
	FieldDuration        = "duration"
	FieldGenres          = "genres"
	FieldActors          = "actors"
	FieldCountriesBanned = "countriesBanned"
	FieldNumLikes        = "numLikes"
	FieldRating          = "rating"
	FieldNumRatings      = "numRatings"
)

// UnknownRater is the placeholder rating entry every catalog record starts
// with. It never counts toward the average or the rating count.
const UnknownRater = "Unknown"

const ratingSep = ":"

// MovieRecord builds the catalog record for a new movie.
func MovieRecord(m model.Movie) docstore.Record {
	return docstore.Record{
		FieldName:            m.Name,
		FieldYear:            strconv.Itoa(m.Year),
		FieldDuration:        strconv.Itoa(m.Duration),
		FieldGenres:          docstore.EncodeList(m.Genres),
		FieldActors:          docstore.EncodeList(m.Actors),
		FieldCountriesBanned: docstore.EncodeList(m.CountriesBanned),
		FieldNumLikes:        "0",
		FieldRating:          UnknownRater + ratingSep + "0",
		FieldNumRatings:      "0",
	}
}

// Rating is one rater's score.
type Rating struct {
	Rater string
	Score int
}

// ParseRatings decodes a rating field. Malformed entries are skipped.
func ParseRatings(field string) []Rating {
	var out []Rating
	for _, entry := range docstore.DecodeList(field) {
		i := strings.LastIndex(entry, ratingSep)
		if i < 0 {
			continue
		}
		score, err := strconv.Atoi(entry[i+1:])
		if err != nil {
			continue
		}
		out = append(out, Rating{Rater: entry[:i], Score: score})
	}
	return out
}

// EncodeRatings encodes ratings into a rating field.
func EncodeRatings(ratings []Rating) string {
	entries := make([]string, len(ratings))
	for i, r := range ratings {
		entries[i] = r.Rater + ratingSep + strconv.Itoa(r.Score)
	}
	return docstore.EncodeList(entries)
}

// SetRating records rater's score, replacing the rater's previous entry
// if there is one. Reports whether the rater is new.
func SetRating(ratings []Rating, rater string, score int) ([]Rating, bool) {
	for i, r := range ratings {
		if r.Rater == rater {
			ratings[i].Score = score
			return ratings, false
		}
	}
	return append(ratings, Rating{Rater: rater, Score: score}), true
}

// AverageRating returns the mean score and the number of scores, both
// excluding the Unknown placeholder.
func AverageRating(ratings []Rating) (float64, int) {
	sum, n := 0, 0
	for _, r := range ratings {
		if r.Rater == UnknownRater {
			continue
		}
		sum += r.Score
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

// catalog is the movies collection seen through movie semantics.
type catalog struct {
	c *docstore.Collection
}

func (cat catalog) find(name string) (docstore.Record, bool) {
	if cat.c == nil || name == "" {
		return nil, false
	}
	return cat.c.FindOne(FieldName, name)
}

// Lookup implements CatalogLookup.
func (cat catalog) Lookup(name string) (MovieInfo, bool) {
	rec, ok := cat.find(name)
	if !ok {
		return MovieInfo{}, false
	}
	likes, _ := strconv.Atoi(rec[FieldNumLikes])
	return MovieInfo{
		Name:     name,
		Genres:   docstore.DecodeList(rec[FieldGenres]),
		NumLikes: likes,
	}, true
}

// view renders a catalog record.
func view(rec docstore.Record) model.MovieView {
	year, _ := strconv.Atoi(rec[FieldYear])
	duration, _ := strconv.Atoi(rec[FieldDuration])
	likes, _ := strconv.Atoi(rec[FieldNumLikes])
	avg, count := AverageRating(ParseRatings(rec[FieldRating]))
	return model.MovieView{
		Name:            rec[FieldName],
		Year:            year,
		Duration:        duration,
		Genres:          nonNil(docstore.DecodeList(rec[FieldGenres])),
		Actors:          nonNil(docstore.DecodeList(rec[FieldActors])),
		CountriesBanned: nonNil(docstore.DecodeList(rec[FieldCountriesBanned])),
		NumLikes:        likes,
		Rating:          avg,
		NumRatings:      count,
	}
}

// views renders the named movies in order, skipping names the catalog no
// longer has. The result is never nil.
func (cat catalog) views(names []string) []model.MovieView {
	out := make([]model.MovieView, 0, len(names))
	for _, name := range names {
		if rec, ok := cat.find(name); ok {
			out = append(out, view(rec))
		}
	}
	return out
}

// availableTo lists, in catalog order, the movies not banned in country.
func (cat catalog) availableTo(country string) []string {
	if cat.c == nil {
		return nil
	}
	all, _ := cat.c.All()
	var names []string
	for _, rec := range all {
		if !slices.Contains(docstore.DecodeList(rec[FieldCountriesBanned]), country) {
			names = append(names, rec[FieldName])
		}
	}
	return names
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
