package engine

import (
	"slices"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

func (e *Engine) addMovie(op AddMovie) []model.Record {
	cat := e.movies()
	m := op.Movie
	if cat.c == nil || m.Name == "" {
		return e.reject(op, "cannot add movie")
	}
	if _, exists := cat.find(m.Name); exists {
		return e.reject(op, "movie already in catalog")
	}

	cat.c.Insert(MovieRecord(m))
	e.broadcast(CatalogEvent{
		Kind:            EventAdd,
		Movie:           m.Name,
		Genres:          m.Genres,
		BannedCountries: m.CountriesBanned,
	})
	return nil
}

func (e *Engine) deleteMovie(op DeleteMovie) []model.Record {
	cat := e.movies()
	rec, ok := cat.find(op.Name)
	if !ok {
		return e.reject(op, "movie not in catalog")
	}

	cat.c.Delete(FieldName, op.Name)
	e.broadcast(CatalogEvent{
		Kind:            EventDelete,
		Movie:           op.Name,
		Genres:          docstore.DecodeList(rec[FieldGenres]),
		BannedCountries: docstore.DecodeList(rec[FieldCountriesBanned]),
	})
	return nil
}

// broadcast fans ev out to every stored user and persists each one. The
// active account is represented by its live handle so that in-memory
// session state wins over its (stale) stored record.
func (e *Engine) broadcast(ev CatalogEvent) {
	users := e.users()
	if users == nil {
		e.logger.Warn("users collection missing, event not broadcast", "movie", ev.Movie)
		return
	}

	live := e.session.Account()
	all, _ := users.All()
	handles := make([]*session.Account, 0, len(all))
	for _, rec := range all {
		if live != nil && rec[session.FieldName] == live.Name {
			handles = append(handles, live)
			continue
		}
		acc, err := session.AccountFromRecord(rec)
		if err != nil {
			e.logger.Warn("skipping corrupt user record", "error", err)
			continue
		}
		handles = append(handles, &acc)
	}

	rep := Fanout(ev, handles, e.rules)
	for _, acc := range handles {
		users.Replace(session.FieldName, acc.Name, acc.Record())
	}

	if live != nil {
		switch ev.Kind {
		case EventAdd:
			if !slices.Contains(ev.BannedCountries, live.Country) {
				e.session.AddAvailable(ev.Movie)
			}
		case EventDelete:
			e.session.RemoveAvailable(ev.Movie)
		}
	}

	e.metrics.notified(string(ev.Kind), rep.Notified)
	e.logger.Debug("catalog event",
		"kind", string(ev.Kind),
		"movie", ev.Movie,
		"visited", rep.Visited,
		"skipped", rep.Skipped,
		"refunded", rep.Refunded,
		"notified", rep.Notified,
	)
}
