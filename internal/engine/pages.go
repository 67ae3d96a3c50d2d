package engine

import (
	"slices"

	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Pages each navigation target may be reached from.
var reachableFrom = map[session.Page][]session.Page{
	session.Login:    {session.NoAuth},
	session.Register: {session.NoAuth},
	session.Logout:   {session.Auth, session.Upgrades, session.Details, session.Movies},
	session.Movies:   {session.Auth, session.Details, session.Upgrades, session.Movies},
	session.Details:  {session.Movies},
	session.Upgrades: {session.Auth, session.Details},
}

func (e *Engine) changePage(op ChangePage) []model.Record {
	from := e.session.Page()
	sources, known := reachableFrom[op.Page]
	if !known {
		return e.reject(op, "unknown page")
	}
	if !slices.Contains(sources, from) {
		return e.reject(op, "cannot reach "+op.Page.String()+" from "+from.String())
	}

	switch op.Page {
	case session.Logout:
		e.flush()
		e.session = session.NewGuest()
		e.logger.Debug("logged out")
		return nil

	case session.Movies:
		e.session.ClearFilter()
		e.session.ChangePage(session.Movies)
		return e.success(e.movies().views(e.session.Available()))

	case session.Details:
		if op.Movie == "" || !e.session.CanSee(op.Movie) {
			return e.reject(op, "movie not on the current list")
		}
		rec, ok := e.movies().find(op.Movie)
		if !ok {
			return e.reject(op, "movie not in catalog")
		}
		e.session.ChangePage(session.Details)
		e.session.ShowDetails(op.Movie)
		return e.success([]model.MovieView{view(rec)})

	default:
		// Login, Register, Upgrades: silent on success.
		e.session.ChangePage(op.Page)
		return nil
	}
}

func (e *Engine) back() []model.Record {
	op := Back{}
	if !e.session.IsActive() {
		return e.reject(op, "guest cannot go back")
	}
	if !e.session.ChangePageBack() {
		return e.reject(op, "navigation stack empty")
	}

	switch e.session.Page() {
	case session.Movies:
		return e.success(e.movies().views(e.session.Available()))
	case session.Details:
		return e.success(e.movies().views([]string{e.session.Details()}))
	default:
		return nil
	}
}
