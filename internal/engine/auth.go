package engine

import (
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

func (e *Engine) register(op Register) []model.Record {
	if e.session.Page() != session.Register {
		return e.reject(op, "not on the register page")
	}

	c := op.Credentials
	users := e.users()
	if users == nil || c.Name == "" {
		e.session.ChangePage(session.NoAuth)
		return e.reject(op, "cannot register")
	}
	if _, taken := users.FindOne(session.FieldName, c.Name); taken {
		e.session.ChangePage(session.NoAuth)
		return e.reject(op, "name already registered")
	}

	acc := session.NewAccount(c.Name, c.Password, c.AccountType, c.Country, int(c.Balance), e.rules)
	users.Insert(acc.Record())
	e.logger.Debug("registered", "user", c.Name)

	return e.authenticate(op, c.Name, c.Password)
}

func (e *Engine) login(op Login) []model.Record {
	if e.session.Page() != session.Login {
		return e.reject(op, "not on the login page")
	}
	return e.authenticate(op, op.Name, op.Password)
}

// authenticate replaces the guest with an active session for name. On
// failure the guest is sent back to NoAuth.
func (e *Engine) authenticate(op Op, name, password string) []model.Record {
	fail := func(reason string) []model.Record {
		e.session.ChangePage(session.NoAuth)
		return e.reject(op, reason)
	}

	users := e.users()
	if users == nil {
		return fail("users collection missing")
	}
	rec, ok := users.FindOne(session.FieldName, name)
	if !ok || rec[session.FieldPassword] != password {
		return fail("bad credentials")
	}
	acc, err := session.AccountFromRecord(rec)
	if err != nil {
		e.logger.Warn("corrupt user record", "user", name, "error", err)
		return fail("corrupt user record")
	}

	e.session = session.NewActive(acc, e.movies().availableTo(acc.Country), e.rules)
	e.logger.Debug("logged in", "user", name, "available", len(e.session.Available()))
	return e.success([]model.MovieView{})
}
