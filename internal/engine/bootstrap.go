package engine

import (
	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Bootstrap creates the users and movies collections and seeds them from
// the input document.
func Bootstrap(s *docstore.Store, in model.Input, rules session.Rules) error {
	s.CreateCollection(docstore.Users)
	s.CreateCollection(docstore.Movies)

	users, err := s.MustCollection(docstore.Users)
	if err != nil {
		return NewMissingCollectionError(docstore.Users, err)
	}
	for i, u := range in.Users {
		c := u.Credentials
		if c.Name == "" {
			return NewInvalidInputError("users[%d]: empty name", i)
		}
		acc := session.NewAccount(c.Name, c.Password, c.AccountType, c.Country, int(c.Balance), rules)
		users.Insert(acc.Record())
	}

	movies, err := s.MustCollection(docstore.Movies)
	if err != nil {
		return NewMissingCollectionError(docstore.Movies, err)
	}
	for i, m := range in.Movies {
		if m.Name == "" {
			return NewInvalidInputError("movies[%d]: empty name", i)
		}
		movies.Insert(MovieRecord(m))
	}
	return nil
}
