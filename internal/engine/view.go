package engine

import (
	"strconv"

	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// snapshot renders the active session, or nil for a guest.
func (e *Engine) snapshot() *model.UserView {
	acc := e.session.Account()
	if acc == nil {
		return nil
	}
	cat := e.movies()

	notes := make([]model.Notification, 0, len(acc.Notifications))
	for _, entry := range acc.Notifications {
		movie, msg := session.SplitNotification(entry)
		notes = append(notes, model.Notification{MovieName: movie, Message: msg})
	}

	return &model.UserView{
		Credentials: model.CredentialsView{
			Name:        acc.Name,
			Password:    acc.Password,
			AccountType: acc.AccountType,
			Country:     acc.Country,
			Balance:     strconv.Itoa(acc.Balance),
		},
		TokensCount:          acc.Tokens,
		NumFreePremiumMovies: acc.FreePremium,
		PurchasedMovies:      cat.views(acc.Purchased),
		WatchedMovies:        cat.views(acc.Watched),
		LikedMovies:          cat.views(acc.Liked),
		RatedMovies:          cat.views(acc.Rated),
		Notifications:        notes,
	}
}
