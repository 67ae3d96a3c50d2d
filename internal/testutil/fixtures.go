package testutil

import (
	"github.com/roach88/streamtv/internal/model"
)

// Catalog returns five movies. Two of them (The Matrix, Ronin) are Action
// movies; Amelie is banned in the US.
func Catalog() []model.Movie {
	return []model.Movie{
		{
			Name: "The Matrix", Year: 1999, Duration: 136,
			Genres:          []string{"Action", "Sci-Fi"},
			Actors:          []string{"Keanu Reeves", "Carrie-Anne Moss"},
			CountriesBanned: []string{},
		},
		{
			Name: "Heat", Year: 1995, Duration: 170,
			Genres:          []string{"Crime", "Drama"},
			Actors:          []string{"Al Pacino", "Robert De Niro"},
			CountriesBanned: []string{},
		},
		{
			Name: "Ronin", Year: 1998, Duration: 122,
			Genres:          []string{"Action", "Thriller"},
			Actors:          []string{"Robert De Niro", "Jean Reno"},
			CountriesBanned: []string{},
		},
		{
			Name: "Alien", Year: 1979, Duration: 117,
			Genres:          []string{"Horror", "Sci-Fi"},
			Actors:          []string{"Sigourney Weaver"},
			CountriesBanned: []string{},
		},
		{
			Name: "Amelie", Year: 2001, Duration: 122,
			Genres:          []string{"Comedy", "Romance"},
			Actors:          []string{"Audrey Tautou"},
			CountriesBanned: []string{"US"},
		},
	}
}

// Users returns three accounts: alice (standard, RO), bob (premium, US)
// and carol (standard, US).
func Users() []model.User {
	return []model.User{
		{Credentials: model.Credentials{Name: "alice", Password: "pw", AccountType: model.AccountStandard, Country: "RO", Balance: 100}},
		{Credentials: model.Credentials{Name: "bob", Password: "secret", AccountType: model.AccountPremium, Country: "US", Balance: 50}},
		{Credentials: model.Credentials{Name: "carol", Password: "pw3", AccountType: model.AccountStandard, Country: "US", Balance: 20}},
	}
}

// Input bundles Users, Catalog and actions.
func Input(actions ...model.Action) model.Input {
	return model.Input{
		Users:   Users(),
		Movies:  Catalog(),
		Actions: actions,
	}
}

// GoTo changes page.
func GoTo(page string) model.Action {
	return model.Action{Type: "change page", Page: page}
}

// SeeDetails opens movie on the details page.
func SeeDetails(movie string) model.Action {
	return model.Action{Type: "change page", Page: "see details", Movie: movie}
}

// Back steps back one page.
func Back() model.Action {
	return model.Action{Type: "back"}
}

// LoginAs logs in from the login page.
func LoginAs(name, password string) model.Action {
	return model.Action{
		Type:        "on page",
		Page:        "login",
		Feature:     "login",
		Credentials: &model.Credentials{Name: name, Password: password},
	}
}

// RegisterAs registers from the register page.
func RegisterAs(c model.Credentials) model.Action {
	return model.Action{Type: "on page", Page: "register", Feature: "register", Credentials: &c}
}

// Login is GoTo("login") followed by LoginAs.
func Login(name, password string) []model.Action {
	return []model.Action{GoTo("login"), LoginAs(name, password)}
}

// SearchFor searches the movies page.
func SearchFor(prefix string) model.Action {
	return model.Action{Type: "on page", Page: "movies", Feature: "search", StartsWith: prefix}
}

// FilterBy filters the movies page.
func FilterBy(f model.Filters) model.Action {
	return model.Action{Type: "on page", Page: "movies", Feature: "filter", Filters: &f}
}

// BuyTokens buys n tokens on the upgrades page.
func BuyTokens(n int) model.Action {
	return model.Action{Type: "on page", Page: "upgrades", Feature: "buy tokens", Count: model.Amount(n)}
}

// BuyPremium upgrades the account on the upgrades page.
func BuyPremium() model.Action {
	return model.Action{Type: "on page", Page: "upgrades", Feature: "buy premium account"}
}

// Purchase buys the movie on the details page.
func Purchase(movie string) model.Action {
	return model.Action{Type: "on page", Page: "see details", Feature: "purchase", Movie: movie}
}

// Watch watches the movie on the details page.
func Watch(movie string) model.Action {
	return model.Action{Type: "on page", Page: "see details", Feature: "watch", Movie: movie}
}

// Like likes the movie on the details page.
func Like(movie string) model.Action {
	return model.Action{Type: "on page", Page: "see details", Feature: "like", Movie: movie}
}

// Rate rates the movie on the details page.
func Rate(movie string, score int) model.Action {
	return model.Action{Type: "on page", Page: "see details", Feature: "rate", Movie: movie, Rate: model.Amount(score)}
}

// Subscribe subscribes to genre from the details page.
func Subscribe(genre string) model.Action {
	return model.Action{Type: "on page", Page: "see details", Feature: "subscribe", SubscribedGenre: genre}
}

// AddMovie adds m to the catalog.
func AddMovie(m model.Movie) model.Action {
	return model.Action{Type: "database", Feature: "add", AddedMovie: &m}
}

// DeleteMovie removes name from the catalog.
func DeleteMovie(name string) model.Action {
	return model.Action{Type: "database", Feature: "delete", DeletedMovie: name}
}

// Seq flattens groups of actions into one list.
func Seq(groups ...[]model.Action) []model.Action {
	var out []model.Action
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// One wraps actions for Seq.
func One(actions ...model.Action) []model.Action {
	return actions
}
