package engine

import (
	"strconv"
	"strings"

	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Op is one executable operation. The set of variants is closed; Execute
// switches over all of them.
type Op interface {
	// Kind names the operation for logs and metrics.
	Kind() string
	isOp()
}

// ChangePage navigates to Page. Movie is the title to open when Page is
// Details.
type ChangePage struct {
	Page  session.Page
	Movie string
}

// Back returns to the previous page.
type Back struct{}

// Register creates an account and logs it in.
type Register struct {
	Credentials model.Credentials
}

// Login authenticates an existing account.
type Login struct {
	Name     string
	Password string
}

// Search lists available movies whose name starts with Prefix.
type Search struct {
	Prefix string
}

// Filter narrows and orders the movies page.
type Filter struct {
	Filters model.Filters
}

// BuyTokens converts balance into tokens.
type BuyTokens struct {
	Count int
}

// BuyPremium upgrades the account.
type BuyPremium struct{}

// Purchase buys the movie on the details page. Movie is the title named by
// the action; the operation acts on the movie currently shown.
type Purchase struct {
	Movie string
}

// Watch watches the movie on the details page.
type Watch struct {
	Movie string
}

// Like likes the movie on the details page.
type Like struct {
	Movie string
}

// Rate rates the movie on the details page.
type Rate struct {
	Movie string
	Score int
}

// Subscribe subscribes to a genre of the movie on the details page.
type Subscribe struct {
	Genre string
}

// AddMovie inserts a catalog entry.
type AddMovie struct {
	Movie model.Movie
}

// DeleteMovie removes a catalog entry.
type DeleteMovie struct {
	Name string
}

// Invalid is an action that cannot be mapped to an operation. It always
// produces the standard error record.
type Invalid struct {
	Reason string
}

func (ChangePage) Kind() string  { return "change page" }
func (Back) Kind() string        { return "back" }
func (Register) Kind() string    { return "register" }
func (Login) Kind() string       { return "login" }
func (Search) Kind() string      { return "search" }
func (Filter) Kind() string      { return "filter" }
func (BuyTokens) Kind() string   { return "buy tokens" }
func (BuyPremium) Kind() string  { return "buy premium account" }
func (Purchase) Kind() string    { return "purchase" }
func (Watch) Kind() string       { return "watch" }
func (Like) Kind() string        { return "like" }
func (Rate) Kind() string        { return "rate" }
func (Subscribe) Kind() string   { return "subscribe" }
func (AddMovie) Kind() string    { return "database add" }
func (DeleteMovie) Kind() string { return "database delete" }
func (Invalid) Kind() string     { return "invalid" }

func (ChangePage) isOp()  {}
func (Back) isOp()        {}
func (Register) isOp()    {}
func (Login) isOp()       {}
func (Search) isOp()      {}
func (Filter) isOp()      {}
func (BuyTokens) isOp()   {}
func (BuyPremium) isOp()  {}
func (Purchase) isOp()    {}
func (Watch) isOp()       {}
func (Like) isOp()        {}
func (Rate) isOp()        {}
func (Subscribe) isOp()   {}
func (AddMovie) isOp()    {}
func (DeleteMovie) isOp() {}
func (Invalid) isOp()     {}

// Action types.
const (
	TypeOnPage   = "on page"
	TypeBack     = "back"
	TypeDatabase = "database"
)

// Decode maps an action descriptor to its operation. Any type other than
// "on page", "back" and "database" is a page change.
func Decode(a model.Action) Op {
	switch normalize(a.Type) {
	case TypeOnPage:
		return decodeFeature(a)
	case TypeBack:
		return Back{}
	case TypeDatabase:
		return decodeDatabase(a)
	default:
		return ChangePage{Page: session.ParsePage(a.Page), Movie: a.Movie}
	}
}

func decodeFeature(a model.Action) Op {
	switch normalize(a.Feature) {
	case "register":
		if a.Credentials == nil {
			return Invalid{Reason: "register without credentials"}
		}
		return Register{Credentials: *a.Credentials}
	case "login":
		if a.Credentials == nil {
			return Invalid{Reason: "login without credentials"}
		}
		return Login{Name: a.Credentials.Name, Password: a.Credentials.Password}
	case "search":
		return Search{Prefix: a.StartsWith}
	case "filter":
		var f model.Filters
		if a.Filters != nil {
			f = *a.Filters
		}
		return Filter{Filters: f}
	case "buy tokens":
		return BuyTokens{Count: int(a.Count)}
	case "buy premium account":
		return BuyPremium{}
	case "purchase":
		return Purchase{Movie: a.Movie}
	case "watch":
		return Watch{Movie: a.Movie}
	case "like":
		return Like{Movie: a.Movie}
	case "rate":
		return Rate{Movie: a.Movie, Score: int(a.Rate)}
	case "subscribe":
		return Subscribe{Genre: a.SubscribedGenre}
	default:
		return Invalid{Reason: "unknown feature " + strconv.Quote(a.Feature)}
	}
}

func decodeDatabase(a model.Action) Op {
	switch normalize(a.Feature) {
	case "add":
		if a.AddedMovie == nil {
			return Invalid{Reason: "database add without addedMovie"}
		}
		return AddMovie{Movie: *a.AddedMovie}
	case "delete":
		return DeleteMovie{Name: a.DeletedMovie}
	default:
		return Invalid{Reason: "unknown database feature " + strconv.Quote(a.Feature)}
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
