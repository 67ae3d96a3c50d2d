package session

// Page is a navigation state.
type Page int

const (
	NoAuth Page = iota
	Login
	Register
	Auth
	Movies
	Details
	Upgrades
	Logout
	Unknown
)

var pageNames = map[Page]string{
	NoAuth:   "no auth",
	Login:    "login",
	Register: "register",
	Auth:     "auth",
	Movies:   "movies",
	Details:  "see details",
	Upgrades: "upgrades",
	Logout:   "logout",
	Unknown:  "unknown",
}

// ParsePage maps a page name from an action to a Page. Only pages a user
// can ask for by name are recognized; everything else is Unknown.
func ParsePage(name string) Page {
	switch name {
	case "login":
		return Login
	case "register":
		return Register
	case "logout":
		return Logout
	case "movies":
		return Movies
	case "see details":
		return Details
	case "upgrades":
		return Upgrades
	default:
		return Unknown
	}
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return "unknown"
}

// throwaway pages are never pushed onto the navigation stack.
func (p Page) throwaway() bool {
	return p == Login || p == NoAuth || p == Register
}
