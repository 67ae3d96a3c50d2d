package model

// ErrorMarker is the error value of every rejected action.
const ErrorMarker = "Error"

// Record is the output of one action.
//
// A nil CurrentMoviesList serializes as null (the end-of-run
// recommendation record); an empty non-nil slice serializes as [].
type Record struct {
	Error             *string     `json:"error" yaml:"error"`
	CurrentMoviesList []MovieView `json:"currentMoviesList" yaml:"currentMoviesList"`
	CurrentUser       *UserView   `json:"currentUser" yaml:"currentUser"`
}

// ErrorRecord returns the standard rejection record: an error marker, an
// empty movie list and no user.
func ErrorRecord() Record {
	msg := ErrorMarker
	return Record{
		Error:             &msg,
		CurrentMoviesList: []MovieView{},
	}
}

// Failed reports whether the record is a rejection.
func (r Record) Failed() bool {
	return r.Error != nil
}

// MovieNames returns the names in CurrentMoviesList, in order.
func (r Record) MovieNames() []string {
	if r.CurrentMoviesList == nil {
		return nil
	}
	names := make([]string, len(r.CurrentMoviesList))
	for i, m := range r.CurrentMoviesList {
		names[i] = m.Name
	}
	return names
}

// MovieView is a catalog entry as shown to a user.
type MovieView struct {
	Name            string   `json:"name" yaml:"name"`
	Year            int      `json:"year" yaml:"year"`
	Duration        int      `json:"duration" yaml:"duration"`
	Genres          []string `json:"genres" yaml:"genres"`
	Actors          []string `json:"actors" yaml:"actors"`
	CountriesBanned []string `json:"countriesBanned" yaml:"countriesBanned"`
	NumLikes        int      `json:"numLikes" yaml:"numLikes"`
	Rating          float64  `json:"rating" yaml:"rating"`
	NumRatings      int      `json:"numRatings" yaml:"numRatings"`
}

// UserView is a snapshot of the active session.
type UserView struct {
	Credentials          CredentialsView `json:"credentials" yaml:"credentials"`
	TokensCount          int             `json:"tokensCount" yaml:"tokensCount"`
	NumFreePremiumMovies int             `json:"numFreePremiumMovies" yaml:"numFreePremiumMovies"`
	PurchasedMovies      []MovieView     `json:"purchasedMovies" yaml:"purchasedMovies"`
	WatchedMovies        []MovieView     `json:"watchedMovies" yaml:"watchedMovies"`
	LikedMovies          []MovieView     `json:"likedMovies" yaml:"likedMovies"`
	RatedMovies          []MovieView     `json:"ratedMovies" yaml:"ratedMovies"`
	Notifications        []Notification  `json:"notifications" yaml:"notifications"`
}

// CredentialsView echoes the account credentials. Balance is rendered as a
// string.
type CredentialsView struct {
	Name        string `json:"name" yaml:"name"`
	Password    string `json:"password" yaml:"password"`
	AccountType string `json:"accountType" yaml:"accountType"`
	Country     string `json:"country" yaml:"country"`
	Balance     string `json:"balance" yaml:"balance"`
}

// Notification is one entry of a user's notification log.
type Notification struct {
	MovieName string `json:"movieName" yaml:"movieName"`
	Message   string `json:"message" yaml:"message"`
}
