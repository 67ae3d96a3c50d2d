package session

import "slices"

// Session is the identity currently connected: a guest or an active
// account. Guests fail every business operation.
type Session struct {
	active  bool
	account Account
	rules   Rules

	page  Page
	stack []Page

	// details is the movie last opened on the details page.
	details string

	available  []string
	filtered   []string
	isFiltered bool
}

// NewGuest returns an unauthenticated session on NoAuth.
func NewGuest() *Session {
	return &Session{page: NoAuth}
}

// NewActive returns an authenticated session on Auth. available lists the
// catalog entries the account may see, in catalog order.
func NewActive(acc Account, available []string, rules Rules) *Session {
	return &Session{
		active:    true,
		account:   acc,
		rules:     rules,
		page:      Auth,
		available: slices.Clone(available),
	}
}

// IsActive reports whether the session is authenticated.
func (s *Session) IsActive() bool {
	return s.active
}

// Page returns the current page.
func (s *Session) Page() Page {
	return s.page
}

// Account returns the live account, or nil for a guest. Mutations through
// the returned pointer are visible to the session.
func (s *Session) Account() *Account {
	if !s.active {
		return nil
	}
	return &s.account
}

// Name returns the account name, or "" for a guest.
func (s *Session) Name() string {
	return s.account.Name
}

// Rules returns the price list the session was created with.
func (s *Session) Rules() Rules {
	return s.rules
}

// Details returns the movie shown on the details page.
func (s *Session) Details() string {
	return s.details
}

// ShowDetails records the movie shown on the details page.
func (s *Session) ShowDetails(movie string) {
	if movie != "" {
		s.details = movie
	}
}

// ChangePage moves to target. Unknown is rejected. The current page is
// pushed onto the navigation stack unless it is a throwaway page.
func (s *Session) ChangePage(target Page) bool {
	if target == Unknown {
		return false
	}
	if !s.page.throwaway() {
		s.stack = append(s.stack, s.page)
	}
	s.page = target
	return true
}

// ChangePageBack returns to the previous page. Stepping back from Details
// to Movies drops the filter.
func (s *Session) ChangePageBack() bool {
	if !s.active || len(s.stack) == 0 {
		return false
	}
	before := s.page
	s.page = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	if before == Details && s.page == Movies {
		s.isFiltered = false
	}
	return true
}

// StackDepth returns the number of pages on the navigation stack.
func (s *Session) StackDepth() int {
	return len(s.stack)
}

// FilterMovies starts a new filtered view, discarding the previous one.
func (s *Session) FilterMovies() {
	s.filtered = s.filtered[:0]
	s.isFiltered = true
}

// AddFilteredMovie appends movie to the filtered view.
func (s *Session) AddFilteredMovie(movie string) {
	s.filtered = append(s.filtered, movie)
}

// AreMoviesFiltered reports whether the movies page shows a filtered view.
func (s *Session) AreMoviesFiltered() bool {
	return s.isFiltered
}

// ClearFilter returns the movies page to the unfiltered view.
func (s *Session) ClearFilter() {
	s.isFiltered = false
}

// Available returns the movies the account may see, in catalog order.
func (s *Session) Available() []string {
	return slices.Clone(s.available)
}

// VisibleMovies returns the filtered view when one is active, otherwise
// the available movies.
func (s *Session) VisibleMovies() []string {
	if s.isFiltered {
		return slices.Clone(s.filtered)
	}
	return s.Available()
}

// CanSee reports whether movie is on the current movies view.
func (s *Session) CanSee(movie string) bool {
	if s.isFiltered {
		return slices.Contains(s.filtered, movie)
	}
	return slices.Contains(s.available, movie)
}

// AddAvailable makes movie visible to the session.
func (s *Session) AddAvailable(movie string) {
	if !s.active || slices.Contains(s.available, movie) {
		return
	}
	s.available = append(s.available, movie)
}

// RemoveAvailable hides movie from the session, filtered view included.
func (s *Session) RemoveAvailable(movie string) {
	if !s.active {
		return
	}
	drop := func(m string) bool { return m == movie }
	s.available = slices.DeleteFunc(s.available, drop)
	s.filtered = slices.DeleteFunc(s.filtered, drop)
}

// Purchased returns the purchased list.
func (s *Session) Purchased() []string { return slices.Clone(s.account.Purchased) }

// Watched returns the watched list.
func (s *Session) Watched() []string { return slices.Clone(s.account.Watched) }

// Liked returns the liked list.
func (s *Session) Liked() []string { return slices.Clone(s.account.Liked) }

// Rated returns the rated list.
func (s *Session) Rated() []string { return slices.Clone(s.account.Rated) }

// HasLiked reports whether movie is in the liked list.
func (s *Session) HasLiked(movie string) bool {
	return slices.Contains(s.account.Liked, movie)
}

// HasRated reports whether movie is in the rated list.
func (s *Session) HasRated(movie string) bool {
	return slices.Contains(s.account.Rated, movie)
}
