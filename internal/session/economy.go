package session

import "slices"

// BuyTokens converts n units of balance into n tokens.
func (s *Session) BuyTokens(n int) bool {
	if !s.active || n <= 0 || s.account.Balance < n {
		return false
	}
	s.account.Balance -= n
	s.account.Tokens += n
	return true
}

// BuyPremiumAccount spends the premium price in tokens and upgrades the
// account.
func (s *Session) BuyPremiumAccount() bool {
	if !s.active || s.account.Tokens < s.rules.PremiumCost {
		return false
	}
	s.account.Tokens -= s.rules.PremiumCost
	s.account.AccountType = TierPremium
	return true
}

// PurchaseMovie buys movie. Premium accounts spend a free slot when they
// have one and tokens otherwise; standard accounts always pay tokens.
func (s *Session) PurchaseMovie(movie string) bool {
	if !s.active || movie == "" {
		return false
	}
	if !slices.Contains(s.available, movie) || s.account.HasPurchased(movie) {
		return false
	}

	acc := &s.account
	cost := s.rules.MovieCost
	switch acc.AccountType {
	case TierPremium:
		switch {
		case acc.FreePremium > 0:
			acc.FreePremium--
		case acc.Tokens >= cost:
			acc.Tokens -= cost
		default:
			return false
		}
	case TierStandard:
		if acc.Tokens < cost {
			return false
		}
		acc.Tokens -= cost
	default:
		return false
	}

	acc.Purchased = append(acc.Purchased, movie)
	return true
}

// WatchMovie marks a purchased movie as watched. Watching twice succeeds
// without a duplicate entry.
func (s *Session) WatchMovie(movie string) bool {
	if !s.active || movie == "" || !s.account.HasPurchased(movie) {
		return false
	}
	s.account.Watched = appendOnce(s.account.Watched, movie)
	return true
}

// LikeMovie marks a watched movie as liked. Idempotent.
func (s *Session) LikeMovie(movie string) bool {
	if !s.watched(movie) {
		return false
	}
	s.account.Liked = appendOnce(s.account.Liked, movie)
	return true
}

// RateMovie marks a watched movie as rated. Idempotent; the score itself
// is kept in the catalog.
func (s *Session) RateMovie(movie string) bool {
	if !s.watched(movie) {
		return false
	}
	s.account.Rated = appendOnce(s.account.Rated, movie)
	return true
}

// SubscribeToGenre subscribes to notifications for genre. Subscribing to
// the same genre twice fails.
func (s *Session) SubscribeToGenre(genre string) bool {
	if !s.active || genre == "" || slices.Contains(s.account.SubscribedGenres, genre) {
		return false
	}
	s.account.SubscribedGenres = append(s.account.SubscribedGenres, genre)
	return true
}

// Notify appends an entry to the account's notification log.
func (s *Session) Notify(movie, message string) {
	if s.active {
		s.account.Notify(movie, message)
	}
}

func (s *Session) watched(movie string) bool {
	return s.active && movie != "" && slices.Contains(s.account.Watched, movie)
}

func appendOnce(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
