package engine

import (
	"slices"

	"github.com/roach88/streamtv/internal/session"
)

// EventKind is the kind of catalog mutation being broadcast.
type EventKind string

const (
	EventAdd    EventKind = "ADD"
	EventDelete EventKind = "DELETE"
)

// CatalogEvent describes one catalog mutation.
type CatalogEvent struct {
	Kind            EventKind
	Movie           string
	Genres          []string
	BannedCountries []string
}

// FanoutReport counts what a broadcast did.
type FanoutReport struct {
	Visited  int
	Skipped  int
	Refunded int
	Notified int
}

// Fanout applies ev to every account handle. Users in a banned country
// are skipped. On delete, purchasers are refunded and the movie is
// stripped from their lists. Users subscribed to one of the movie's
// genres get a notification.
//
// Handles are independent; the order they are visited in does not change
// the outcome.
func Fanout(ev CatalogEvent, handles []*session.Account, rules session.Rules) FanoutReport {
	var rep FanoutReport
	for _, acc := range handles {
		if acc == nil {
			continue
		}
		rep.Visited++
		if slices.Contains(ev.BannedCountries, acc.Country) {
			rep.Skipped++
			continue
		}

		if ev.Kind == EventDelete && acc.HasPurchased(ev.Movie) {
			acc.Refund(rules)
			acc.Forget(ev.Movie)
			rep.Refunded++
		}

		if acc.SubscribedToAny(ev.Genres) {
			acc.Notify(ev.Movie, string(ev.Kind))
			rep.Notified++
		}
	}
	return rep
}
