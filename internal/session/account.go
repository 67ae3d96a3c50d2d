package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/streamtv/internal/docstore"
)

// User record fields.
const (
	FieldName             = "name"
	FieldPassword         = "password"
	FieldAccountType      = "accountType"
	FieldCountry          = "country"
	FieldBalance          = "balance"
	FieldTokens           = "tokensCount"
	FieldFreePremium      = "numFreePremiumMovies"
	FieldPurchased        = "purchasedMovies"
	FieldWatched          = "watchedMovies"
	FieldLiked            = "likedMovies"
	FieldRated            = "ratedMovies"
	FieldNotifications    = "notifications"
	FieldSubscribedGenres = "subscribedGenres"
)

// Account tiers.
const (
	TierStandard = "standard"
	TierPremium  = "premium"
)

// notificationSep separates the movie from the message in a log entry.
const notificationSep = ";"

// Account is the persisted part of an active identity.
type Account struct {
	Name        string
	Password    string
	AccountType string
	Country     string

	Balance     int
	Tokens      int
	FreePremium int

	Purchased        []string
	Watched          []string
	Liked            []string
	Rated            []string
	Notifications    []string
	SubscribedGenres []string
}

// NewAccount returns a fresh account with no tokens, empty lists and the
// configured free premium allowance.
func NewAccount(name, password, accountType, country string, balance int, rules Rules) Account {
	return Account{
		Name:        name,
		Password:    password,
		AccountType: accountType,
		Country:     country,
		Balance:     balance,
		FreePremium: rules.FreePremiumMovies,
	}
}

// AccountFromRecord hydrates an account from a users record.
func AccountFromRecord(rec docstore.Record) (Account, error) {
	if rec == nil {
		return Account{}, fmt.Errorf("nil user record")
	}

	acc := Account{
		Name:        rec[FieldName],
		Password:    rec[FieldPassword],
		AccountType: rec[FieldAccountType],
		Country:     rec[FieldCountry],
	}
	if acc.Name == "" {
		return Account{}, fmt.Errorf("user record has no %s", FieldName)
	}

	ints := []struct {
		field string
		dst   *int
	}{
		{FieldBalance, &acc.Balance},
		{FieldTokens, &acc.Tokens},
		{FieldFreePremium, &acc.FreePremium},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(rec[f.field])
		if err != nil {
			return Account{}, fmt.Errorf("user %q: field %s: %w", acc.Name, f.field, err)
		}
		*f.dst = n
	}

	acc.Purchased = docstore.DecodeList(rec[FieldPurchased])
	acc.Watched = docstore.DecodeList(rec[FieldWatched])
	acc.Liked = docstore.DecodeList(rec[FieldLiked])
	acc.Rated = docstore.DecodeList(rec[FieldRated])
	acc.Notifications = docstore.DecodeList(rec[FieldNotifications])
	acc.SubscribedGenres = docstore.DecodeList(rec[FieldSubscribedGenres])

	return acc, nil
}

// Record flushes the account into a users record.
func (a Account) Record() docstore.Record {
	return docstore.Record{
		FieldName:             a.Name,
		FieldPassword:         a.Password,
		FieldAccountType:      a.AccountType,
		FieldCountry:          a.Country,
		FieldBalance:          strconv.Itoa(a.Balance),
		FieldTokens:           strconv.Itoa(a.Tokens),
		FieldFreePremium:      strconv.Itoa(a.FreePremium),
		FieldPurchased:        docstore.EncodeList(a.Purchased),
		FieldWatched:          docstore.EncodeList(a.Watched),
		FieldLiked:            docstore.EncodeList(a.Liked),
		FieldRated:            docstore.EncodeList(a.Rated),
		FieldNotifications:    docstore.EncodeList(a.Notifications),
		FieldSubscribedGenres: docstore.EncodeList(a.SubscribedGenres),
	}
}

// IsPremium reports whether the account is on the premium tier.
func (a *Account) IsPremium() bool {
	return a.AccountType == TierPremium
}

// HasPurchased reports whether movie is in the purchased list.
func (a *Account) HasPurchased(movie string) bool {
	return slices.Contains(a.Purchased, movie)
}

// SubscribedToAny reports whether any of genres is a subscribed genre.
func (a *Account) SubscribedToAny(genres []string) bool {
	for _, g := range genres {
		if slices.Contains(a.SubscribedGenres, g) {
			return true
		}
	}
	return false
}

// Refund credits one movie purchase back: a free slot for premium
// accounts, the movie price in tokens for standard ones.
func (a *Account) Refund(rules Rules) {
	switch a.AccountType {
	case TierPremium:
		a.FreePremium++
	case TierStandard:
		a.Tokens += rules.MovieCost
	}
}

// Forget strips movie from every engagement list.
func (a *Account) Forget(movie string) {
	drop := func(s string) bool { return s == movie }
	a.Purchased = slices.DeleteFunc(a.Purchased, drop)
	a.Watched = slices.DeleteFunc(a.Watched, drop)
	a.Liked = slices.DeleteFunc(a.Liked, drop)
	a.Rated = slices.DeleteFunc(a.Rated, drop)
}

// Notify appends an entry to the notification log.
func (a *Account) Notify(movie, message string) {
	a.Notifications = append(a.Notifications, movie+notificationSep+message)
}

// SplitNotification splits a log entry into movie and message.
func SplitNotification(entry string) (movie, message string) {
	movie, message, _ = strings.Cut(entry, notificationSep)
	return movie, message
}
