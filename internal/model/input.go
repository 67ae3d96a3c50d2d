package model

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Account tiers.
const (
	AccountStandard = "standard"
	AccountPremium  = "premium"
)

// Input is a complete replay document.
type Input struct {
	Users   []User   `json:"users" yaml:"users" validate:"dive"`
	Movies  []Movie  `json:"movies" yaml:"movies" validate:"dive"`
	Actions []Action `json:"actions" yaml:"actions" validate:"dive"`
}

// User is one pre-registered account.
type User struct {
	Credentials Credentials `json:"credentials" yaml:"credentials"`
}

// Credentials identify an account. Login actions only carry Name and
// Password; registration and the user list carry every field.
type Credentials struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Password    string `json:"password" yaml:"password" validate:"required"`
	AccountType string `json:"accountType,omitempty" yaml:"accountType,omitempty"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`
	Balance     Amount `json:"balance,omitempty" yaml:"balance,omitempty" validate:"gte=0"`
}

// Movie is one catalog entry.
type Movie struct {
	Name            string   `json:"name" yaml:"name" validate:"required"`
	Year            int      `json:"year" yaml:"year" validate:"gte=0"`
	Duration        int      `json:"duration" yaml:"duration" validate:"gte=0"`
	Genres          []string `json:"genres" yaml:"genres" validate:"dive,required"`
	Actors          []string `json:"actors" yaml:"actors" validate:"dive,required"`
	CountriesBanned []string `json:"countriesBanned" yaml:"countriesBanned" validate:"dive,required"`
}

// Action is one input instruction. Which fields are meaningful depends on
// Type and Feature.
type Action struct {
	Type            string       `json:"type" yaml:"type" validate:"required"`
	Page            string       `json:"page,omitempty" yaml:"page,omitempty"`
	Movie           string       `json:"movie,omitempty" yaml:"movie,omitempty"`
	Feature         string       `json:"feature,omitempty" yaml:"feature,omitempty"`
	Credentials     *Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	StartsWith      string       `json:"startsWith,omitempty" yaml:"startsWith,omitempty"`
	Filters         *Filters     `json:"filters,omitempty" yaml:"filters,omitempty"`
	Count           Amount       `json:"count,omitempty" yaml:"count,omitempty"`
	Rate            Amount       `json:"rate,omitempty" yaml:"rate,omitempty"`
	SubscribedGenre string       `json:"subscribedGenre,omitempty" yaml:"subscribedGenre,omitempty"`
	AddedMovie      *Movie       `json:"addedMovie,omitempty" yaml:"addedMovie,omitempty"`
	DeletedMovie    string       `json:"deletedMovie,omitempty" yaml:"deletedMovie,omitempty"`
}

// Filters select and order the movies page.
type Filters struct {
	Sort     *SortFilter     `json:"sort,omitempty" yaml:"sort,omitempty"`
	Contains *ContainsFilter `json:"contains,omitempty" yaml:"contains,omitempty"`
}

// Sort directions.
const (
	Increasing = "increasing"
	Decreasing = "decreasing"
)

// SortFilter orders by duration first, then by average rating.
type SortFilter struct {
	Rating   string `json:"rating,omitempty" yaml:"rating,omitempty" validate:"omitempty,oneof=increasing decreasing"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty" validate:"omitempty,oneof=increasing decreasing"`
}

// ContainsFilter keeps movies carrying every listed actor and genre.
type ContainsFilter struct {
	Actors []string `json:"actors,omitempty" yaml:"actors,omitempty"`
	Genre  []string `json:"genre,omitempty" yaml:"genre,omitempty"`
}

// Amount is an integer that documents may spell either as a number or as
// a numeric string ("balance": "100").
type Amount int

// UnmarshalJSON accepts 100 and "100".
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	return a.parse(string(data))
}

// UnmarshalYAML accepts 100 and "100".
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("amount: expected scalar at line %d", node.Line)
	}
	return a.parse(node.Value)
}

func (a *Amount) parse(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("amount: %q is not an integer", s)
	}
	*a = Amount(n)
	return nil
}
