package session

// Rules are the platform's prices.
type Rules struct {
	// PremiumCost is the token price of upgrading to premium.
	PremiumCost int `json:"premiumCost" yaml:"premiumCost"`
	// MovieCost is the token price of one movie.
	MovieCost int `json:"movieCost" yaml:"movieCost"`
	// FreePremiumMovies is the free purchase allowance every new account
	// starts with. Only premium accounts can spend it.
	FreePremiumMovies int `json:"freePremiumMovies" yaml:"freePremiumMovies"`
}

// DefaultRules returns the standard price list.
func DefaultRules() Rules {
	return Rules{
		PremiumCost:       10,
		MovieCost:         2,
		FreePremiumMovies: 15,
	}
}
