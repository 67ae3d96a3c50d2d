// Package config loads streamtv settings.
//
// Precedence, highest first: command-line flags bound with BindFlag,
// STREAMTV_* environment variables (dots become underscores, so
// rules.movie_cost is STREAMTV_RULES_MOVIE_COST), the optional YAML config
// file, then built-in defaults.
package config
