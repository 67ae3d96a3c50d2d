package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/streamtv/internal/session"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STREAMTV"

// Config keys.
const (
	KeyPremiumCost       = "rules.premium_cost"
	KeyMovieCost         = "rules.movie_cost"
	KeyFreePremiumMovies = "rules.free_premium_movies"
	KeyJournalPath       = "journal.path"
	KeyMetricsPath       = "metrics.path"
	KeyOutputPretty      = "output.pretty"
)

// Config holds all settings.
type Config struct {
	Rules   RulesConfig   `mapstructure:"rules"`
	Journal JournalConfig `mapstructure:"journal"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Output  OutputConfig  `mapstructure:"output"`
}

// RulesConfig is the price list.
type RulesConfig struct {
	PremiumCost       int `mapstructure:"premium_cost"`
	MovieCost         int `mapstructure:"movie_cost"`
	FreePremiumMovies int `mapstructure:"free_premium_movies"`
}

// JournalConfig locates the run journal. An empty path disables it.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig locates the Prometheus textfile written after a run. An
// empty path disables it.
type MetricsConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig controls the output document.
type OutputConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// Session converts the price list for the engine.
func (r RulesConfig) Session() session.Rules {
	return session.Rules{
		PremiumCost:       r.PremiumCost,
		MovieCost:         r.MovieCost,
		FreePremiumMovies: r.FreePremiumMovies,
	}
}

// Loader resolves a Config from defaults, file, environment and flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults and environment overrides
// installed.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := session.DefaultRules()
	v.SetDefault(KeyPremiumCost, def.PremiumCost)
	v.SetDefault(KeyMovieCost, def.MovieCost)
	v.SetDefault(KeyFreePremiumMovies, def.FreePremiumMovies)
	v.SetDefault(KeyJournalPath, "")
	v.SetDefault(KeyMetricsPath, "")
	v.SetDefault(KeyOutputPretty, false)

	return &Loader{v: v}
}

// BindFlag lets flag override key when it is set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads the config file at path, if any, and returns the validated
// result.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	def := session.DefaultRules()
	return &Config{
		Rules: RulesConfig{
			PremiumCost:       def.PremiumCost,
			MovieCost:         def.MovieCost,
			FreePremiumMovies: def.FreePremiumMovies,
		},
	}
}

// Validate rejects negative prices.
func (c *Config) Validate() error {
	var errs []error
	if c.Rules.PremiumCost < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyPremiumCost, c.Rules.PremiumCost))
	}
	if c.Rules.MovieCost < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyMovieCost, c.Rules.MovieCost))
	}
	if c.Rules.FreePremiumMovies < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyFreePremiumMovies, c.Rules.FreePremiumMovies))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
