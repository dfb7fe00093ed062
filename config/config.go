package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"growth/meta"
	"growth/searcher"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is one run of the driver. Field names double as viper keys, YAML
// keys of the config file and, upper-cased with a GROWTH_ prefix, env vars.
type Config struct {
	Goroutines int           `mapstructure:"goroutines" yaml:"goroutines"`
	Budget     time.Duration `mapstructure:"budget" yaml:"budget"`
	MinDepth   int           `mapstructure:"min-depth" yaml:"min-depth"`
	MaxDepth   int           `mapstructure:"max-depth" yaml:"max-depth"` // 0 means unbounded
	TopMoves   int           `mapstructure:"top-moves" yaml:"top-moves"`
	Depth      int           `mapstructure:"depth" yaml:"depth"` // Fixed depth of self-play moves
	Games      int           `mapstructure:"games" yaml:"games"`
	Seed       uint64        `mapstructure:"seed" yaml:"seed"` // 0 draws a fresh seed
	Board      string        `mapstructure:"board" yaml:"board"`
	Metrics    bool          `mapstructure:"metrics" yaml:"metrics"`
	OutputDir  string        `mapstructure:"output-dir" yaml:"output-dir"`
	LogLevel   string        `mapstructure:"log-level" yaml:"log-level"`
}

// New returns a viper instance holding the defaults and reading GROWTH_*
// environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("goroutines", meta.GOROUTINES)
	v.SetDefault("budget", meta.BUDGET)
	v.SetDefault("min-depth", meta.MIN_DEPTH)
	v.SetDefault("max-depth", 0)
	v.SetDefault("top-moves", meta.TOP_MOVES)
	v.SetDefault("depth", meta.MIN_DEPTH)
	v.SetDefault("games", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("board", "")
	v.SetDefault("metrics", false)
	v.SetDefault("output-dir", "results")
	v.SetDefault("log-level", zerolog.InfoLevel.String())

	v.SetEnvPrefix("growth")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags lets flags that were set on the command line override the file
// and the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

// Load reads the optional YAML file and decodes the merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Goroutines < 1:
		return fmt.Errorf("%w: goroutines must be positive, got %d", ErrInvalid, c.Goroutines)
	case c.Budget <= 0:
		return fmt.Errorf("%w: budget must be positive, got %s", ErrInvalid, c.Budget)
	case c.MinDepth < 1:
		return fmt.Errorf("%w: min-depth must be positive, got %d", ErrInvalid, c.MinDepth)
	case c.MaxDepth < 0, c.MaxDepth > 0 && c.MaxDepth < c.MinDepth:
		return fmt.Errorf("%w: max-depth %d must be 0 or at least min-depth %d", ErrInvalid, c.MaxDepth, c.MinDepth)
	case c.TopMoves < 1:
		return fmt.Errorf("%w: top-moves must be positive, got %d", ErrInvalid, c.TopMoves)
	case c.Depth < 1:
		return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalid, c.Depth)
	case c.Games < 1:
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalid, c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level; Validate has already checked it.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// SearcherOptions maps the search settings onto searcher options.
func (c Config) SearcherOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDuration(c.Budget),
		searcher.WithMinDepth(c.MinDepth),
		searcher.WithTopMoves(c.TopMoves),
	}
	if c.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(c.MaxDepth))
	}
	if c.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return options
}

// NewSearcher builds a searcher for the configured worker count.
func (c Config) NewSearcher() *searcher.Searcher {
	return searcher.NewSearcher(c.Goroutines, c.SearcherOptions()...)
}
