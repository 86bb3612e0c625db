// Package config loads run settings from defaults, an optional YAML file and
// SAI_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/cwbudde/saisearch/internal/opt"
	"github.com/cwbudde/saisearch/internal/search"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Search SearchConfig `mapstructure:"search"`
	Refine RefineConfig `mapstructure:"refine"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type SearchConfig struct {
	TargetCooling       float64 `mapstructure:"target_cooling"`
	MaxOzoneDepletion   float64 `mapstructure:"max_ozone_depletion"`
	TotalInjectionLimit float64 `mapstructure:"total_injection_limit"`
	SimulationYears     float64 `mapstructure:"simulation_years"`
	Workers             int     `mapstructure:"workers"`
}

// Params converts the search section to search parameters.
func (s SearchConfig) Params() search.Params {
	return search.Params{
		TargetCooling:       s.TargetCooling,
		MaxOzoneDepletion:   s.MaxOzoneDepletion,
		TotalInjectionLimit: s.TotalInjectionLimit,
		SimulationYears:     s.SimulationYears,
	}
}

type RefineConfig struct {
	Enabled    bool  `mapstructure:"enabled"`
	Iterations int   `mapstructure:"iterations"`
	Population int   `mapstructure:"population"`
	Seed       int64 `mapstructure:"seed"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxPrint int    `mapstructure:"max_print"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from defaults, file and environment.
func Load(file string) (*Config, error) {
	v := New()
	if err := ReadFile(v, file); err != nil {
		return nil, err
	}
	return Decode(v)
}

// ReadFile merges a YAML config file into v. When file is empty,
// saisearch.yaml is looked up in the working directory and ./configs; a
// missing file is not an error in that case.
func ReadFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName("saisearch")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing
	return nil
}

// New returns a viper instance with defaults and environment binding applied.
// Environment variables take the SAI_ prefix: SAI_SEARCH_TARGET_COOLING → search.target_cooling.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("search.target_cooling", 0.5)
	v.SetDefault("search.max_ozone_depletion", 50.0)
	v.SetDefault("search.total_injection_limit", 10.0)
	v.SetDefault("search.simulation_years", 2.0)
	v.SetDefault("search.workers", 1)
	v.SetDefault("refine.enabled", false)
	v.SetDefault("refine.iterations", 200)
	v.SetDefault("refine.population", 30)
	v.SetDefault("refine.seed", 42)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.max_print", 0)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("SAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Decode unmarshals and validates v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings the search cannot interpret. Non-positive
// injection limits and years are accepted; they yield an empty result.
func (c *Config) Validate() error {
	var errs []string

	if c.Search.Workers < 1 {
		errs = append(errs, fmt.Sprintf("search.workers must be >= 1, got %d", c.Search.Workers))
	}
	if c.Refine.Enabled {
		if c.Refine.Iterations <= 0 {
			errs = append(errs, "refine.iterations must be positive")
		}
		if c.Refine.Population < opt.MinPopulation {
			errs = append(errs, fmt.Sprintf("refine.population must be >= %d, got %d", opt.MinPopulation, c.Refine.Population))
		}
	}
	if c.Output.MaxPrint < 0 {
		errs = append(errs, "output.max_print cannot be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
