// Package config loads plankit settings. Values are layered in priority
// order: defaults, the project config file, environment variables, then
// command-line flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pablasso/plankit/internal/logging"
	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/progress"
	"github.com/pablasso/plankit/internal/validate"
)

// ProjectFiles are the config file names looked up in the working
// directory, in order.
var ProjectFiles = []string{"plankit.toml", ".plankit.toml"}

// Config holds the settings shared by every command.
type Config struct {
	PlanDir        string `toml:"plan_dir"`
	Template       string `toml:"template"`
	HorizonDays    int    `toml:"horizon_days"`
	DependencyMode string `toml:"dependency_mode"`
	Strict         bool   `toml:"strict"`
	LogLevel       string `toml:"log_level"`

	// File is the config file that was loaded, or "".
	File string `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		PlanDir:        plan.DefaultDir,
		Template:       plan.DefaultTemplate,
		HorizonDays:    progress.DefaultHorizonDays,
		DependencyMode: string(validate.DependencyOrdered),
		LogLevel:       "warn",
	}
}

// Load builds the configuration from defaults, a config file and the
// environment. An explicit path must exist; otherwise the project files
// are tried and a missing one is not an error.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findProjectConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		cfg.File = path
	}

	if err := loadFromEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("PLANKIT_PLAN_DIR"); v != "" {
		cfg.PlanDir = v
	}
	if v := getenv("PLANKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("PLANKIT_HORIZON_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PLANKIT_HORIZON_DAYS: %w", err)
		}
		cfg.HorizonDays = n
	}
	return nil
}

// Validate checks the values that have a fixed domain.
func (c *Config) Validate() error {
	if c.PlanDir == "" {
		return fmt.Errorf("plan_dir cannot be empty")
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("horizon_days must not be negative, got %d", c.HorizonDays)
	}
	if _, err := validate.ParseDependencyMode(c.DependencyMode); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Repository returns the plan repository the settings point at.
func (c *Config) Repository() *plan.Repository {
	return plan.NewRepository(c.PlanDir, c.Template)
}

// ValidateOptions returns the validator options from the settings.
func (c *Config) ValidateOptions() validate.Options {
	mode, _ := validate.ParseDependencyMode(c.DependencyMode)
	return validate.Options{Dependencies: mode, Strict: c.Strict}
}

func findProjectConfigFile() string {
	for _, name := range ProjectFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
