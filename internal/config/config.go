package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-server/internal/util"
)

// Config provides configuration for the Hold'em server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Table  struct {
		Seats         int           `yaml:"seats" envconfig:"seats"`
		StartingStack int           `yaml:"startingStack" envconfig:"starting_stack"`
		Seed          int64         `yaml:"seed" envconfig:"seed"`
		TurnTimeout   time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
		JoinTimeout   time.Duration `yaml:"joinTimeout" envconfig:"join_timeout"`
	} `yaml:"table"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Tickets struct {
		Enabled bool          `yaml:"enabled" envconfig:"enabled"`
		Secret  string        `yaml:"secret" envconfig:"secret"`
		TTL     time.Duration `yaml:"ttl" envconfig:"ttl"`
	} `yaml:"tickets"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

// DefaultConfig returns the configuration used for any value not set in the file or the environment
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Addr = ":5000"
	cfg.Table.Seats = 6
	cfg.Table.StartingStack = 100
	cfg.Table.TurnTimeout = 30 * time.Second
	cfg.Table.JoinTimeout = 2 * time.Minute
	cfg.Log.Level = "info"
	cfg.Tickets.TTL = time.Hour
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return cfg
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// Validate checks the values that the table cannot start without
func (c Config) Validate() error {
	if c.Table.Seats < 2 || c.Table.Seats > 6 {
		return fmt.Errorf("table.seats must be between 2 and 6, got %d", c.Table.Seats)
	}

	if c.Table.StartingStack <= 0 {
		return fmt.Errorf("table.startingStack must be > 0, got %d", c.Table.StartingStack)
	}

	// every chip at the table has to fit in a 32-bit frame field
	if c.Table.StartingStack > math.MaxInt32/c.Table.Seats {
		return fmt.Errorf("table.startingStack * table.seats must not exceed %d", math.MaxInt32)
	}

	if c.Table.TurnTimeout < 0 || c.Table.JoinTimeout < 0 {
		return errors.New("timeouts cannot be negative")
	}

	return nil
}
