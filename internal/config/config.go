package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cardroom-server/internal/util"
)

// Config provides configuration for the card room server
type Config struct {
	loaded bool

	// Ante is the amount debited from a player by the ANTE command
	Ante float64 `yaml:"ante" envconfig:"ante"`

	// StartingBalance is the stake every new player starts with
	StartingBalance float64 `yaml:"startingBalance" envconfig:"starting_balance"`

	// DeckLowWater is the deck size at or below which a fresh deck is added
	DeckLowWater int `yaml:"deckLowWater" envconfig:"deck_low_water"`

	// SessionCookie is the name of the session identity cookie
	SessionCookie string `yaml:"sessionCookie" envconfig:"session_cookie"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
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
// A missing config file is not an error; the defaults and environment are used
func Load() error {
	config = Config{}

	configFile := util.Getenv("CARDROOM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		err = yaml.NewDecoder(file).Decode(&config)
		_ = file.Close()
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cardroom", &config); err != nil {
		return err
	}

	config.applyDefaults()
	config.loaded = true
	return nil
}

func (c *Config) applyDefaults() {
	if c.Ante == 0 {
		c.Ante = 5
	}

	if c.StartingBalance == 0 {
		c.StartingBalance = 20
	}

	if c.DeckLowWater == 0 {
		c.DeckLowWater = 5
	}

	if c.SessionCookie == "" {
		c.SessionCookie = "SESSION"
	}
}
