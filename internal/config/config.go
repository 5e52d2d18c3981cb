package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"schafkopf-server/internal/util"
	"schafkopf-server/pkg/playable/schafkopf"
)

// Config provides configuration for the Schafkopf server
type Config struct {
	loaded bool

	Log struct {
		Level string `yaml:"level" envconfig:"level"`
	} `yaml:"log"`

	Game struct {
		SauspielValue int   `yaml:"sauspielValue" envconfig:"sauspiel_value"`
		SoloValue     int   `yaml:"soloValue" envconfig:"solo_value"`
		LaufendeValue int   `yaml:"laufendeValue" envconfig:"laufende_value"`
		Seed          int64 `yaml:"seed" envconfig:"seed"`
	} `yaml:"game"`
}

var config Config

// DefaultConfig returns the configuration with the standard tariffs
func DefaultConfig() Config {
	var c Config
	opts := schafkopf.DefaultOptions()
	c.Log.Level = "info"
	c.Game.SauspielValue = opts.SauspielValue
	c.Game.SoloValue = opts.SoloValue
	c.Game.LaufendeValue = opts.LaufendeValue

	return c
}

// GameOptions converts the configured tariffs into game options
func (c Config) GameOptions() schafkopf.Options {
	return schafkopf.Options{
		SauspielValue: c.Game.SauspielValue,
		SoloValue:     c.Game.SoloValue,
		LaufendeValue: c.Game.LaufendeValue,
		Seed:          c.Game.Seed,
	}
}

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

// Load will load the configuration. A missing config file is not an error;
// the defaults apply and the environment may still override them.
func Load() error {
	loaded := DefaultConfig()

	configFile := util.Getenv("SCHAFKOPF_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&loaded); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("schafkopf", &loaded); err != nil {
		return err
	}

	loaded.loaded = true
	config = loaded

	return nil
}
