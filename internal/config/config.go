// Package config holds bump's runtime configuration, populated from
// .bump.yaml, BUMP_* environment variables, and CLI flags via viper.
package config

import "github.com/spf13/viper"

// Config is the resolved runtime configuration for a bump invocation.
type Config struct {
	// Manifest is the manifest file name looked for in each target
	// directory.
	Manifest string `mapstructure:"manifest"`

	// CommitterName and CommitterEmail override the identity read from each
	// repository's git config.
	CommitterName  string `mapstructure:"committer_name"`
	CommitterEmail string `mapstructure:"committer_email"`

	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("manifest", "Cargo.toml")
	viper.SetDefault("committer_name", "")
	viper.SetDefault("committer_email", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
