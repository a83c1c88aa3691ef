package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds settings shared by the go-dat commands
type Config struct {
	Output       string   `mapstructure:"output"`
	Workers      int      `mapstructure:"workers"`
	CacheSize    int      `mapstructure:"cache_size"`
	Compression  string   `mapstructure:"compression"`
	FallbackDats []string `mapstructure:"fallback_dats"`
	VerifyMagic  bool     `mapstructure:"verify_magic"`
	Digest       bool     `mapstructure:"digest"`
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", "table")
	v.SetDefault("workers", 4)
	v.SetDefault("cache_size", 32*1024*1024)
	v.SetDefault("compression", "none")
	v.SetDefault("fallback_dats", []string{})
	v.SetDefault("verify_magic", false)
	v.SetDefault("digest", false)
}

// Load reads configuration into v and unmarshals it. configFile, when set,
// replaces the search path lookup.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("dat-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.go-dat")
		v.AddConfigPath("/etc/go-dat")
	}

	SetDefaults(v)

	// Allow environment variables
	v.SetEnvPrefix("DAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q: use table, json or yaml", c.Output)
	}

	switch c.Compression {
	case "none", "zstd":
	default:
		return fmt.Errorf("invalid compression %q: use none or zstd", c.Compression)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative, got %d", c.CacheSize)
	}

	return nil
}
