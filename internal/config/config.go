package config

import (
	"fmt"
	"strings"

	"github.com/compozy/latest-tag/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	ReleaseBranch    string `mapstructure:"release_branch"`
	TagPrefix        string `mapstructure:"tag_prefix"`
	PrereleaseSuffix string `mapstructure:"prerelease_suffix"`
	MatchMode        string `mapstructure:"match_mode"`
	OutputPath       string `mapstructure:"output_path"`
	Verbose          bool   `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		PrereleaseSuffix: domain.DefaultPrereleaseSuffix,
		MatchMode:        string(domain.MatchModeGlob),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch domain.MatchMode(c.MatchMode) {
	case domain.MatchModeGlob, domain.MatchModeRegex:
	default:
		return &domain.ConfigurationError{
			Field:  "match_mode",
			Reason: fmt.Sprintf("must be %q or %q", domain.MatchModeGlob, domain.MatchModeRegex),
		}
	}
	if c.PrereleaseSuffix == "" {
		return &domain.ConfigurationError{Field: "prerelease_suffix", Reason: "cannot be empty"}
	}
	// release_branch may still arrive from a flag, so emptiness is checked
	// at run time, not here.
	return nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".latest-tag")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	// Configure environment variables
	viper.SetEnvPrefix("LATEST_TAG")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	if err := viper.BindEnv("output_path", "GITHUB_OUTPUT", "LATEST_TAG_OUTPUT_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind output_path env: %w", err)
	}
	if err := viper.BindEnv("release_branch", "LATEST_TAG_RELEASE_BRANCH"); err != nil {
		return nil, fmt.Errorf("failed to bind release_branch env: %w", err)
	}
	if err := viper.BindEnv("tag_prefix", "LATEST_TAG_TAG_PREFIX"); err != nil {
		return nil, fmt.Errorf("failed to bind tag_prefix env: %w", err)
	}
	if err := viper.BindEnv("prerelease_suffix", "LATEST_TAG_PRERELEASE_SUFFIX"); err != nil {
		return nil, fmt.Errorf("failed to bind prerelease_suffix env: %w", err)
	}
	if err := viper.BindEnv("match_mode", "LATEST_TAG_MATCH_MODE"); err != nil {
		return nil, fmt.Errorf("failed to bind match_mode env: %w", err)
	}
	// Set defaults
	defaults := DefaultConfig()
	viper.SetDefault("prerelease_suffix", defaults.PrereleaseSuffix)
	viper.SetDefault("match_mode", defaults.MatchMode)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
