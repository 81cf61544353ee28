package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetEnv(t *testing.T) {
	t.Helper()
	viper.Reset()
	for _, key := range []string{
		"GITHUB_OUTPUT",
		"LATEST_TAG_OUTPUT_PATH",
		"LATEST_TAG_RELEASE_BRANCH",
		"LATEST_TAG_TAG_PREFIX",
		"LATEST_TAG_PRERELEASE_SUFFIX",
		"LATEST_TAG_MATCH_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		resetEnv(t)
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "prerelease", cfg.PrereleaseSuffix)
		assert.Equal(t, "glob", cfg.MatchMode)
		assert.Empty(t, cfg.ReleaseBranch)
		assert.Empty(t, cfg.TagPrefix)
	})
	t.Run("Should read output path from GITHUB_OUTPUT", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("GITHUB_OUTPUT", "/tmp/github_output")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/github_output", cfg.OutputPath)
	})
	t.Run("Should prefer GITHUB_OUTPUT over the prefixed variable", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("GITHUB_OUTPUT", "/tmp/github_output")
		t.Setenv("LATEST_TAG_OUTPUT_PATH", "/tmp/other")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/github_output", cfg.OutputPath)
	})
	t.Run("Should read settings from prefixed environment variables", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("LATEST_TAG_RELEASE_BRANCH", "main")
		t.Setenv("LATEST_TAG_TAG_PREFIX", "release-")
		t.Setenv("LATEST_TAG_PRERELEASE_SUFFIX", "beta")
		t.Setenv("LATEST_TAG_MATCH_MODE", "regex")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "main", cfg.ReleaseBranch)
		assert.Equal(t, "release-", cfg.TagPrefix)
		assert.Equal(t, "beta", cfg.PrereleaseSuffix)
		assert.Equal(t, "regex", cfg.MatchMode)
	})
	t.Run("Should reject unknown match mode", func(t *testing.T) {
		resetEnv(t)
		t.Setenv("LATEST_TAG_MATCH_MODE", "fuzzy")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "match_mode")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Should accept default config", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})
	t.Run("Should reject empty prerelease suffix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PrereleaseSuffix = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prerelease_suffix")
	})
}
