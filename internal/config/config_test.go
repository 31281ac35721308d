package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:      "8375",
			JWTSecret: "a-secret-long-enough-for-production-use",
			Env:       "development",
		}
	}

	t.Run("development accepts defaults", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing essentials rejected", func(t *testing.T) {
		cfg := base()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())

		cfg = base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "sturdy-db-password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secret", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "sturdy-db-password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production accepts a hardened config", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = strings.Repeat("s", 48)
		cfg.DBPassword = "sturdy-db-password"
		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}

func TestFlagEnabled(t *testing.T) {
	cfg := &Config{FeatureFlags: "recommend_exclude_pending=on, other_flag=off,third=true"}

	assert.True(t, cfg.FlagEnabled("recommend_exclude_pending"))
	assert.True(t, cfg.FlagEnabled("third"))
	assert.False(t, cfg.FlagEnabled("other_flag"))
	assert.False(t, cfg.FlagEnabled("unknown"))
	assert.False(t, (&Config{}).FlagEnabled("recommend_exclude_pending"))
}
