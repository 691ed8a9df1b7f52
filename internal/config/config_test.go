package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("WORKSPACE_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "learning_companion.db", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.WorkspaceTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WORKSPACE_TTL", "90m")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	cfg := Load()

	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.WorkspaceTTL)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			GeminiAPIKey: "key",
			DBDriver:     DriverSQLite,
			DBDSN:        "file.db",
			Timezone:     "UTC",
			WorkspaceTTL: time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.GeminiAPIKey = "" }, wantKey: "GEMINI_API_KEY"},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantKey: "DB_DRIVER"},
		{name: "empty dsn", mutate: func(c *Config) { c.DBDSN = "" }, wantKey: "DB_DSN"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantKey: "TIMEZONE"},
		{name: "zero ttl", mutate: func(c *Config) { c.WorkspaceTTL = 0 }, wantKey: "WORKSPACE_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}
