// nolint: funlen
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviebuffs/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":           "test",
			"PORT":              "9090",
			"SENTRY_DSN":        "https://test@sentry.io/123",
			"ALLOW_ORIGINS":     "https://moviebuffs.example",
			"DB_DRIVER":         "postgres",
			"DB_NAME":           "moviebuffs",
			"DB_HOST":           "localhost",
			"DB_PORT":           "5433",
			"DB_USER":           "buff",
			"DB_PASS":           "secret",
			"ENABLE_SSL":        "true",
			"PAGE_DEFAULT_SIZE": "50",
			"PAGE_MAX_SIZE":     "500",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, ":9090", cfg.Addr())
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "https://moviebuffs.example", cfg.AllowOrigins)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, "moviebuffs", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5433, cfg.DB.Port)
		assert.Equal(t, "buff", cfg.DB.User)
		assert.Equal(t, "secret", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, 50, cfg.Paging.DefaultSize)
		assert.Equal(t, 500, cfg.Paging.MaxSize)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "movies", cfg.DynamoDB.MoviesTable)
		assert.Equal(t, "genres", cfg.DynamoDB.GenresTable)
		assert.Equal(t, 25, cfg.Paging.DefaultSize)
		assert.Equal(t, 2000, cfg.Paging.MaxSize)
	})

	t.Run("loads dynamodb settings", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "dynamodb")
		t.Setenv("DDB_REGION", "eu-west-1")
		t.Setenv("DDB_ENDPOINT", "http://localhost:8000")
		t.Setenv("DDB_MOVIES_TABLE", "catalog-movies")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.DriverDynamoDB, cfg.DB.Driver)
		assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
		assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
		assert.Equal(t, "catalog-movies", cfg.DynamoDB.MoviesTable)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid page size", func(t *testing.T) {
		t.Setenv("PAGE_DEFAULT_SIZE", "lots")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}
