package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	vars := []string{
		"SHOPLITE_APP_NAME",
		"SHOPLITE_APP_ENV",
		"SHOPLITE_APP_PORT",
		"SHOPLITE_DATABASE_HOST",
		"SHOPLITE_DATABASE_PORT",
		"SHOPLITE_DATABASE_USER",
		"SHOPLITE_DATABASE_PASSWORD",
		"SHOPLITE_DATABASE_DBNAME",
		"SHOPLITE_DATABASE_SSLMODE",
		"SHOPLITE_DATABASE_MAX_OPEN_CONNS",
		"SHOPLITE_DATABASE_MAX_IDLE_CONNS",
	}
	original := map[string]string{}
	for _, k := range vars {
		original[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for _, k := range vars {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shoplite-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shoplite", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLITE_APP_NAME", "test-app")
		os.Setenv("SHOPLITE_APP_PORT", "9000")
		os.Setenv("SHOPLITE_DATABASE_HOST", "testdb.local")
		os.Setenv("SHOPLITE_DATABASE_PORT", "5433")
		os.Setenv("SHOPLITE_DATABASE_USER", "testuser")
		os.Setenv("SHOPLITE_DATABASE_PASSWORD", "testpass")
		os.Setenv("SHOPLITE_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "require", cfg.Database.SSLMode)
	})

	t.Run("production requires a database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLITE_APP_ENV", "production")
		os.Setenv("SHOPLITE_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLITE_APP_ENV", "production")
		os.Setenv("SHOPLITE_DATABASE_PASSWORD", "secret")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHOPLITE_DATABASE_MAX_OPEN_CONNS", "5")
		os.Setenv("SHOPLITE_DATABASE_MAX_IDLE_CONNS", "10")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "shoplite",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword", "password is escaped")
	assert.Contains(t, dsn, "sslmode=disable")
}
