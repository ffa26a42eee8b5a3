package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_SECRET", "DB_DRIVER", "DB_PATH", "TMDB_API_KEY", "TMDB_TIMEOUT", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "my-top-ten-movies.db", cfg.DatabaseURL)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", cfg.TMDBImageBaseURL)
	assert.Equal(t, "w500", cfg.TMDBPosterSize)
	assert.Equal(t, 15*time.Second, cfg.TMDBTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "movies")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_SSLMODE", "require")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "postgres://movies:secret@db:6543/catalog?sslmode=require", cfg.DatabaseURL)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TMDB_TIMEOUT", "soon")
	t.Setenv("LOG_MAX_SIZE_MB", "big")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.TMDBTimeout)
	assert.Equal(t, 50, cfg.LogMaxSizeMB)
}

func TestWarnings(t *testing.T) {
	cfg := &Config{Env: "production", AppSecret: defaultSecret}
	assert.Len(t, cfg.Warnings(), 2)

	cfg = &Config{Env: "production", AppSecret: "real", TMDBAPIKey: "key"}
	assert.Empty(t, cfg.Warnings())
}
