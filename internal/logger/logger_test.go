package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/topmovies/internal/config"
)

func TestNewLevelAndFormatter(t *testing.T) {
	log := New(&config.Config{Env: "production", LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New(&config.Config{Env: "development", LogLevel: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := New(&config.Config{LogLevel: "info", LogFile: path, LogMaxSizeMB: 1})

	log.WithField("movie_id", 42).Info("已保存")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "movie_id=42")
}
