package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	Port      string
	SiteName  string

	// 数据库
	DatabaseDriver string // sqlite / postgres
	DatabaseURL    string

	// TMDB
	TMDBAPIKey       string
	TMDBBaseURL      string
	TMDBImageBaseURL string
	TMDBPosterSize   string
	TMDBTimeout      time.Duration

	// 日志
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load 加载配置
func Load() *Config {
	driver := getEnv("DB_DRIVER", "sqlite")

	var dbURL string
	switch driver {
	case "postgres":
		dbUser := getEnv("DB_USER", "postgres")
		dbPass := getEnv("DB_PASSWORD", "postgres")
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbName := getEnv("DB_NAME", "topmovies")
		dbSSL := getEnv("DB_SSLMODE", "disable")

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)
	default:
		dbURL = getEnv("DB_PATH", "my-top-ten-movies.db")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		AppSecret: getEnv("APP_SECRET", defaultSecret),
		Port:      getEnv("PORT", "5000"),
		SiteName:  getEnv("SITE_NAME", "My Top 10 Movies"),

		DatabaseDriver: driver,
		DatabaseURL:    dbURL,

		TMDBAPIKey:       getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:      getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageBaseURL: getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
		TMDBPosterSize:   getEnv("TMDB_POSTER_SIZE", "w500"),
		TMDBTimeout:      getEnvDuration("TMDB_TIMEOUT", 15*time.Second),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
	}
}

// IsProduction 是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Warnings 返回需要在启动时提示的配置问题
func (c *Config) Warnings() []string {
	var warnings []string
	if c.IsProduction() && c.AppSecret == defaultSecret {
		warnings = append(warnings, "生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}
	if c.TMDBAPIKey == "" {
		warnings = append(warnings, "未设置 TMDB_API_KEY，搜索与导入电影将会失败。")
	}
	return warnings
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
