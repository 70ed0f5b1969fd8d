// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// コンテンツの読み込み元
const (
	ContentSourceFile     = "file"
	ContentSourcePostgres = "postgres"
)

// ErrDatabaseURLRequired はDATABASE_URLが必要なコマンドで未設定の場合に返される。
var ErrDatabaseURLRequired = errors.New("DATABASE_URL is required")

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool

	// Content
	ContentSource string
	ContentPath   string

	// Database
	DatabaseURL string

	// News feed
	NewsFeedURL     string
	NewsFeedTimeout time.Duration
	NewsFeedMaxSize int64
	NewsFeedLimit   int

	// Rate Limit (req/min per client)
	RateLimitGeneral int

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// CONTENT_SOURCEがpostgresでDATABASE_URLが未設定の場合などはエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")

	cfg.ContentSource = strings.ToLower(getEnvString("CONTENT_SOURCE", ContentSourceFile))
	cfg.ContentPath = getEnvString("CONTENT_PATH", "")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.NewsFeedURL = getEnvString("NEWS_FEED_URL", "")
	cfg.NewsFeedTimeout = getEnvDuration("NEWS_FEED_TIMEOUT", 10*time.Second)
	cfg.NewsFeedMaxSize = getEnvInt64("NEWS_FEED_MAX_SIZE", 1048576)
	cfg.NewsFeedLimit = getEnvInt("NEWS_FEED_LIMIT", 5)

	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	switch cfg.ContentSource {
	case ContentSourceFile:
	case ContentSourcePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("CONTENT_SOURCE=postgres: %w", ErrDatabaseURLRequired)
		}
	default:
		return nil, fmt.Errorf("unknown CONTENT_SOURCE %q (want %q or %q)", cfg.ContentSource, ContentSourceFile, ContentSourcePostgres)
	}

	if cfg.NewsFeedLimit < 0 {
		return nil, fmt.Errorf("NEWS_FEED_LIMIT must not be negative: %d", cfg.NewsFeedLimit)
	}
	if cfg.NewsFeedMaxSize <= 0 {
		return nil, fmt.Errorf("NEWS_FEED_MAX_SIZE must be positive: %d", cfg.NewsFeedMaxSize)
	}
	if cfg.NewsFeedTimeout <= 0 {
		return nil, fmt.Errorf("NEWS_FEED_TIMEOUT must be positive: %s", cfg.NewsFeedTimeout)
	}

	return cfg, nil
}

// RequireDatabase はDATABASE_URLが設定されていることを確認する。
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	return getEnvParsed(key, defaultVal, strconv.Atoi)
}

func getEnvInt64(key string, defaultVal int64) int64 {
	return getEnvParsed(key, defaultVal, func(v string) (int64, error) {
		return strconv.ParseInt(v, 10, 64)
	})
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	return getEnvParsed(key, defaultVal, time.ParseDuration)
}

// getEnvParsed は環境変数をparseで変換する。未設定または変換できない値はdefaultValになる。
func getEnvParsed[T any](key string, defaultVal T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	parsed, err := parse(v)
	if err != nil {
		return defaultVal
	}
	return parsed
}
