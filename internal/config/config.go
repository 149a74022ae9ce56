package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	DatabaseURL   string // empty means run on the in-memory catalog
	RedisURL      string
	YouTubeAPIKey string // empty means the external source starts disabled
	LogLevel      string
	Environment   string
	CORSOrigins   string
	WarmInterval  time.Duration
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		WarmInterval:  getDurationEnv("TRENDING_WARM_INTERVAL_SECONDS", 300),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
