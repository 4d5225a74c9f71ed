package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the frontend's runtime configuration, read from the environment.
type Config struct {
	Port        string
	BackendURL  string
	TokenSecret string
	HTTPTimeout time.Duration
	SessionTTL  time.Duration
}

func Load() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		BackendURL:  getenv("BACKEND_URL", "http://localhost:8000"),
		TokenSecret: os.Getenv("TOKEN_SECRET"),
		HTTPTimeout: getenvDuration("HTTP_TIMEOUT_SECONDS", 15*time.Second),
		SessionTTL:  getenvDuration("SESSION_TTL_SECONDS", 30*time.Minute),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
