package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every environment knob the binaries use. Storage settings
// double as the public-URL base for the gallery, so the API needs them even
// though only the tooling holds the service key.
type Config struct {
	DatabaseURL string
	HTTPAddr    string

	StorageURL        string
	StorageBucket     string
	StorageServiceKey string

	RedisAddr string

	JWTSecret         string
	ModeratorUsername string
	ModeratorPassHash string

	DownloadSessionTTL time.Duration
}

const defaultDownloadSessionTTL = 72 * time.Hour

// Load reads .env (if present) and the environment. DATABASE_URL and
// STORAGE_URL are mandatory for every binary.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		StorageURL:         os.Getenv("STORAGE_URL"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "event-photos"),
		StorageServiceKey:  os.Getenv("STORAGE_SERVICE_KEY"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ModeratorUsername:  getEnv("MODERATOR_USERNAME", "moderator"),
		ModeratorPassHash:  os.Getenv("MODERATOR_PASSWORD_HASH"),
		DownloadSessionTTL: defaultDownloadSessionTTL,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.StorageURL == "" {
		return nil, fmt.Errorf("STORAGE_URL is empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
