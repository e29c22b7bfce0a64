package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StorageConfig holds the credentials for the R2-compatible object store that
// hosts the photo binaries.
type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// EmailConfig is optional: with an empty APIKey no confirmation emails are
// sent.
type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	DatabaseURL    string
	Storage        StorageConfig
	Email          EmailConfig
	AllowedOrigins string
	MaxFileSize    int64
	Port           string
}

// default per-file upload cap
const defaultMaxFileSize = 5 * 1024 * 1024

// Load reads configuration from the environment. Missing required values are
// a startup failure, never a per-request one.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Storage: StorageConfig{
			AccountID:       os.Getenv("STORAGE_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
			Bucket:          os.Getenv("STORAGE_BUCKET"),
			PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
		},
		Email: EmailConfig{
			APIKey:      os.Getenv("RESEND_API_KEY"),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", "rsvp@nuestraboda.example"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Nuestra Boda"),
		},
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		MaxFileSize:    defaultMaxFileSize,
		Port:           getEnv("PORT", "8080"),
	}

	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_FILE_SIZE %q", raw)
		}
		cfg.MaxFileSize = size
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.Storage.AccountID == "" {
		missing = append(missing, "STORAGE_ACCOUNT_ID")
	}
	if cfg.Storage.AccessKeyID == "" {
		missing = append(missing, "STORAGE_ACCESS_KEY_ID")
	}
	if cfg.Storage.SecretAccessKey == "" {
		missing = append(missing, "STORAGE_SECRET_ACCESS_KEY")
	}
	if cfg.Storage.Bucket == "" {
		missing = append(missing, "STORAGE_BUCKET")
	}
	if cfg.Storage.PublicURL == "" {
		missing = append(missing, "STORAGE_PUBLIC_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
