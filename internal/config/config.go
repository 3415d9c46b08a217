package config

import (
	"fmt"
	"os"
	"time"

	"garimoto-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// Media storage (stand-in for the image CDN)
	MediaDir       string
	MediaBaseURL   string
	MaxUploadBytes int64

	// Seed admin
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load reads environment variables into AppConfig. Missing required values
// are reported together so a misconfigured deploy fails fast instead of
// limping along as a silent no-op.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:   os.Getenv("JWT_SECRET"),
			Issuer:   "garimoto",
			Audience: "garimoto-admin",
			TTL:      72 * time.Hour,
		},

		MediaDir:       getEnv("MEDIA_DIR", "./uploads/vehicles"),
		MediaBaseURL:   os.Getenv("MEDIA_BASE_URL"),
		MaxUploadBytes: 10 << 20,

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}

	var missing []string
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.MediaBaseURL == "" {
		missing = append(missing, "MEDIA_BASE_URL")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required configuration: %v", missing)
	}

	return cfg, nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
