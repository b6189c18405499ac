// Package config loads server settings from the environment.
package config

import (
	"os"
	"strings"
)

// Storage backends.
const (
	StorageSQL    = "sql"
	StorageMemory = "memory"
)

// Config holds the server settings.
type Config struct {
	Port        string
	Storage     string
	DatabaseURL string
	DBPath      string

	// Bootstrap user, created when the user table is empty. Both AdminUser
	// and AdminPassword must be set; there is no default login.
	AdminUser        string
	AdminPassword    string
	AdminDisplayName string

	CORSOrigins []string
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		Port:             getenv("PORT", "8080"),
		Storage:          strings.ToLower(getenv("STORAGE", StorageSQL)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBPath:           getenv("DB_PATH", "tracker.db"),
		AdminUser:        os.Getenv("ADMIN_USER"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminDisplayName: os.Getenv("ADMIN_DISPLAY_NAME"),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
