package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORAGE", "DATABASE_URL", "DB_PATH", "ADMIN_USER", "ADMIN_PASSWORD", "ADMIN_DISPLAY_NAME", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StorageSQL, cfg.Storage)
	assert.Equal(t, "tracker.db", cfg.DBPath)
	assert.Empty(t, cfg.AdminUser, "no default login")
	assert.Empty(t, cfg.AdminPassword)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("DATABASE_URL", "postgres://localhost/tracker")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, ,https://example.com")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "postgres://localhost/tracker", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.CORSOrigins)
}
