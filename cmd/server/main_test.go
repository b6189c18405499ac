package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"life-tracker/internal/config"
	"life-tracker/internal/handlers"
	"life-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	// Setup dependencies
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	cfg := config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	require.NoError(t, bootstrapUser(context.Background(), db, cfg))

	mux := setupRouter(handlers.NewHandlers(db), cfg)

	// Verify routes
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "Health check",
			method:     "GET",
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "List activities requires a user id",
			method:     "GET",
			path:       "/api/activities",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "List goals for a user",
			method:     "GET",
			path:       "/api/goals?userId=1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Unknown activity",
			method:     "GET",
			path:       "/api/activities/42",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Unknown route",
			method:     "GET",
			path:       "/expenses",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestBootstrapUser(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	cfg := config.Config{AdminUser: "admin", AdminPassword: "secret", AdminDisplayName: "Admin"}
	require.NoError(t, bootstrapUser(ctx, db, cfg))

	user, err := db.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.DisplayName)

	// A second start does not add another user.
	cfg.AdminUser = "other"
	require.NoError(t, bootstrapUser(ctx, db, cfg))
	count, err := db.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBootstrapUserNeedsCredentials(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	for _, cfg := range []config.Config{
		{},
		{AdminUser: "admin"},
		{AdminPassword: "secret"},
	} {
		require.NoError(t, bootstrapUser(ctx, db, cfg))
	}
	count, err := db.UserCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no user without both ADMIN_USER and ADMIN_PASSWORD")

	require.NoError(t, bootstrapUser(ctx, db, config.Config{AdminUser: "admin", AdminPassword: "secret"}))
	user, err := db.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.DisplayName)
}

func TestBootstrapUserSkipsSeededStore(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	cfg := config.Config{AdminUser: "admin", AdminPassword: "secret", AdminDisplayName: "Admin"}
	require.NoError(t, bootstrapUser(ctx, store, cfg))

	_, err := store.GetUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
