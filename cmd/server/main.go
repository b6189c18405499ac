package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"life-tracker/internal/auth"
	"life-tracker/internal/config"
	"life-tracker/internal/handlers"
	"life-tracker/internal/models"
	"life-tracker/internal/storage"
)

func main() {
	cfg := config.Load()

	store, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrapUser(ctx, store, cfg); err != nil {
		log.Fatalf("Failed to create initial user: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(handlers.NewHandlers(store), cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s (storage: %s)", srv.Addr, cfg.Storage)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, cfg config.Config) http.Handler {
	return h.Routes(cfg.CORSOrigins)
}

// bootstrapUser creates the configured admin user when no user exists yet.
// Without both ADMIN_USER and ADMIN_PASSWORD it does nothing.
func bootstrapUser(ctx context.Context, store storage.Store, cfg config.Config) error {
	count, err := store.UserCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 || cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	name := cfg.AdminDisplayName
	if name == "" {
		name = cfg.AdminUser
	}
	user, err := store.CreateUser(ctx, models.User{
		Username:     cfg.AdminUser,
		PasswordHash: hash,
		DisplayName:  name,
	})
	if err != nil {
		return err
	}
	log.Printf("Created initial user %s with ID %d", user.Username, user.ID)
	return nil
}
