package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"life-tracker/internal/models"
	"life-tracker/internal/storage"
)

// Context key type to avoid collisions.
type contextKey string

// UserIDContextKey is the context key for the requesting user's id.
const UserIDContextKey contextKey = "userID"

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store storage.Store
	now   func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store storage.Store) *Handlers {
	return &Handlers{store: store, now: time.Now}
}

// Routes builds the API router.
func (h *Handlers) Routes(corsOrigins []string) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	mux.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Health)
		api.Post("/login", h.Login)

		api.Post("/users", h.CreateUser)
		api.Get("/users/{id}", h.GetUser)
		api.Patch("/users/{id}", h.UpdateUser)

		api.Route("/activities", func(r chi.Router) {
			r.Post("/", h.CreateActivity)
			r.With(h.RequireUser).Get("/", h.ListActivities)
			r.With(h.RequireUser).Delete("/all", h.DeleteAllActivities)
			r.Get("/{id}", h.GetActivity)
			r.Patch("/{id}", h.UpdateActivity)
			r.Delete("/{id}", h.DeleteActivity)
		})

		api.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.CreateExpense)
			r.With(h.RequireUser).Get("/", h.ListExpenses)
			r.With(h.RequireUser).Delete("/all", h.DeleteAllExpenses)
			r.Get("/{id}", h.GetExpense)
			r.Patch("/{id}", h.UpdateExpense)
			r.Delete("/{id}", h.DeleteExpense)
		})

		api.Route("/goals", func(r chi.Router) {
			r.Post("/", h.CreateGoal)
			r.With(h.RequireUser).Get("/", h.ListGoals)
			r.With(h.RequireUser).Delete("/all", h.DeleteAllGoals)
			r.Get("/{id}", h.GetGoal)
			r.Patch("/{id}", h.UpdateGoal)
			r.Delete("/{id}", h.DeleteGoal)
		})

		api.Route("/devices", func(r chi.Router) {
			r.Post("/", h.CreateDevice)
			r.With(h.RequireUser).Get("/", h.ListDevices)
			r.Get("/{id}", h.GetDevice)
			r.Patch("/{id}", h.UpdateDevice)
			r.Delete("/{id}", h.DeleteDevice)
			r.Post("/{id}/sync", h.SyncDevice)
		})

		api.Group(func(r chi.Router) {
			r.Use(h.RequireUser)
			r.Get("/export", h.Export)
			r.Get("/export/csv", h.ExportCSV)
			r.Get("/backups", h.ListBackups)
			r.Get("/dashboard", h.Dashboard)
		})
		api.Post("/import", h.Import)
	})

	return mux
}

// RequireUser reads the user id from the userId query parameter or the
// X-User-ID header and stores it in the request context.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("userId")
		if raw == "" {
			raw = r.Header.Get("X-User-ID")
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the user id stored by RequireUser.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDContextKey).(int64)
	return id, ok
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode response error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStoreError maps validation and storage errors to responses. Anything
// unexpected is logged and hidden behind a generic 500.
func writeStoreError(w http.ResponseWriter, op, entity string, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, storage.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Username already exists")
	default:
		log.Printf("%s error: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body into v and validates it when v knows how.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	if val, ok := v.(interface{ Validate() error }); ok {
		if err := val.Validate(); err != nil {
			writeStoreError(w, "Validate", "", err)
			return false
		}
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// userID returns the id stored by RequireUser. Routes without the middleware
// never call it.
func userID(r *http.Request) int64 {
	id, _ := UserIDFromContext(r.Context())
	return id
}
