package handlers

import (
	"errors"
	"net/http"

	"life-tracker/internal/auth"
	"life-tracker/internal/models"
	"life-tracker/internal/storage"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUser registers a new user.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if !decode(w, r, &in) {
		return
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeStoreError(w, "HashPassword", "User", err)
		return
	}
	user, err := h.store.CreateUser(r.Context(), models.User{
		Username:     in.Username,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		DarkMode:     in.DarkMode,
	})
	if err != nil {
		writeStoreError(w, "CreateUser", "User", err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// GetUser returns a single user.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, "GetUser", "User", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update to a user.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	var patch models.UserPatch
	if !decode(w, r, &patch) {
		return
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			writeStoreError(w, "HashPassword", "User", err)
			return
		}
		patch.PasswordHash = &hash
	}
	user, err := h.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, "UpdateUser", "User", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Login checks a username and password and returns the user.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeStoreError(w, "Login", "User", err)
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
