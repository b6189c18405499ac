package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"life-tracker/internal/backup"
	"life-tracker/internal/models"
)

// ImportRequest is the body of POST /api/import.
type ImportRequest struct {
	UserID int64              `json:"userId"`
	Data   *models.ExportData `json:"data"`
}

// ImportResponse reports how many records an import created.
type ImportResponse struct {
	Message       string               `json:"message"`
	ImportResults backup.ImportResults `json:"importResults"`
}

// Export returns the user's full data set and records a backup.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	data, err := backup.Export(r.Context(), h.store, userID(r), h.now())
	if err != nil {
		writeStoreError(w, "Export", "User", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// ExportCSV downloads one collection as CSV. No backup is recorded.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	collection := r.URL.Query().Get("collection")
	now := h.now()
	data, err := backup.Collect(r.Context(), h.store, userID(r), now)
	if err != nil {
		writeStoreError(w, "ExportCSV", "User", err)
		return
	}

	var buf bytes.Buffer
	if err := backup.WriteCSV(&buf, collection, data); err != nil {
		if errors.Is(err, backup.ErrUnknownCollection) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeStoreError(w, "ExportCSV", "", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", collection, now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("ExportCSV write error: %v", err)
	}
}

// Import adds the records of an export payload to a user's data.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decode(w, r, &req) {
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if req.Data == nil {
		writeError(w, http.StatusBadRequest, "data: required")
		return
	}

	res, err := backup.Import(r.Context(), h.store, req.UserID, req.Data, h.now())
	if err != nil {
		writeStoreError(w, "Import", "User", err)
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Message: "Data imported successfully", ImportResults: *res})
}

// ListBackups returns the user's backup history, newest first.
func (h *Handlers) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.store.ListBackups(r.Context(), userID(r))
	if err != nil {
		writeStoreError(w, "ListBackups", "", err)
		return
	}
	writeJSON(w, http.StatusOK, backups)
}
