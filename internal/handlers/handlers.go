// Package handlers implements the HTTP surface of the API: account
// management, token issuance, and the owner-scoped recipe resources.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	applog "recipebox/internal/log"
)

var database *gorm.DB

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(db *gorm.DB) {
	database = db
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
