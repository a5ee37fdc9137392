package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/lol-extension-backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondDomainError maps the domain sentinels onto HTTP statuses; anything
// unrecognized is a 500 with a generic message.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnknownFamily):
		respondError(w, http.StatusBadRequest, "unknown entity type")
	case errors.Is(err, domain.ErrSyncInProgress):
		respondError(w, http.StatusConflict, "sync already in progress")
	case errors.Is(err, domain.ErrNoVersion):
		respondError(w, http.StatusConflict, "entity type has never been synced")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
