package handlers

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
	"github.com/go-chi/chi/v5"
)

type ValidationHandler struct {
	reporter *syncer.Reporter
	log      *logger.Logger
}

func NewValidationHandler(reporter *syncer.Reporter, log *logger.Logger) *ValidationHandler {
	return &ValidationHandler{reporter: reporter, log: log}
}

// Validate runs the read-only consistency checks for one family. The full
// finding lists can be huge after a bad sync, so the payload is capped.
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	family, err := domain.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result, err := h.reporter.Validate(r.Context(), family)
	if err != nil {
		h.log.Error("validation failed", "family", family, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result.Capped(syncer.APIFindingLimit))
}
