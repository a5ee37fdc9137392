package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
	"github.com/go-chi/chi/v5"
)

type SyncHandler struct {
	orch *syncer.Orchestrator
	log  *logger.Logger
}

func NewSyncHandler(orch *syncer.Orchestrator, log *logger.Logger) *SyncHandler {
	return &SyncHandler{orch: orch, log: log}
}

type syncRequest struct {
	Force      bool `json:"force"`
	Background bool `json:"background"`
}

// Sync triggers one family. An empty body means foreground, no force.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	family, err := domain.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result *syncer.Result
	if req.Background {
		result, err = h.orch.SyncBackground(family, req.Force)
	} else {
		result, err = h.orch.Sync(r.Context(), family, req.Force)
	}
	if err != nil {
		h.log.Error("sync request failed", "family", family, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *SyncHandler) SyncAll(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.orch.SyncAll(r.Context(), req.Force)
	respondJSON(w, http.StatusOK, result)
}

func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"families": h.orch.Status(),
	})
}
