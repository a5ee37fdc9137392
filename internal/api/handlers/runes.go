package handlers

import (
	"net/http"
	"strconv"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type RuneHandler struct {
	runes    *service.RuneService
	versions *service.VersionService
	log      *logger.Logger
}

func NewRuneHandler(runes *service.RuneService, versions *service.VersionService, log *logger.Logger) *RuneHandler {
	return &RuneHandler{runes: runes, versions: versions, log: log}
}

type RunePathsResponse struct {
	Paths   []*domain.RunePath `json:"paths"`
	Version string             `json:"version"`
}

func (h *RuneHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	paths, err := h.runes.GetAllPaths(r.Context())
	if err != nil {
		h.log.Error("list rune paths failed", "error", err)
		respondDomainError(w, err)
		return
	}

	version, err := h.versions.Current(r.Context(), domain.FamilyRunes)
	if err != nil {
		h.log.Error("read rune version failed", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RunePathsResponse{Paths: paths, Version: version})
}

func (h *RuneHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid path id")
		return
	}

	path, err := h.runes.GetPath(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, path)
}

func (h *RuneHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	runes, err := h.runes.Search(r.Context(), query)
	if err != nil {
		h.log.Error("rune search failed", "query", query, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runes": runes,
		"count": len(runes),
	})
}
