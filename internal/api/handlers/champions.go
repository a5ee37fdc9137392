package handlers

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type ChampionHandler struct {
	champions *service.ChampionService
	versions  *service.VersionService
	log       *logger.Logger
}

func NewChampionHandler(champions *service.ChampionService, versions *service.VersionService, log *logger.Logger) *ChampionHandler {
	return &ChampionHandler{champions: champions, versions: versions, log: log}
}

type ChampionsResponse struct {
	Champions []*domain.Champion `json:"champions"`
	Version   string             `json:"version"`
	Count     int                `json:"count"`
}

func (h *ChampionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	champions, err := h.champions.GetAll(r.Context())
	if err != nil {
		h.log.Error("list champions failed", "error", err)
		respondDomainError(w, err)
		return
	}

	version, err := h.versions.Current(r.Context(), domain.FamilyChampions)
	if err != nil {
		h.log.Error("read champion version failed", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ChampionsResponse{
		Champions: champions,
		Version:   version,
		Count:     len(champions),
	})
}

func (h *ChampionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	champion, err := h.champions.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, champion)
}
