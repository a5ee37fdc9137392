package handlers

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type SummonerSpellHandler struct {
	spells   *service.SummonerSpellService
	versions *service.VersionService
	log      *logger.Logger
}

func NewSummonerSpellHandler(spells *service.SummonerSpellService, versions *service.VersionService, log *logger.Logger) *SummonerSpellHandler {
	return &SummonerSpellHandler{spells: spells, versions: versions, log: log}
}

type SummonerSpellsResponse struct {
	Spells  []*domain.SummonerSpell `json:"spells"`
	Version string                  `json:"version"`
}

func (h *SummonerSpellHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	spells, err := h.spells.GetAll(r.Context())
	if err != nil {
		h.log.Error("list summoner spells failed", "error", err)
		respondDomainError(w, err)
		return
	}

	version, err := h.versions.Current(r.Context(), domain.FamilySummonerSpells)
	if err != nil {
		h.log.Error("read summoner spell version failed", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SummonerSpellsResponse{Spells: spells, Version: version})
}

func (h *SummonerSpellHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	spell, err := h.spells.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, spell)
}
