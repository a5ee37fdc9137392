package handlers

import (
	"net/http"
	"strconv"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
	"github.com/dom/lol-extension-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

const defaultItemPageSize = 50

type ItemHandler struct {
	items    *service.ItemService
	versions *service.VersionService
	log      *logger.Logger
}

func NewItemHandler(items *service.ItemService, versions *service.VersionService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{items: items, versions: versions, log: log}
}

type ItemsResponse struct {
	Items   []*domain.Item `json:"items"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Version string         `json:"version"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ItemFilter{
		Tag:             query.Get("tag"),
		PurchasableOnly: query.Get("purchasable") == "true",
		Limit:           defaultItemPageSize,
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = offset
	}

	items, total, err := h.items.List(r.Context(), filter)
	if err != nil {
		h.log.Error("list items failed", "error", err)
		respondDomainError(w, err)
		return
	}

	version, err := h.versions.Current(r.Context(), domain.FamilyItems)
	if err != nil {
		h.log.Error("read item version failed", "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ItemsResponse{
		Items:   items,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		Version: version,
	})
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Recipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	depth := service.DefaultRecipeDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid depth")
			return
		}
		depth = parsed
	}

	tree, err := h.items.RecipeTree(r.Context(), id, depth)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tree)
}
