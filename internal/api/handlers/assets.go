package handlers

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/assets"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/go-chi/chi/v5"
)

type AssetHandler struct {
	assets *assets.Service
	log    *logger.Logger
}

func NewAssetHandler(assets *assets.Service, log *logger.Logger) *AssetHandler {
	return &AssetHandler{assets: assets, log: log}
}

// Get serves a cached asset file, generating a placeholder on miss.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	name := chi.URLParam(r, "name")

	path, err := h.assets.Resolve(kind, name)
	if err != nil {
		h.log.Warn("asset resolve failed", "kind", kind, "name", name, "error", err)
		respondError(w, http.StatusBadRequest, "invalid asset reference")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
