package api

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/api/handlers"
	"github.com/dom/lol-extension-backend/internal/api/middleware"
	"github.com/dom/lol-extension-backend/internal/assets"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/scheduler"
	"github.com/dom/lol-extension-backend/internal/service"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
	ws "github.com/dom/lol-extension-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	services *service.Services,
	orch *syncer.Orchestrator,
	reporter *syncer.Reporter,
	sched *scheduler.Scheduler,
	hub *ws.Hub,
	assetSvc *assets.Service,
	log *logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	championHandler := handlers.NewChampionHandler(services.Champion, services.Version, log)
	itemHandler := handlers.NewItemHandler(services.Item, services.Version, log)
	runeHandler := handlers.NewRuneHandler(services.Rune, services.Version, log)
	summonerHandler := handlers.NewSummonerSpellHandler(services.SummonerSpell, services.Version, log)
	syncHandler := handlers.NewSyncHandler(orch, log)
	validationHandler := handlers.NewValidationHandler(reporter, log)
	schedulerHandler := handlers.NewSchedulerHandler(sched, log)
	wsHandler := handlers.NewWebSocketHandler(hub, log)
	assetHandler := handlers.NewAssetHandler(assetSvc, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/champions", func(r chi.Router) {
			r.Get("/", championHandler.GetAll)
			r.Get("/{id}", championHandler.Get)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Get("/{id}", itemHandler.Get)
			r.Get("/{id}/recipe", itemHandler.Recipe)
		})

		r.Route("/runes", func(r chi.Router) {
			r.Get("/", runeHandler.GetAll)
			r.Get("/search", runeHandler.Search)
			r.Get("/paths/{id}", runeHandler.GetPath)
		})

		r.Route("/summoner-spells", func(r chi.Router) {
			r.Get("/", summonerHandler.GetAll)
			r.Get("/{id}", summonerHandler.Get)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", syncHandler.Status)
			r.Get("/ws", wsHandler.Handle)
			r.Post("/all", syncHandler.SyncAll)
			r.Post("/{family}", syncHandler.Sync)
		})

		r.Post("/validation/{family}", validationHandler.Validate)

		r.Route("/scheduler", func(r chi.Router) {
			r.Get("/status", schedulerHandler.Status)
			r.Post("/tasks/{name}/run", schedulerHandler.RunTask)
		})
	})

	// Asset cache
	r.Get("/assets/{kind}/{name}", assetHandler.Get)

	return r
}
