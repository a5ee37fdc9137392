package handlers

import (
	"net/http"

	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/scheduler"
	"github.com/go-chi/chi/v5"
)

type SchedulerHandler struct {
	sched *scheduler.Scheduler
	log   *logger.Logger
}

func NewSchedulerHandler(sched *scheduler.Scheduler, log *logger.Logger) *SchedulerHandler {
	return &SchedulerHandler{sched: sched, log: log}
}

func (h *SchedulerHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": h.sched.Tasks(),
	})
}

// RunTask triggers a task outside its schedule.
func (h *SchedulerHandler) RunTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.sched.Run(name); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "started",
		"task":   name,
	})
}
