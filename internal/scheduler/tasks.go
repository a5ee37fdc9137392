package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
)

// Standard task names.
const (
	TaskCheckVersions = "check_versions"
)

// SyncTaskName returns the per-family sync task name, e.g. "sync_champions".
func SyncTaskName(family domain.Family) string {
	switch family {
	case domain.FamilySummonerSpells:
		return "sync_summoner_spells"
	default:
		return "sync_" + string(family)
	}
}

// RegisterSyncTasks wires the standard task set against the orchestrator:
// a frequent version check that kicks off syncs for stale families, plus a
// slow per-family full sync as a safety net. Both call the orchestrator
// in-process; an already-running family just skips.
func RegisterSyncTasks(s *Scheduler, orch *syncer.Orchestrator, checkInterval, syncInterval time.Duration, log *logger.Logger) {
	s.Add(TaskCheckVersions, checkInterval, func(ctx context.Context) error {
		return checkVersions(ctx, orch, log)
	})

	for _, family := range domain.AllFamilies {
		family := family
		s.Add(SyncTaskName(family), syncInterval, func(ctx context.Context) error {
			_, err := orch.Sync(ctx, family, false)
			if errors.Is(err, domain.ErrSyncInProgress) {
				log.Info("sync already in progress, skipping scheduled run", "family", family)
				return nil
			}
			return err
		})
	}
}

func checkVersions(ctx context.Context, orch *syncer.Orchestrator, log *logger.Logger) error {
	var firstErr error
	for _, family := range domain.AllFamilies {
		stale, latest, err := orch.NeedsUpdate(ctx, family)
		if err != nil {
			log.Error("version check failed", "family", family, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("check %s: %w", family, err)
			}
			continue
		}
		if !stale {
			continue
		}

		log.Info("upstream version is newer, syncing", "family", family, "latest", latest)
		if _, err := orch.Sync(ctx, family, false); err != nil {
			if errors.Is(err, domain.ErrSyncInProgress) {
				continue
			}
			log.Error("triggered sync failed", "family", family, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("sync %s: %w", family, err)
			}
		}
	}
	return firstErr
}
