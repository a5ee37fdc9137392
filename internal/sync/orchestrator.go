package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// Orchestrator drives the per-family sync pipeline: version check, fetch,
// reconcile, graph repair, validate, commit. Families are independent; a
// failure in one never blocks another.
type Orchestrator struct {
	store       repository.Store
	client      *ddragon.Client
	registry    *Registry
	log         *logger.Logger
	reconcilers map[domain.Family]Reconciler
}

func NewOrchestrator(store repository.Store, client *ddragon.Client, registry *Registry, log *logger.Logger, graphOpts GraphOptions) *Orchestrator {
	reconcilers := map[domain.Family]Reconciler{
		domain.FamilyChampions:      NewChampionReconciler(client, log),
		domain.FamilyItems:          NewItemReconciler(client, log, graphOpts),
		domain.FamilyRunes:          NewRuneReconciler(client, log),
		domain.FamilySummonerSpells: NewSummonerSpellReconciler(client, log),
	}
	return &Orchestrator{
		store:       store,
		client:      client,
		registry:    registry,
		log:         log,
		reconcilers: reconcilers,
	}
}

// Sync runs one family through the full pipeline. When the stored current
// version already matches upstream and force is false, it returns a skipped
// result without writing anything.
//
// All network fetching happens before the transaction opens: a transport
// failure leaves the ledger and entity tables untouched. The batch apply,
// graph rebuild and version swap then share one transaction, so readers see
// either the old version or the complete new one.
func (o *Orchestrator) Sync(ctx context.Context, family domain.Family, force bool) (*Result, error) {
	reconciler, ok := o.reconcilers[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFamily, family)
	}
	if !o.registry.TryStart(family) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSyncInProgress, family)
	}

	latest, err := o.client.LatestVersion(ctx)
	if err != nil {
		o.registry.Fail(family, err)
		return nil, fmt.Errorf("resolve latest version: %w", err)
	}

	current, err := o.store.Repos().Version.Current(ctx, family)
	if err != nil && !errors.Is(err, domain.ErrNoVersion) {
		o.registry.Fail(family, err)
		return nil, fmt.Errorf("read current version: %w", err)
	}

	if current == latest && !force {
		o.log.Info("already at latest version, skipping",
			"family", family, "version", current)
		o.registry.Finish(family, current, 0, 0)
		return &Result{
			Status:          StatusSkipped,
			EntityType:      family,
			CurrentVersion:  current,
			LatestVersion:   latest,
			PreviousVersion: current,
		}, nil
	}

	o.registry.Transition(family, StateFetching, latest)
	batch, err := reconciler.Fetch(ctx, latest)
	if err != nil {
		o.registry.Fail(family, err)
		return nil, err
	}

	var report *Report
	err = o.store.Transaction(ctx, func(tx repository.Store) error {
		observe := func(state State) {
			o.registry.Transition(family, state, latest)
		}

		report, err = batch.Apply(ctx, tx, observe)
		if err != nil {
			return err
		}

		observe(StateValidating)
		o.validateInTx(ctx, tx, family, latest)

		observe(StateCommitting)
		if err := tx.Repos().Version.SetCurrent(ctx, family, latest); err != nil {
			return fmt.Errorf("set current version: %w", err)
		}
		return nil
	})
	if err != nil {
		o.registry.Fail(family, err)
		return nil, err
	}

	o.log.Info("sync finished",
		"family", family,
		"version", latest,
		"previous", current,
		"synced", report.Synced,
		"failed", report.Failed)
	o.registry.Finish(family, latest, report.Synced, report.Failed)

	return &Result{
		Status:          StatusSuccess,
		EntityType:      family,
		PreviousVersion: current,
		CurrentVersion:  latest,
		LatestVersion:   latest,
		Synced:          report.Synced,
		Failed:          report.Failed,
	}, nil
}

// validateInTx runs the consistency checks over the just-written batch
// before the version swap. Findings are logged, never fatal: a champion
// missing a skin should not roll back the whole family.
func (o *Orchestrator) validateInTx(ctx context.Context, tx repository.Store, family domain.Family, version string) {
	result, err := validateFamily(ctx, tx.Repos(), family, version)
	if err != nil {
		o.log.Warn("post-sync validation errored", "family", family, "error", err)
		return
	}
	if !result.Valid {
		o.log.Warn("post-sync validation found problems",
			"family", family,
			"errors", result.TotalErrors,
			"warnings", result.TotalWarnings)
		return
	}
	o.log.Debug("post-sync validation clean", "family", family, "checked", result.Checked)
}

// SyncBackground starts a sync on a detached context and returns
// immediately. The caller's request context must not own a background run.
func (o *Orchestrator) SyncBackground(family domain.Family, force bool) (*Result, error) {
	if _, ok := o.reconcilers[family]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFamily, family)
	}
	if o.running(family) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSyncInProgress, family)
	}

	go func() {
		if _, err := o.Sync(context.Background(), family, force); err != nil {
			o.log.Error("background sync failed", "family", family, "error", err)
		}
	}()

	return &Result{Status: StatusStarted, EntityType: family}, nil
}

func (o *Orchestrator) running(family domain.Family) bool {
	for _, status := range o.registry.Snapshot() {
		if status.Family == family {
			return status.State != StateIdle && status.State != StateFailed
		}
	}
	return false
}

// AllResult aggregates a SyncAll run. Families that errored appear in
// Errors and are absent from Results.
type AllResult struct {
	Results []*Result         `json:"results"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SyncAll syncs every family in dependency order (items resolve champion
// references best-effort, so champions go first).
func (o *Orchestrator) SyncAll(ctx context.Context, force bool) *AllResult {
	all := &AllResult{}
	for _, family := range domain.AllFamilies {
		result, err := o.Sync(ctx, family, force)
		if err != nil {
			o.log.Error("family sync failed", "family", family, "error", err)
			if all.Errors == nil {
				all.Errors = make(map[string]string)
			}
			all.Errors[string(family)] = err.Error()
			continue
		}
		all.Results = append(all.Results, result)
	}
	return all
}

// NeedsUpdate reports whether upstream has a newer version than the ledger
// for the family. Used by the scheduled version check.
func (o *Orchestrator) NeedsUpdate(ctx context.Context, family domain.Family) (bool, string, error) {
	latest, err := o.client.LatestVersion(ctx)
	if err != nil {
		return false, "", err
	}
	current, err := o.store.Repos().Version.Current(ctx, family)
	if err != nil {
		if errors.Is(err, domain.ErrNoVersion) {
			return true, latest, nil
		}
		return false, "", err
	}
	return current != latest, latest, nil
}

// Status returns the per-family pipeline snapshot.
func (o *Orchestrator) Status() []FamilyStatus {
	return o.registry.Snapshot()
}
