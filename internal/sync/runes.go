package sync

import (
	"context"
	"fmt"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// RuneReconciler syncs the rune tree: paths, their ordered slots, and the
// runes within each slot. Per-entity isolation is per path.
type RuneReconciler struct {
	client *ddragon.Client
	log    *logger.Logger
}

func NewRuneReconciler(client *ddragon.Client, log *logger.Logger) *RuneReconciler {
	return &RuneReconciler{client: client, log: log}
}

func (r *RuneReconciler) Family() domain.Family {
	return domain.FamilyRunes
}

func (r *RuneReconciler) Fetch(ctx context.Context, version string) (Batch, error) {
	paths, err := r.client.RunePaths(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("fetch rune paths: %w", err)
	}
	return &runeBatch{rec: r, version: version, paths: paths}, nil
}

type runeBatch struct {
	rec     *RuneReconciler
	version string
	paths   []ddragon.RunePathData
}

func (b *runeBatch) Apply(ctx context.Context, tx repository.Store, observe func(State)) (*Report, error) {
	observe(StateReconciling)

	report := &Report{Family: domain.FamilyRunes, Version: b.version}
	for i := range b.paths {
		raw := &b.paths[i]
		err := tx.Transaction(ctx, func(etx repository.Store) error {
			return b.applyPath(ctx, etx.Repos(), raw)
		})
		if err != nil {
			b.rec.log.Error("rune path reconciliation failed, rolled back",
				"path", raw.Key, "error", err)
			report.fail(fmt.Sprintf("%d", raw.ID), err)
			continue
		}
		report.Synced++
	}
	return report, nil
}

// applyPath walks the path -> slot -> rune tree in upstream order. Slot
// rows are keyed by position; runes moved between slots get their slot_id
// rewritten by the upsert.
func (b *runeBatch) applyPath(ctx context.Context, repos *repository.Repositories, raw *ddragon.RunePathData) error {
	path := &domain.RunePath{
		ID:      raw.ID,
		Key:     raw.Key,
		Name:    raw.Name,
		Icon:    raw.Icon,
		Version: b.version,
	}
	if err := repos.Rune.UpsertPath(ctx, path); err != nil {
		return fmt.Errorf("upsert path: %w", err)
	}

	keepSlots := make([]int, 0, len(raw.Slots))
	for slotNumber, slotData := range raw.Slots {
		slot, err := repos.Rune.EnsureSlot(ctx, raw.ID, slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		keepSlots = append(keepSlots, slotNumber)

		keepRunes := make([]int, 0, len(slotData.Runes))
		for _, rawRune := range slotData.Runes {
			rn := &domain.Rune{
				ID:        rawRune.ID,
				SlotID:    slot.ID,
				Key:       rawRune.Key,
				Name:      rawRune.Name,
				ShortDesc: rawRune.ShortDesc,
				LongDesc:  rawRune.LongDesc,
				Icon:      rawRune.Icon,
				Version:   b.version,
			}
			if err := repos.Rune.UpsertRune(ctx, rn); err != nil {
				return fmt.Errorf("rune %d: %w", rawRune.ID, err)
			}
			keepRunes = append(keepRunes, rawRune.ID)
		}
		if err := repos.Rune.PruneRunes(ctx, slot.ID, keepRunes); err != nil {
			return fmt.Errorf("prune runes in slot %d: %w", slotNumber, err)
		}
	}
	if err := repos.Rune.PruneSlots(ctx, raw.ID, keepSlots); err != nil {
		return fmt.Errorf("prune slots: %w", err)
	}
	return nil
}
