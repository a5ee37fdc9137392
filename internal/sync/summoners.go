package sync

import (
	"context"
	"fmt"
	"sort"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// SummonerSpellReconciler syncs the flat summoner spell list.
type SummonerSpellReconciler struct {
	client *ddragon.Client
	log    *logger.Logger
}

func NewSummonerSpellReconciler(client *ddragon.Client, log *logger.Logger) *SummonerSpellReconciler {
	return &SummonerSpellReconciler{client: client, log: log}
}

func (r *SummonerSpellReconciler) Family() domain.Family {
	return domain.FamilySummonerSpells
}

func (r *SummonerSpellReconciler) Fetch(ctx context.Context, version string) (Batch, error) {
	list, err := r.client.SummonerSpells(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("fetch summoner spells: %w", err)
	}
	return &summonerBatch{rec: r, version: version, records: list.Data}, nil
}

type summonerBatch struct {
	rec     *SummonerSpellReconciler
	version string
	records map[string]ddragon.SummonerSpellData
}

func (b *summonerBatch) Apply(ctx context.Context, tx repository.Store, observe func(State)) (*Report, error) {
	observe(StateReconciling)

	ids := make([]string, 0, len(b.records))
	for id := range b.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	report := &Report{Family: domain.FamilySummonerSpells, Version: b.version}
	for _, id := range ids {
		record := b.records[id]
		err := tx.Transaction(ctx, func(etx repository.Store) error {
			return b.applySpell(ctx, etx.Repos(), id, record)
		})
		if err != nil {
			b.rec.log.Error("summoner spell reconciliation failed, rolled back",
				"spell", id, "error", err)
			report.fail(id, err)
			continue
		}
		report.Synced++
	}
	return report, nil
}

func (b *summonerBatch) applySpell(ctx context.Context, repos *repository.Repositories, id string, record ddragon.SummonerSpellData) error {
	cooldown, err := toJSON(record.Cooldown)
	if err != nil {
		return fmt.Errorf("encode cooldown: %w", err)
	}
	rng, err := toJSON(record.Range)
	if err != nil {
		return fmt.Errorf("encode range: %w", err)
	}
	modes, err := toJSON(record.Modes)
	if err != nil {
		return fmt.Errorf("encode modes: %w", err)
	}

	spell := &domain.SummonerSpell{
		ID:            id,
		Key:           record.Key,
		Name:          record.Name,
		Description:   record.Description,
		Tooltip:       record.Tooltip,
		MaxRank:       record.MaxRank,
		Cooldown:      cooldown,
		Range:         rng,
		SummonerLevel: record.SummonerLevel,
		Modes:         modes,
		Version:       b.version,
		ImageFull:     record.Image.Full,
		ImageSprite:   record.Image.Sprite,
		ImageGroup:    record.Image.Group,
	}
	if err := repos.SummonerSpell.Upsert(ctx, spell); err != nil {
		return fmt.Errorf("upsert summoner spell: %w", err)
	}
	return nil
}
