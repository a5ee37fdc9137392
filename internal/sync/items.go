package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
	"github.com/google/uuid"
)

// ItemReconciler syncs the item catalog and then rebuilds the full recipe
// graph from the batch.
type ItemReconciler struct {
	client    *ddragon.Client
	log       *logger.Logger
	graphOpts GraphOptions
}

func NewItemReconciler(client *ddragon.Client, log *logger.Logger, graphOpts GraphOptions) *ItemReconciler {
	return &ItemReconciler{client: client, log: log, graphOpts: graphOpts}
}

func (r *ItemReconciler) Family() domain.Family {
	return domain.FamilyItems
}

func (r *ItemReconciler) Fetch(ctx context.Context, version string) (Batch, error) {
	list, err := r.client.Items(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("fetch item list: %w", err)
	}
	return &itemBatch{rec: r, version: version, records: list.Data}, nil
}

type itemBatch struct {
	rec     *ItemReconciler
	version string
	records map[string]ddragon.ItemData
}

// Apply upserts every item first, then computes and persists the recipe
// edge set over the whole batch. Edges cannot be written during the upsert
// loop: an item's components may not exist yet.
func (b *itemBatch) Apply(ctx context.Context, tx repository.Store, observe func(State)) (*Report, error) {
	observe(StateReconciling)

	report := &Report{Family: domain.FamilyItems, Version: b.version}
	known := make(map[string]bool, len(b.records))

	for _, id := range sortedIDs(b.records) {
		record := b.records[id]
		err := tx.Transaction(ctx, func(etx repository.Store) error {
			return b.applyItem(ctx, etx.Repos(), id, record)
		})
		if err != nil {
			b.rec.log.Error("item reconciliation failed, rolled back",
				"item", id, "error", err)
			report.fail(id, err)
			continue
		}
		known[id] = true
		report.Synced++
	}

	observe(StateGraphRepair)
	builder := NewGraphBuilder(tx.Repos().Item, b.rec.log, b.rec.graphOpts)
	graph, err := builder.Rebuild(ctx, b.records, known)
	if err != nil {
		return nil, fmt.Errorf("rebuild recipe graph: %w", err)
	}
	report.Graph = graph

	return report, nil
}

func (b *itemBatch) applyItem(ctx context.Context, repos *repository.Repositories, id string, record ddragon.ItemData) error {
	stats, err := toJSON(record.Stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	maps, err := toJSON(record.Maps)
	if err != nil {
		return fmt.Errorf("encode maps: %w", err)
	}

	tier := record.Depth
	if tier == 0 {
		tier = 1
	}
	inStore := true
	if record.InStore != nil {
		inStore = *record.InStore
	}

	item := &domain.Item{
		ID:          id,
		Name:        record.Name,
		Description: record.Description,
		PlainText:   record.Plaintext,
		Version:     b.version,
		Tier:        tier,
		Depth:       record.Depth,

		BaseGold:    record.Gold.Base,
		TotalGold:   record.Gold.Total,
		SellGold:    record.Gold.Sell,
		Purchasable: record.Gold.Purchasable,

		Stats: stats,
		Maps:  maps,

		Consumed:      record.Consumed,
		Consumable:    record.ConsumeOnFull,
		InStore:       inStore,
		HideFromAll:   record.HideFromAll,
		SpecialRecipe: record.SpecialRecipe,

		ImageFull:   record.Image.Full,
		ImageSprite: record.Image.Sprite,
		ImageGroup:  record.Image.Group,
	}

	if record.RequiredChampion != "" {
		item.RequiredChampion = b.resolveRequiredChampion(ctx, repos, id, record.RequiredChampion)
	}
	if record.RequiredAlly != "" {
		ally := record.RequiredAlly
		item.RequiredAlly = &ally
	}

	if err := repos.Item.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}

	tagIDs := make([]uuid.UUID, 0, len(record.Tags))
	for _, name := range record.Tags {
		tag, err := repos.Tag.GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if err := repos.Item.ReplaceTags(ctx, id, tagIDs); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	return nil
}

// resolveRequiredChampion matches the upstream champion name ignoring case.
// Unresolvable references degrade to NULL with a warning; item sync must
// not depend on champion sync having run first.
func (b *itemBatch) resolveRequiredChampion(ctx context.Context, repos *repository.Repositories, itemID, name string) *string {
	champion, err := repos.Champion.FindByIDInsensitive(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			b.rec.log.Warn("required champion lookup failed",
				"item", itemID, "champion", name, "error", err)
		} else {
			b.rec.log.Warn("required champion not found, storing null",
				"item", itemID, "champion", name)
		}
		return nil
	}
	return &champion.ID
}
