package sync

import (
	"context"
	"fmt"
	"sort"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
	"github.com/google/uuid"
)

// ChampionReconciler syncs the champion roster: base record, tags, spells
// by slot, passive and skins, all full-overwrite with pruning.
type ChampionReconciler struct {
	client *ddragon.Client
	log    *logger.Logger
}

func NewChampionReconciler(client *ddragon.Client, log *logger.Logger) *ChampionReconciler {
	return &ChampionReconciler{client: client, log: log}
}

func (r *ChampionReconciler) Family() domain.Family {
	return domain.FamilyChampions
}

// Fetch pulls the roster list and then each champion's detail document. A
// failed detail fetch skips that champion only; the list fetch is fatal.
func (r *ChampionReconciler) Fetch(ctx context.Context, version string) (Batch, error) {
	list, err := r.client.ChampionList(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("fetch champion list: %w", err)
	}

	ids := make([]string, 0, len(list.Data))
	for id := range list.Data {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &championBatch{rec: r, version: version}
	for _, id := range ids {
		detail, err := r.client.ChampionDetail(ctx, id, version)
		if err != nil {
			r.log.Warn("champion detail fetch failed, skipping",
				"champion", id, "version", version, "error", err)
			batch.fetchFailures = append(batch.fetchFailures, EntityFailure{ID: id, Err: err.Error()})
			continue
		}
		batch.details = append(batch.details, *detail)
	}
	return batch, nil
}

type championBatch struct {
	rec           *ChampionReconciler
	version       string
	details       []ddragon.ChampionDetail
	fetchFailures []EntityFailure
}

func (b *championBatch) Apply(ctx context.Context, tx repository.Store, observe func(State)) (*Report, error) {
	observe(StateReconciling)

	report := &Report{Family: domain.FamilyChampions, Version: b.version}
	report.Failed = len(b.fetchFailures)
	report.Failures = append(report.Failures, b.fetchFailures...)

	for i := range b.details {
		detail := &b.details[i]
		err := tx.Transaction(ctx, func(etx repository.Store) error {
			return b.applyChampion(ctx, etx.Repos(), detail)
		})
		if err != nil {
			b.rec.log.Error("champion reconciliation failed, rolled back",
				"champion", detail.ID, "error", err)
			report.fail(detail.ID, err)
			continue
		}
		report.Synced++
	}
	return report, nil
}

func (b *championBatch) applyChampion(ctx context.Context, repos *repository.Repositories, detail *ddragon.ChampionDetail) error {
	allyTips, err := toJSON(detail.AllyTips)
	if err != nil {
		return fmt.Errorf("encode ally tips: %w", err)
	}
	enemyTips, err := toJSON(detail.EnemyTips)
	if err != nil {
		return fmt.Errorf("encode enemy tips: %w", err)
	}

	champion := &domain.Champion{
		ID:      detail.ID,
		Key:     detail.Key,
		Name:    detail.Name,
		Title:   detail.Title,
		Blurb:   detail.Blurb,
		Lore:    detail.Lore,
		Partype: detail.Partype,
		Version: b.version,

		HP:                   detail.Stats.HP,
		HPPerLevel:           detail.Stats.HPPerLevel,
		MP:                   detail.Stats.MP,
		MPPerLevel:           detail.Stats.MPPerLevel,
		MoveSpeed:            detail.Stats.MoveSpeed,
		Armor:                detail.Stats.Armor,
		ArmorPerLevel:        detail.Stats.ArmorPerLevel,
		SpellBlock:           detail.Stats.SpellBlock,
		SpellBlockPerLevel:   detail.Stats.SpellBlockPerLevel,
		AttackRange:          detail.Stats.AttackRange,
		AttackDamage:         detail.Stats.AttackDamage,
		AttackDamagePerLevel: detail.Stats.AttackDamagePerLevel,
		AttackSpeed:          detail.Stats.AttackSpeed,
		AttackSpeedPerLevel:  detail.Stats.AttackSpeedPerLevel,

		AttackRating:     detail.Info.Attack,
		DefenseRating:    detail.Info.Defense,
		MagicRating:      detail.Info.Magic,
		DifficultyRating: detail.Info.Difficulty,

		ImageFull:   detail.Image.Full,
		ImageSprite: detail.Image.Sprite,
		ImageGroup:  detail.Image.Group,

		AllyTips:  allyTips,
		EnemyTips: enemyTips,
	}
	if err := repos.Champion.Upsert(ctx, champion); err != nil {
		return fmt.Errorf("upsert champion: %w", err)
	}

	tagIDs := make([]uuid.UUID, 0, len(detail.Tags))
	for _, name := range detail.Tags {
		tag, err := repos.Tag.GetOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if err := repos.Champion.ReplaceTags(ctx, champion.ID, tagIDs); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}

	if err := b.applySpells(ctx, repos, champion.ID, detail.Spells); err != nil {
		return err
	}
	if err := b.applyPassive(ctx, repos, champion.ID, detail.Passive); err != nil {
		return err
	}
	return b.applySkins(ctx, repos, champion.ID, detail.Skins)
}

// applySpells matches spells to the fixed Q/W/E/R slots by position.
// Upstream occasionally ships more than four entries; extras are dropped.
func (b *championBatch) applySpells(ctx context.Context, repos *repository.Repositories, championID string, spells []ddragon.SpellData) error {
	keep := make([]domain.SpellSlot, 0, len(domain.SpellSlots))
	for i, raw := range spells {
		if i >= len(domain.SpellSlots) {
			b.rec.log.Warn("champion has more spells than slots, dropping extras",
				"champion", championID, "count", len(spells))
			break
		}
		slot := domain.SpellSlots[i]

		cooldown, err := toJSON(raw.Cooldown)
		if err != nil {
			return fmt.Errorf("spell %s cooldown: %w", raw.ID, err)
		}
		cost, err := toJSON(raw.Cost)
		if err != nil {
			return fmt.Errorf("spell %s cost: %w", raw.ID, err)
		}
		rng, err := toJSON(raw.Range)
		if err != nil {
			return fmt.Errorf("spell %s range: %w", raw.ID, err)
		}
		effect, err := toJSON(raw.Effect)
		if err != nil {
			return fmt.Errorf("spell %s effect: %w", raw.ID, err)
		}
		vars, err := toJSON(raw.Vars)
		if err != nil {
			return fmt.Errorf("spell %s vars: %w", raw.ID, err)
		}

		spell := &domain.Spell{
			ID:          raw.ID,
			ChampionID:  championID,
			Slot:        slot,
			Name:        raw.Name,
			Description: raw.Description,
			Tooltip:     raw.Tooltip,
			MaxRank:     raw.MaxRank,
			Cooldown:    cooldown,
			Cost:        cost,
			CostType:    raw.CostType,
			Range:       rng,
			ImageFull:   raw.Image.Full,
			ImageSprite: raw.Image.Sprite,
			ImageGroup:  raw.Image.Group,
			Effect:      effect,
			Variables:   vars,
		}
		if err := repos.Champion.UpsertSpell(ctx, spell); err != nil {
			return fmt.Errorf("upsert spell %s: %w", raw.ID, err)
		}
		keep = append(keep, slot)
	}
	return repos.Champion.PruneSpells(ctx, championID, keep)
}

func (b *championBatch) applyPassive(ctx context.Context, repos *repository.Repositories, championID string, raw *ddragon.PassiveData) error {
	if raw == nil {
		return repos.Champion.DeletePassive(ctx, championID)
	}
	passive := &domain.ChampionPassive{
		ChampionID:  championID,
		Name:        raw.Name,
		Description: raw.Description,
		ImageFull:   raw.Image.Full,
		ImageSprite: raw.Image.Sprite,
		ImageGroup:  raw.Image.Group,
	}
	if err := repos.Champion.UpsertPassive(ctx, passive); err != nil {
		return fmt.Errorf("upsert passive: %w", err)
	}
	return nil
}

func (b *championBatch) applySkins(ctx context.Context, repos *repository.Repositories, championID string, skins []ddragon.SkinData) error {
	keep := make([]int, 0, len(skins))
	for _, raw := range skins {
		skin := &domain.ChampionSkin{
			ChampionID:   championID,
			SkinID:       raw.ID,
			SkinNum:      raw.Num,
			Name:         raw.Name,
			Chromas:      raw.Chromas,
			ImageLoading: fmt.Sprintf("%s_%d.jpg", championID, raw.Num),
			ImageSplash:  b.rec.client.SplashURL(championID, raw.Num),
		}
		if err := repos.Champion.UpsertSkin(ctx, skin); err != nil {
			return fmt.Errorf("upsert skin %d: %w", raw.Num, err)
		}
		keep = append(keep, raw.Num)
	}
	return repos.Champion.PruneSkins(ctx, championID, keep)
}
