package postgres

import (
	"context"
	"errors"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type championRepository struct {
	db *gorm.DB
}

func NewChampionRepository(db *gorm.DB) *championRepository {
	return &championRepository{db: db}
}

type championTag struct {
	ChampionID string
	TagID      uuid.UUID
}

func (championTag) TableName() string {
	return "champion_tags"
}

func (r *championRepository) Upsert(ctx context.Context, champion *domain.Champion) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(champion).Error
}

// ReplaceTags implements clear-then-insert tag replacement as an explicit
// two-step operation on the junction table.
func (r *championRepository) ReplaceTags(ctx context.Context, championID string, tagIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("champion_id = ?", championID).Delete(&championTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]championTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, championTag{ChampionID: championID, TagID: tagID})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *championRepository) UpsertPassive(ctx context.Context, passive *domain.ChampionPassive) error {
	db := r.db.WithContext(ctx)

	var existing domain.ChampionPassive
	err := db.Where("champion_id = ?", passive.ChampionID).First(&existing).Error
	switch {
	case err == nil:
		passive.ID = existing.ID
		return db.Model(&existing).Select("*").Omit("id", "champion_id").Updates(passive).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if passive.ID == uuid.Nil {
			passive.ID = uuid.New()
		}
		return db.Create(passive).Error
	default:
		return err
	}
}

func (r *championRepository) DeletePassive(ctx context.Context, championID string) error {
	return r.db.WithContext(ctx).
		Where("champion_id = ?", championID).
		Delete(&domain.ChampionPassive{}).Error
}

// UpsertSpell matches on the (champion, slot) positional key. When upstream
// reassigns a slot to a new spell id, the old row is replaced rather than
// updated so the primary key stays the upstream id.
func (r *championRepository) UpsertSpell(ctx context.Context, spell *domain.Spell) error {
	db := r.db.WithContext(ctx)

	var existing domain.Spell
	err := db.Where("champion_id = ? AND slot = ?", spell.ChampionID, spell.Slot).First(&existing).Error
	switch {
	case err == nil:
		if existing.ID == spell.ID {
			return db.Model(&existing).Select("*").Omit("id", "champion_id", "slot").Updates(spell).Error
		}
		if err := db.Delete(&existing).Error; err != nil {
			return err
		}
		return db.Create(spell).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(spell).Error
	default:
		return err
	}
}

func (r *championRepository) PruneSpells(ctx context.Context, championID string, keep []domain.SpellSlot) error {
	db := r.db.WithContext(ctx).Where("champion_id = ?", championID)
	if len(keep) > 0 {
		db = db.Where("slot NOT IN ?", keep)
	}
	return db.Delete(&domain.Spell{}).Error
}

func (r *championRepository) UpsertSkin(ctx context.Context, skin *domain.ChampionSkin) error {
	db := r.db.WithContext(ctx)

	var existing domain.ChampionSkin
	err := db.Where("champion_id = ? AND skin_num = ?", skin.ChampionID, skin.SkinNum).First(&existing).Error
	switch {
	case err == nil:
		skin.ID = existing.ID
		return db.Model(&existing).Select("*").Omit("id", "champion_id", "skin_num").Updates(skin).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if skin.ID == uuid.Nil {
			skin.ID = uuid.New()
		}
		return db.Create(skin).Error
	default:
		return err
	}
}

func (r *championRepository) PruneSkins(ctx context.Context, championID string, keep []int) error {
	db := r.db.WithContext(ctx).Where("champion_id = ?", championID)
	if len(keep) > 0 {
		db = db.Where("skin_num NOT IN ?", keep)
	}
	return db.Delete(&domain.ChampionSkin{}).Error
}

func (r *championRepository) GetAll(ctx context.Context) ([]*domain.Champion, error) {
	var champions []*domain.Champion
	err := r.preloaded(ctx).Order("name ASC").Find(&champions).Error
	if err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *championRepository) GetAllByVersion(ctx context.Context, version string) ([]*domain.Champion, error) {
	var champions []*domain.Champion
	err := r.preloaded(ctx).Where("version = ?", version).Order("name ASC").Find(&champions).Error
	if err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *championRepository) GetByID(ctx context.Context, id string) (*domain.Champion, error) {
	var champion domain.Champion
	err := r.preloaded(ctx).First(&champion, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &champion, nil
}

func (r *championRepository) FindByIDInsensitive(ctx context.Context, id string) (*domain.Champion, error) {
	var champion domain.Champion
	err := r.db.WithContext(ctx).First(&champion, "LOWER(id) = LOWER(?)", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &champion, nil
}

func (r *championRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Passive").
		Preload("Spells", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot ASC")
		}).
		Preload("Skins", func(db *gorm.DB) *gorm.DB {
			return db.Order("skin_num ASC")
		})
}
