package postgres

import (
	"context"
	"errors"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type runeRepository struct {
	db *gorm.DB
}

func NewRuneRepository(db *gorm.DB) *runeRepository {
	return &runeRepository{db: db}
}

func (r *runeRepository) UpsertPath(ctx context.Context, path *domain.RunePath) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(path).Error
}

func (r *runeRepository) EnsureSlot(ctx context.Context, pathID, slotNumber int) (*domain.RuneSlot, error) {
	db := r.db.WithContext(ctx)

	var slot domain.RuneSlot
	err := db.Where("rune_path_id = ? AND slot_number = ?", pathID, slotNumber).First(&slot).Error
	if err == nil {
		return &slot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	slot = domain.RuneSlot{
		ID:         uuid.New(),
		RunePathID: pathID,
		SlotNumber: slotNumber,
	}
	if err := db.Omit(clause.Associations).Create(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *runeRepository) UpsertRune(ctx context.Context, rn *domain.Rune) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(rn).Error
}

func (r *runeRepository) PruneSlots(ctx context.Context, pathID int, keep []int) error {
	db := r.db.WithContext(ctx)

	var stale []domain.RuneSlot
	query := db.Where("rune_path_id = ?", pathID)
	if len(keep) > 0 {
		query = query.Where("slot_number NOT IN ?", keep)
	}
	if err := query.Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	slotIDs := make([]uuid.UUID, 0, len(stale))
	for _, slot := range stale {
		slotIDs = append(slotIDs, slot.ID)
	}
	if err := db.Where("slot_id IN ?", slotIDs).Delete(&domain.Rune{}).Error; err != nil {
		return err
	}
	return db.Where("id IN ?", slotIDs).Delete(&domain.RuneSlot{}).Error
}

func (r *runeRepository) PruneRunes(ctx context.Context, slotID uuid.UUID, keep []int) error {
	db := r.db.WithContext(ctx).Where("slot_id = ?", slotID)
	if len(keep) > 0 {
		db = db.Where("id NOT IN ?", keep)
	}
	return db.Delete(&domain.Rune{}).Error
}

func (r *runeRepository) GetAll(ctx context.Context) ([]*domain.RunePath, error) {
	var paths []*domain.RunePath
	err := r.preloaded(ctx).Order("id ASC").Find(&paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *runeRepository) GetAllByVersion(ctx context.Context, version string) ([]*domain.RunePath, error) {
	var paths []*domain.RunePath
	err := r.preloaded(ctx).Where("version = ?", version).Order("id ASC").Find(&paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *runeRepository) GetPath(ctx context.Context, id int) (*domain.RunePath, error) {
	var path domain.RunePath
	err := r.preloaded(ctx).First(&path, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &path, nil
}

func (r *runeRepository) Search(ctx context.Context, query string) ([]*domain.Rune, error) {
	var runes []*domain.Rune
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR short_desc ILIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&runes).Error
	if err != nil {
		return nil, err
	}
	return runes, nil
}

// Slots come back ordered by slot_number, runes by id; the rune tree REST
// responses rely on this ordering.
func (r *runeRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot_number ASC")
		}).
		Preload("Slots.Runes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}
