package postgres

import (
	"context"
	"errors"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *itemRepository {
	return &itemRepository{db: db}
}

type itemTag struct {
	ItemID string
	TagID  uuid.UUID
}

func (itemTag) TableName() string {
	return "item_tags"
}

func (r *itemRepository) Upsert(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(item).Error
}

func (r *itemRepository) ReplaceTags(ctx context.Context, itemID string, tagIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("item_id = ?", itemID).Delete(&itemTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]itemTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, itemTag{ItemID: itemID, TagID: tagID})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *itemRepository) ClearEdges(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.ItemRecipe{}).Error
}

func (r *itemRepository) InsertEdges(ctx context.Context, edges []domain.ItemRecipe) error {
	if len(edges) == 0 {
		return nil
	}
	// Duplicate edge insert is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(edges, 500).Error
}

func (r *itemRepository) CountEdges(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ItemRecipe{}).Count(&count).Error
	return count, err
}

func (r *itemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]*domain.Item, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Item{})

	if filter.Tag != "" {
		db = db.Joins("JOIN item_tags ON item_tags.item_id = items.id").
			Joins("JOIN tags ON tags.id = item_tags.tag_id").
			Where("tags.name = ?", filter.Tag)
	}
	if filter.PurchasableOnly {
		db = db.Where("items.purchasable = ?", true)
	}

	var total int64
	if err := db.Distinct("items.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.Item
	query := db.Distinct().
		Preload("Tags").
		Order("items.id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) GetAllByVersion(ctx context.Context, version string) ([]*domain.Item, error) {
	var items []*domain.Item
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("BuiltFrom").
		Where("version = ?", version).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("BuiltFrom", func(db *gorm.DB) *gorm.DB {
			return db.Order("items.id ASC")
		}).
		Preload("BuildsInto", func(db *gorm.DB) *gorm.DB {
			return db.Order("items.id ASC")
		}).
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
