package postgres

import (
	"context"
	"errors"

	"github.com/dom/lol-extension-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type summonerSpellRepository struct {
	db *gorm.DB
}

func NewSummonerSpellRepository(db *gorm.DB) *summonerSpellRepository {
	return &summonerSpellRepository{db: db}
}

func (r *summonerSpellRepository) Upsert(ctx context.Context, spell *domain.SummonerSpell) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(spell).Error
}

func (r *summonerSpellRepository) GetAll(ctx context.Context) ([]*domain.SummonerSpell, error) {
	var spells []*domain.SummonerSpell
	err := r.db.WithContext(ctx).Order("name ASC").Find(&spells).Error
	if err != nil {
		return nil, err
	}
	return spells, nil
}

func (r *summonerSpellRepository) GetByID(ctx context.Context, id string) (*domain.SummonerSpell, error) {
	var spell domain.SummonerSpell
	err := r.db.WithContext(ctx).First(&spell, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &spell, nil
}
