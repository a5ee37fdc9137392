package postgres

import (
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.GameVersion{},
		&domain.Tag{},
		&domain.Champion{},
		&domain.ChampionPassive{},
		&domain.ChampionSkin{},
		&domain.Spell{},
		&domain.Item{},
		&domain.ItemRecipe{},
		&domain.RunePath{},
		&domain.RuneSlot{},
		&domain.Rune{},
		&domain.SummonerSpell{},
	)
}

// NewRepositories wires every repository over the same gorm handle. The
// sync orchestrator calls this with a transaction so a whole family batch
// shares one unit of work.
func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Version:       NewVersionRepository(db),
		Tag:           NewTagRepository(db),
		Champion:      NewChampionRepository(db),
		Item:          NewItemRepository(db),
		Rune:          NewRuneRepository(db),
		SummonerSpell: NewSummonerSpellRepository(db),
	}
}
