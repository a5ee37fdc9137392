package postgres

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/repository"
	"gorm.io/gorm"
)

// Store implements repository.Store over a gorm handle. Transaction opens a
// real transaction at the top level and a savepoint when already inside one.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repos() *repository.Repositories {
	return NewRepositories(s.db)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
