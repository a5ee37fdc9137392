package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type versionRepository struct {
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) *versionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Current(ctx context.Context, family domain.Family) (string, error) {
	var record domain.GameVersion
	err := r.db.WithContext(ctx).
		Where("family = ? AND is_current = ?", family, true).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNoVersion
		}
		return "", err
	}
	return record.Version, nil
}

func (r *versionRepository) SetCurrent(ctx context.Context, family domain.Family, version string) error {
	db := r.db.WithContext(ctx)

	// Unset any prior current row first so the per-family exclusivity
	// invariant holds at every commit point.
	err := db.Model(&domain.GameVersion{}).
		Where("family = ? AND is_current = ?", family, true).
		Update("is_current", false).Error
	if err != nil {
		return err
	}

	var existing domain.GameVersion
	err = db.Where("family = ? AND version = ?", family, version).First(&existing).Error
	switch {
	case err == nil:
		return db.Model(&existing).Update("is_current", true).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := domain.GameVersion{
			ID:          uuid.New(),
			Family:      family,
			Version:     version,
			IsCurrent:   true,
			ReleaseDate: time.Now().UTC(),
		}
		return db.Create(&record).Error
	default:
		return err
	}
}

func (r *versionRepository) All(ctx context.Context) ([]*domain.GameVersion, error) {
	var records []*domain.GameVersion
	err := r.db.WithContext(ctx).
		Order("family ASC, release_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
