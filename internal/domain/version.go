package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameVersion tracks which Data Dragon version is persisted per family.
// At most one row per family has IsCurrent=true; the flip happens inside
// the same transaction as the entity writes it certifies.
type GameVersion struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Family      Family    `json:"family" gorm:"not null;uniqueIndex:uq_version_family,priority:1;index:idx_current_version,priority:1"`
	Version     string    `json:"version" gorm:"not null;uniqueIndex:uq_version_family,priority:2"`
	IsCurrent   bool      `json:"isCurrent" gorm:"default:false;index:idx_current_version,priority:2"`
	ReleaseDate time.Time `json:"releaseDate"`
}

func (GameVersion) TableName() string {
	return "game_versions"
}
