package domain

import "github.com/google/uuid"

// Tag is a deduplicated label (e.g. "Fighter", "Mythic") shared across
// champions and items. Name is the natural key; rows are created lazily on
// first use.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"not null;uniqueIndex"`
}
