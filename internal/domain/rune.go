package domain

import "github.com/google/uuid"

// RunePath is the top of the strict path -> slot -> rune tree
// (e.g. Domination, Precision).
type RunePath struct {
	ID      int    `json:"id" gorm:"primaryKey"` // upstream id, e.g. 8100
	Key     string `json:"key" gorm:"not null;uniqueIndex"`
	Name    string `json:"name" gorm:"not null"`
	Icon    string `json:"icon"`
	Version string `json:"version" gorm:"not null;index"`

	Slots []RuneSlot `json:"slots" gorm:"constraint:OnDelete:CASCADE"`
}

func (RunePath) TableName() string {
	return "rune_paths"
}

// RuneSlot is one row within a path; slot 0 holds the keystones.
type RuneSlot struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RunePathID int       `json:"pathId" gorm:"not null;uniqueIndex:uq_path_slot,priority:1;index"`
	SlotNumber int       `json:"slotNumber" gorm:"not null;uniqueIndex:uq_path_slot,priority:2"`

	Runes []Rune `json:"runes" gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE"`
}

func (RuneSlot) TableName() string {
	return "rune_slots"
}

type Rune struct {
	ID        int       `json:"id" gorm:"primaryKey"` // upstream id, e.g. 8112
	SlotID    uuid.UUID `json:"slotId" gorm:"type:uuid;not null;index"`
	Key       string    `json:"key" gorm:"not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"not null"`
	ShortDesc string    `json:"shortDesc" gorm:"type:text"`
	LongDesc  string    `json:"longDesc" gorm:"type:text"`
	Icon      string    `json:"icon"`
	Version   string    `json:"version" gorm:"not null;index"`
}
