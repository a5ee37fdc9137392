package domain

import "gorm.io/datatypes"

// SummonerSpell is a flat entity with no sub-relationships.
type SummonerSpell struct {
	ID          string `json:"id" gorm:"primaryKey"` // e.g. "SummonerFlash"
	Key         string `json:"key" gorm:"not null;uniqueIndex"`
	Name        string `json:"name" gorm:"not null;index"`
	Description string `json:"description" gorm:"type:text"`
	Tooltip     string `json:"tooltip" gorm:"type:text"`
	MaxRank     int    `json:"maxRank" gorm:"default:1"`

	Cooldown      datatypes.JSON `json:"cooldown" gorm:"type:jsonb"`
	Range         datatypes.JSON `json:"range" gorm:"type:jsonb"`
	SummonerLevel int            `json:"summonerLevel"`
	Modes         datatypes.JSON `json:"modes" gorm:"type:jsonb"`
	Version       string         `json:"version" gorm:"not null;index"`

	ImageFull   string `json:"imageFull"`
	ImageSprite string `json:"imageSprite"`
	ImageGroup  string `json:"imageGroup"`
}

func (SummonerSpell) TableName() string {
	return "summoner_spells"
}
