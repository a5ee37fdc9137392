package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Champion struct {
	ID      string `json:"id" gorm:"primaryKey"` // e.g. "Aatrox"
	Key     string `json:"key" gorm:"not null;uniqueIndex"`
	Name    string `json:"name" gorm:"not null;index"`
	Title   string `json:"title"`
	Blurb   string `json:"blurb" gorm:"type:text"`
	Lore    string `json:"lore" gorm:"type:text"`
	Partype string `json:"partype"` // resource type (mana, energy, ...)
	Version string `json:"version" gorm:"not null;index"`

	// Base stats
	HP                   float64 `json:"hp"`
	HPPerLevel           float64 `json:"hpPerLevel"`
	MP                   float64 `json:"mp"`
	MPPerLevel           float64 `json:"mpPerLevel"`
	MoveSpeed            float64 `json:"moveSpeed"`
	Armor                float64 `json:"armor"`
	ArmorPerLevel        float64 `json:"armorPerLevel"`
	SpellBlock           float64 `json:"spellBlock"`
	SpellBlockPerLevel   float64 `json:"spellBlockPerLevel"`
	AttackRange          float64 `json:"attackRange"`
	AttackDamage         float64 `json:"attackDamage"`
	AttackDamagePerLevel float64 `json:"attackDamagePerLevel"`
	AttackSpeed          float64 `json:"attackSpeed"`
	AttackSpeedPerLevel  float64 `json:"attackSpeedPerLevel"`

	// Difficulty ratings
	AttackRating     int `json:"attackRating"`
	DefenseRating    int `json:"defenseRating"`
	MagicRating      int `json:"magicRating"`
	DifficultyRating int `json:"difficultyRating"`

	// Image descriptor
	ImageFull   string `json:"imageFull"`
	ImageSprite string `json:"imageSprite"`
	ImageGroup  string `json:"imageGroup"`

	AllyTips  datatypes.JSON `json:"allyTips" gorm:"type:jsonb"`
	EnemyTips datatypes.JSON `json:"enemyTips" gorm:"type:jsonb"`

	Tags    []Tag            `json:"tags" gorm:"many2many:champion_tags"`
	Spells  []Spell          `json:"spells" gorm:"constraint:OnDelete:CASCADE"`
	Passive *ChampionPassive `json:"passive" gorm:"constraint:OnDelete:CASCADE"`
	Skins   []ChampionSkin   `json:"skins" gorm:"constraint:OnDelete:CASCADE"`
}

type SpellSlot string

const (
	SlotQ SpellSlot = "Q"
	SlotW SpellSlot = "W"
	SlotE SpellSlot = "E"
	SlotR SpellSlot = "R"
)

// SpellSlots is the fixed ability order upstream sends spells in.
var SpellSlots = []SpellSlot{SlotQ, SlotW, SlotE, SlotR}

// Spell is a champion ability. Keyed by the upstream spell id; the
// (champion, slot) pair is the positional key reconciliation matches on.
type Spell struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ChampionID  string    `json:"championId" gorm:"not null;uniqueIndex:uq_champion_spell,priority:1;index"`
	Slot        SpellSlot `json:"slot" gorm:"not null;uniqueIndex:uq_champion_spell,priority:2"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Tooltip     string    `json:"tooltip" gorm:"type:text"`
	MaxRank     int       `json:"maxRank"`

	Cooldown datatypes.JSON `json:"cooldown" gorm:"type:jsonb"`
	Cost     datatypes.JSON `json:"cost" gorm:"type:jsonb"`
	CostType string         `json:"costType"`
	Range    datatypes.JSON `json:"range" gorm:"type:jsonb"`

	ImageFull   string `json:"imageFull"`
	ImageSprite string `json:"imageSprite"`
	ImageGroup  string `json:"imageGroup"`

	Effect    datatypes.JSON `json:"effect" gorm:"type:jsonb"`
	Variables datatypes.JSON `json:"variables" gorm:"type:jsonb"`
}

type ChampionPassive struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChampionID  string    `json:"championId" gorm:"not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`

	ImageFull   string `json:"imageFull"`
	ImageSprite string `json:"imageSprite"`
	ImageGroup  string `json:"imageGroup"`
}

func (ChampionPassive) TableName() string {
	return "champion_passives"
}

// ChampionSkin rows are matched by (champion, skin_num) on re-sync.
type ChampionSkin struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChampionID string    `json:"championId" gorm:"not null;uniqueIndex:uq_champion_skin,priority:1;index"`
	SkinID     string    `json:"skinId" gorm:"not null"`
	SkinNum    int       `json:"skinNum" gorm:"not null;uniqueIndex:uq_champion_skin,priority:2"`
	Name       string    `json:"name" gorm:"not null"`
	Chromas    bool      `json:"chromas" gorm:"default:false"`

	ImageLoading string `json:"imageLoading"`
	ImageSplash  string `json:"imageSplash"`
}

func (ChampionSkin) TableName() string {
	return "champion_skins"
}
