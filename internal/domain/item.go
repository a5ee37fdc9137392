package domain

import (
	"gorm.io/datatypes"
)

type Item struct {
	ID          string `json:"id" gorm:"primaryKey"` // upstream id, e.g. "3078"
	Name        string `json:"name" gorm:"not null;index"`
	Description string `json:"description" gorm:"type:text"`
	PlainText   string `json:"plainText" gorm:"type:text"`
	Version     string `json:"version" gorm:"not null;index"`

	// Tier/recipe depth. Upstream only sends depth; tier defaults to it.
	Tier  int `json:"tier" gorm:"index"`
	Depth int `json:"depth"`

	RequiredChampion *string `json:"requiredChampion" gorm:"index"`
	RequiredAlly     *string `json:"requiredAlly"`

	// Economy
	BaseGold    int  `json:"baseGold"`
	TotalGold   int  `json:"totalGold"`
	SellGold    int  `json:"sellGold"`
	Purchasable bool `json:"purchasable" gorm:"default:true"`

	Stats datatypes.JSON `json:"stats" gorm:"type:jsonb"`
	Maps  datatypes.JSON `json:"maps" gorm:"type:jsonb"`

	Consumed      bool `json:"consumed" gorm:"default:false"`
	Consumable    bool `json:"consumable" gorm:"default:false"`
	InStore       bool `json:"inStore" gorm:"default:true"`
	HideFromAll   bool `json:"hideFromAll" gorm:"default:false"`
	SpecialRecipe *int `json:"specialRecipe"`

	ImageFull   string `json:"imageFull"`
	ImageSprite string `json:"imageSprite"`
	ImageGroup  string `json:"imageGroup"`

	Tags []Tag `json:"tags" gorm:"many2many:item_tags"`

	// Recipe edges. A row (item_id, component_id) in item_recipes means
	// component_id is consumed to build item_id.
	BuiltFrom  []*Item `json:"builtFrom" gorm:"many2many:item_recipes;foreignKey:ID;joinForeignKey:ItemID;References:ID;joinReferences:ComponentID"`
	BuildsInto []*Item `json:"buildsInto" gorm:"many2many:item_recipes;foreignKey:ID;joinForeignKey:ComponentID;References:ID;joinReferences:ItemID"`
}

// ItemRecipe is one directed component -> product edge. The graph builder
// maintains this table explicitly (clear-and-rebuild), never through GORM
// association mutation.
type ItemRecipe struct {
	ItemID      string `json:"itemId" gorm:"primaryKey"`
	ComponentID string `json:"componentId" gorm:"primaryKey"`
}

func (ItemRecipe) TableName() string {
	return "item_recipes"
}
