package testutil

import (
	"fmt"

	"github.com/dom/lol-extension-backend/internal/ddragon"
)

// ChampionDetailFixture builds a structurally complete champion document:
// four spells, a passive and the base skin, enough to pass validation.
func ChampionDetailFixture(id, key, name string) ddragon.ChampionDetail {
	detail := ddragon.ChampionDetail{
		ChampionSummary: ddragon.ChampionSummary{
			ID:      id,
			Key:     key,
			Name:    name,
			Title:   "the " + name,
			Blurb:   name + " blurb",
			Partype: "Mana",
			Info:    ddragon.ChampionInfo{Attack: 5, Defense: 5, Magic: 5, Difficulty: 5},
			Stats:   ddragon.ChampionStats{HP: 600, Armor: 30, AttackDamage: 60, MoveSpeed: 340},
			Image:   ddragon.Image{Full: id + ".png", Sprite: "champion0.png", Group: "champion"},
			Tags:    []string{"Fighter"},
		},
		Lore:      name + " lore",
		AllyTips:  []string{"tip"},
		EnemyTips: []string{"counter tip"},
		Passive: &ddragon.PassiveData{
			Name:        name + " Passive",
			Description: "passive description",
			Image:       ddragon.Image{Full: id + "_P.png", Group: "passive"},
		},
		Skins: []ddragon.SkinData{
			{ID: id + "000", Num: 0, Name: "default"},
		},
	}
	for _, slot := range []string{"Q", "W", "E", "R"} {
		detail.Spells = append(detail.Spells, ddragon.SpellData{
			ID:          fmt.Sprintf("%s%s", id, slot),
			Name:        fmt.Sprintf("%s %s", name, slot),
			Description: "spell description",
			MaxRank:     5,
			Cooldown:    []float64{10, 9, 8, 7, 6},
			Cost:        []int{50, 55, 60, 65, 70},
			CostType:    "Mana",
			Range:       []int64{600},
			Image:       ddragon.Image{Full: fmt.Sprintf("%s%s.png", id, slot), Group: "spell"},
			Effect:      [][]float64{nil, {80, 120, 160, 200, 240}},
			Vars:        []interface{}{},
		})
	}
	return detail
}

// ItemFixture builds a basic purchasable item record.
func ItemFixture(name string, totalGold, depth int) ddragon.ItemData {
	return ddragon.ItemData{
		Name:        name,
		Description: name + " description",
		Plaintext:   name + " plaintext",
		Image:       ddragon.Image{Full: name + ".png", Group: "item"},
		Gold:        ddragon.ItemGold{Base: totalGold / 2, Total: totalGold, Sell: totalGold * 7 / 10, Purchasable: true},
		Tags:        []string{"Damage"},
		Maps:        map[string]bool{"11": true},
		Stats:       map[string]float64{"FlatPhysicalDamageMod": 10},
		Depth:       depth,
	}
}

// TrinityForceItems is the canonical multi-component recipe scenario:
// 3078 (Trinity Force) built from 3057 (Sheen), 3044 (Phage) and
// 3051 (Hearthbound Axe).
func TrinityForceItems() map[string]ddragon.ItemData {
	trinity := ItemFixture("Trinity Force", 3333, 3)
	trinity.From = []string{"3057", "3044", "3051"}

	sheen := ItemFixture("Sheen", 900, 2)
	sheen.Into = []string{"3078"}
	phage := ItemFixture("Phage", 1100, 2)
	phage.Into = []string{"3078"}
	axe := ItemFixture("Hearthbound Axe", 1200, 2)
	axe.Into = []string{"3078"}

	return map[string]ddragon.ItemData{
		"3078": trinity,
		"3057": sheen,
		"3044": phage,
		"3051": axe,
	}
}

// RunePathFixture builds a path with the given number of slots, each
// holding three runes.
func RunePathFixture(id int, key, name string, slots int) ddragon.RunePathData {
	path := ddragon.RunePathData{
		ID:   id,
		Key:  key,
		Name: name,
		Icon: fmt.Sprintf("perk-images/Styles/%s.png", key),
	}
	for s := 0; s < slots; s++ {
		slot := ddragon.RuneSlotData{}
		for r := 0; r < 3; r++ {
			runeID := id + s*10 + r + 1
			slot.Runes = append(slot.Runes, ddragon.RuneData{
				ID:        runeID,
				Key:       fmt.Sprintf("%sRune%d", key, runeID),
				Name:      fmt.Sprintf("%s Rune %d", name, runeID),
				ShortDesc: "short description",
				LongDesc:  "long description",
				Icon:      fmt.Sprintf("perk-images/%d.png", runeID),
			})
		}
		path.Slots = append(path.Slots, slot)
	}
	return path
}

// SummonerSpellFixture builds a flat summoner spell record.
func SummonerSpellFixture(id, key, name string) ddragon.SummonerSpellData {
	return ddragon.SummonerSpellData{
		ID:            id,
		Key:           key,
		Name:          name,
		Description:   name + " description",
		MaxRank:       1,
		Cooldown:      []float64{300},
		Range:         []int64{500},
		SummonerLevel: 1,
		Modes:         []string{"CLASSIC", "ARAM"},
		Image:         ddragon.Image{Full: id + ".png", Group: "spell"},
	}
}
