package sync

import (
	"fmt"
	"testing"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeChampion(id string) *domain.Champion {
	c := &domain.Champion{
		ID:   id,
		Key:  "266",
		Name: id,
		Lore: "some lore",
		Tags: []domain.Tag{{ID: uuid.New(), Name: "Fighter"}},
		Passive: &domain.ChampionPassive{
			ID: uuid.New(), ChampionID: id, Name: "Passive",
		},
		Skins: []domain.ChampionSkin{
			{ID: uuid.New(), ChampionID: id, SkinNum: 0, Name: "default"},
		},
	}
	for _, slot := range domain.SpellSlots {
		c.Spells = append(c.Spells, domain.Spell{
			ID: id + string(slot), ChampionID: id, Slot: slot, Name: string(slot),
		})
	}
	return c
}

func TestValidateChampions(t *testing.T) {
	t.Run("complete champion is clean", func(t *testing.T) {
		errs, warnings := ValidateChampions([]*domain.Champion{completeChampion("Aatrox")})
		assert.Empty(t, errs)
		assert.Empty(t, warnings)
	})

	t.Run("missing pieces are errors", func(t *testing.T) {
		c := completeChampion("Aatrox")
		c.Passive = nil
		c.Spells = c.Spells[:2] // Q and W only
		c.Skins = nil

		errs, _ := ValidateChampions([]*domain.Champion{c})

		require.Len(t, errs, 4)
		assert.Contains(t, errs, "champion Aatrox: missing passive")
		assert.Contains(t, errs, "champion Aatrox: missing E spell")
		assert.Contains(t, errs, "champion Aatrox: missing R spell")
		assert.Contains(t, errs, "champion Aatrox: no skins")
	})

	t.Run("cosmetic gaps are warnings", func(t *testing.T) {
		c := completeChampion("Aatrox")
		c.Lore = ""
		c.Tags = nil

		errs, warnings := ValidateChampions([]*domain.Champion{c})
		assert.Empty(t, errs)
		assert.Len(t, warnings, 2)
	})
}

func TestValidateItems(t *testing.T) {
	component := &domain.Item{ID: "1001", Name: "Part", Depth: 1, Description: "d", Tags: []domain.Tag{{Name: "Damage"}}}

	t.Run("deep item without components is an error", func(t *testing.T) {
		item := &domain.Item{ID: "3078", Name: "Trinity Force", Depth: 3, Description: "d", Tags: []domain.Tag{{Name: "Damage"}}}
		errs, _ := ValidateItems([]*domain.Item{item})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "depth 3 but no components")
	})

	t.Run("shallow item with components is a warning", func(t *testing.T) {
		item := &domain.Item{ID: "2001", Name: "Odd", Depth: 1, Description: "d", Tags: []domain.Tag{{Name: "Damage"}}, BuiltFrom: []*domain.Item{component}}
		errs, warnings := ValidateItems([]*domain.Item{item})
		assert.Empty(t, errs)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "has components but depth 1")
	})

	t.Run("consistent item is clean", func(t *testing.T) {
		item := &domain.Item{ID: "3078", Name: "Trinity Force", Depth: 3, Description: "d", Tags: []domain.Tag{{Name: "Damage"}}, BuiltFrom: []*domain.Item{component}}
		errs, warnings := ValidateItems([]*domain.Item{item})
		assert.Empty(t, errs)
		assert.Empty(t, warnings)
	})
}

func TestValidateRunePaths(t *testing.T) {
	path := &domain.RunePath{
		ID: 8100, Key: "Domination", Name: "Domination",
		Slots: []domain.RuneSlot{
			{SlotNumber: 0, Runes: []domain.Rune{{ID: 8112, Name: "Electrocute"}}},
			{SlotNumber: 1, Runes: nil},
		},
	}

	errs, _ := ValidateRunePaths([]*domain.RunePath{path})
	require.Len(t, errs, 1)
	assert.Equal(t, "rune path 8100 slot 1: no runes", errs[0])

	empty := &domain.RunePath{ID: 8200}
	errs, _ = ValidateRunePaths([]*domain.RunePath{empty})
	assert.Len(t, errs, 3) // name, key, no slots
}

func TestValidationResult_Capped(t *testing.T) {
	result := &ValidationResult{Valid: false}
	for i := 0; i < 250; i++ {
		result.Errors = append(result.Errors, fmt.Sprintf("error %d", i))
		result.Warnings = append(result.Warnings, fmt.Sprintf("warning %d", i))
	}
	result.TotalErrors = len(result.Errors)
	result.TotalWarnings = len(result.Warnings)

	capped := result.Capped(APIFindingLimit)

	assert.Len(t, capped.Errors, 100)
	assert.Len(t, capped.Warnings, 100)
	assert.Equal(t, 250, capped.TotalErrors)
	assert.Equal(t, 250, capped.TotalWarnings)
	// Original untouched.
	assert.Len(t, result.Errors, 250)
}
