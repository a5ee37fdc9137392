package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository/postgres"
	"github.com/dom/lol-extension-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChampionRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewChampionRepository(testDB.DB)
	tags := postgres.NewTagRepository(testDB.DB)
	ctx := context.Background()

	champion := func(id, name, version string) *domain.Champion {
		return &domain.Champion{ID: id, Key: "266", Name: name, Version: version}
	}

	t.Run("upsert is idempotent and overwrites", func(t *testing.T) {
		testDB.Truncate(t)

		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox", "14.1.1")))
		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox Reworked", "14.2.1")))

		var count int64
		require.NoError(t, testDB.DB.Model(&domain.Champion{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		got, err := repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		assert.Equal(t, "Aatrox Reworked", got.Name)
		assert.Equal(t, "14.2.1", got.Version)
	})

	t.Run("replace tags wholesale", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox", "14.1.1")))

		fighter, err := tags.GetOrCreate(ctx, "Fighter")
		require.NoError(t, err)
		tank, err := tags.GetOrCreate(ctx, "Tank")
		require.NoError(t, err)

		require.NoError(t, repo.ReplaceTags(ctx, "Aatrox", []uuid.UUID{fighter.ID, tank.ID}))

		got, err := repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		assert.Len(t, got.Tags, 2)

		// Re-sync drops one tag.
		require.NoError(t, repo.ReplaceTags(ctx, "Aatrox", []uuid.UUID{fighter.ID}))
		got, err = repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		require.Len(t, got.Tags, 1)
		assert.Equal(t, "Fighter", got.Tags[0].Name)
	})

	t.Run("spell slot reassignment replaces the row", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox", "14.1.1")))

		require.NoError(t, repo.UpsertSpell(ctx, &domain.Spell{
			ID: "AatroxQ", ChampionID: "Aatrox", Slot: domain.SlotQ, Name: "The Darkin Blade",
		}))
		// Same slot, same id: update in place.
		require.NoError(t, repo.UpsertSpell(ctx, &domain.Spell{
			ID: "AatroxQ", ChampionID: "Aatrox", Slot: domain.SlotQ, Name: "The Darkin Blade v2",
		}))
		// Same slot, new upstream id: old row goes away.
		require.NoError(t, repo.UpsertSpell(ctx, &domain.Spell{
			ID: "AatroxQNew", ChampionID: "Aatrox", Slot: domain.SlotQ, Name: "Reworked Q",
		}))

		got, err := repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		require.Len(t, got.Spells, 1)
		assert.Equal(t, "AatroxQNew", got.Spells[0].ID)
		assert.Equal(t, "Reworked Q", got.Spells[0].Name)
	})

	t.Run("prune spells and skins not in payload", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox", "14.1.1")))

		for _, slot := range domain.SpellSlots {
			require.NoError(t, repo.UpsertSpell(ctx, &domain.Spell{
				ID: "Aatrox" + string(slot), ChampionID: "Aatrox", Slot: slot, Name: string(slot),
			}))
		}
		for num := 0; num < 3; num++ {
			require.NoError(t, repo.UpsertSkin(ctx, &domain.ChampionSkin{
				ChampionID: "Aatrox", SkinNum: num, Name: "skin",
			}))
		}

		require.NoError(t, repo.PruneSpells(ctx, "Aatrox", []domain.SpellSlot{domain.SlotQ, domain.SlotW}))
		require.NoError(t, repo.PruneSkins(ctx, "Aatrox", []int{0}))

		got, err := repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		assert.Len(t, got.Spells, 2)
		require.Len(t, got.Skins, 1)
		assert.Equal(t, 0, got.Skins[0].SkinNum)
	})

	t.Run("passive upsert keeps a single row", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.Upsert(ctx, champion("Aatrox", "Aatrox", "14.1.1")))

		require.NoError(t, repo.UpsertPassive(ctx, &domain.ChampionPassive{
			ChampionID: "Aatrox", Name: "Deathbringer Stance",
		}))
		require.NoError(t, repo.UpsertPassive(ctx, &domain.ChampionPassive{
			ChampionID: "Aatrox", Name: "Deathbringer Stance v2",
		}))

		got, err := repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		require.NotNil(t, got.Passive)
		assert.Equal(t, "Deathbringer Stance v2", got.Passive.Name)

		require.NoError(t, repo.DeletePassive(ctx, "Aatrox"))
		got, err = repo.GetByID(ctx, "Aatrox")
		require.NoError(t, err)
		assert.Nil(t, got.Passive)
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.Upsert(ctx, champion("FiddleSticks", "Fiddlesticks", "14.1.1")))

		got, err := repo.FindByIDInsensitive(ctx, "fiddlesticks")
		require.NoError(t, err)
		assert.Equal(t, "FiddleSticks", got.ID)

		_, err = repo.FindByIDInsensitive(ctx, "nosuch")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
