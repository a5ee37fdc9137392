package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository/postgres"
	"github.com/dom/lol-extension-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuneRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewRuneRepository(testDB.DB)
	ctx := context.Background()

	seedPath := func(t *testing.T, slots int, runesPerSlot int) {
		t.Helper()
		require.NoError(t, repo.UpsertPath(ctx, &domain.RunePath{
			ID: 8100, Key: "Domination", Name: "Domination", Version: "14.1.1",
		}))
		for s := 0; s < slots; s++ {
			slot, err := repo.EnsureSlot(ctx, 8100, s)
			require.NoError(t, err)
			for r := 0; r < runesPerSlot; r++ {
				require.NoError(t, repo.UpsertRune(ctx, &domain.Rune{
					ID:     8100 + s*10 + r,
					SlotID: slot.ID,
					Key:    keyFor(s, r),
					Name:   keyFor(s, r),
				}))
			}
		}
	}

	t.Run("ensure slot is idempotent", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.UpsertPath(ctx, &domain.RunePath{
			ID: 8100, Key: "Domination", Name: "Domination", Version: "14.1.1",
		}))

		first, err := repo.EnsureSlot(ctx, 8100, 0)
		require.NoError(t, err)
		second, err := repo.EnsureSlot(ctx, 8100, 0)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("tree comes back ordered", func(t *testing.T) {
		testDB.Truncate(t)
		seedPath(t, 3, 2)

		path, err := repo.GetPath(ctx, 8100)
		require.NoError(t, err)
		require.Len(t, path.Slots, 3)
		for i, slot := range path.Slots {
			assert.Equal(t, i, slot.SlotNumber)
			require.Len(t, slot.Runes, 2)
			assert.Less(t, slot.Runes[0].ID, slot.Runes[1].ID)
		}
	})

	t.Run("prune slots removes stale slots and their runes", func(t *testing.T) {
		testDB.Truncate(t)
		seedPath(t, 4, 2)

		require.NoError(t, repo.PruneSlots(ctx, 8100, []int{0, 1}))

		path, err := repo.GetPath(ctx, 8100)
		require.NoError(t, err)
		assert.Len(t, path.Slots, 2)

		var orphans int64
		require.NoError(t, testDB.DB.Model(&domain.Rune{}).Count(&orphans).Error)
		assert.Equal(t, int64(4), orphans)
	})

	t.Run("prune runes keeps only the payload set", func(t *testing.T) {
		testDB.Truncate(t)
		seedPath(t, 1, 3)

		slot, err := repo.EnsureSlot(ctx, 8100, 0)
		require.NoError(t, err)
		require.NoError(t, repo.PruneRunes(ctx, slot.ID, []int{8100}))

		path, err := repo.GetPath(ctx, 8100)
		require.NoError(t, err)
		require.Len(t, path.Slots, 1)
		require.Len(t, path.Slots[0].Runes, 1)
		assert.Equal(t, 8100, path.Slots[0].Runes[0].ID)
	})

	t.Run("search matches name and short description", func(t *testing.T) {
		testDB.Truncate(t)
		require.NoError(t, repo.UpsertPath(ctx, &domain.RunePath{
			ID: 8100, Key: "Domination", Name: "Domination", Version: "14.1.1",
		}))
		slot, err := repo.EnsureSlot(ctx, 8100, 0)
		require.NoError(t, err)
		require.NoError(t, repo.UpsertRune(ctx, &domain.Rune{
			ID: 8112, SlotID: slot.ID, Key: "Electrocute", Name: "Electrocute",
			ShortDesc: "Hitting a champion with 3 separate attacks deals bonus damage.",
		}))

		byName, err := repo.Search(ctx, "electro")
		require.NoError(t, err)
		assert.Len(t, byName, 1)

		byDesc, err := repo.Search(ctx, "bonus damage")
		require.NoError(t, err)
		assert.Len(t, byDesc, 1)

		none, err := repo.Search(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("missing path maps to domain error", func(t *testing.T) {
		testDB.Truncate(t)
		_, err := repo.GetPath(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func keyFor(slot, idx int) string {
	return fmt.Sprintf("Rune%d%d", slot, idx)
}
