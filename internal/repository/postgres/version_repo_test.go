package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository/postgres"
	"github.com/dom/lol-extension-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewVersionRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unsynced family has no current version", func(t *testing.T) {
		_, err := repo.Current(ctx, domain.FamilyChampions)
		assert.ErrorIs(t, err, domain.ErrNoVersion)
	})

	t.Run("set and read current", func(t *testing.T) {
		require.NoError(t, repo.SetCurrent(ctx, domain.FamilyChampions, "14.1.1"))

		version, err := repo.Current(ctx, domain.FamilyChampions)
		require.NoError(t, err)
		assert.Equal(t, "14.1.1", version)
	})

	t.Run("flip keeps exactly one current row per family", func(t *testing.T) {
		require.NoError(t, repo.SetCurrent(ctx, domain.FamilyChampions, "14.2.1"))

		version, err := repo.Current(ctx, domain.FamilyChampions)
		require.NoError(t, err)
		assert.Equal(t, "14.2.1", version)

		var count int64
		err = testDB.DB.Model(&domain.GameVersion{}).
			Where("family = ? AND is_current = ?", domain.FamilyChampions, true).
			Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// The old row survives as history.
		var total int64
		err = testDB.DB.Model(&domain.GameVersion{}).
			Where("family = ?", domain.FamilyChampions).
			Count(&total).Error
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("families are independent", func(t *testing.T) {
		require.NoError(t, repo.SetCurrent(ctx, domain.FamilyItems, "14.1.1"))

		champVersion, err := repo.Current(ctx, domain.FamilyChampions)
		require.NoError(t, err)
		assert.Equal(t, "14.2.1", champVersion)

		itemVersion, err := repo.Current(ctx, domain.FamilyItems)
		require.NoError(t, err)
		assert.Equal(t, "14.1.1", itemVersion)
	})

	t.Run("reverting to a known version reuses its row", func(t *testing.T) {
		require.NoError(t, repo.SetCurrent(ctx, domain.FamilyChampions, "14.1.1"))

		var total int64
		err := testDB.DB.Model(&domain.GameVersion{}).
			Where("family = ?", domain.FamilyChampions).
			Count(&total).Error
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
