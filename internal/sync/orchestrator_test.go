package sync_test

import (
	"context"
	"testing"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository/postgres"
	"github.com/dom/lol-extension-backend/internal/service"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
	"github.com/dom/lol-extension-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestrator(t *testing.T, testDB *testutil.TestDB, stub *testutil.CDNStub) (*syncer.Orchestrator, *postgres.Store) {
	t.Helper()
	store := postgres.NewStore(testDB.DB)
	registry := syncer.NewRegistry(nil)
	orch := syncer.NewOrchestrator(store, stub.Client(), registry, logger.NewNop(),
		syncer.GraphOptions{MythicInference: true})
	return orch, store
}

func TestOrchestrator_SyncChampions(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.AddChampion(testutil.ChampionDetailFixture("Aatrox", "266", "Aatrox"))
	stub.AddChampion(testutil.ChampionDetailFixture("Ahri", "103", "Ahri"))

	orch, store := newOrchestrator(t, testDB, stub)

	result, err := orch.Sync(ctx, domain.FamilyChampions, false)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, result.Status)
	assert.Equal(t, "14.1.1", result.CurrentVersion)
	assert.Empty(t, result.PreviousVersion)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 0, result.Failed)

	repos := store.Repos()
	version, err := repos.Version.Current(ctx, domain.FamilyChampions)
	require.NoError(t, err)
	assert.Equal(t, "14.1.1", version)

	aatrox, err := repos.Champion.GetByID(ctx, "Aatrox")
	require.NoError(t, err)
	assert.Len(t, aatrox.Spells, 4)
	assert.NotNil(t, aatrox.Passive)
	assert.Len(t, aatrox.Skins, 1)
	assert.Len(t, aatrox.Tags, 1)
}

func TestOrchestrator_SkipWhenCurrent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.AddChampion(testutil.ChampionDetailFixture("Aatrox", "266", "Aatrox"))

	orch, store := newOrchestrator(t, testDB, stub)

	_, err := orch.Sync(ctx, domain.FamilyChampions, false)
	require.NoError(t, err)

	// Dirty a row so a hidden re-sync would be visible.
	require.NoError(t, testDB.DB.Exec(`UPDATE champions SET name = 'Tampered' WHERE id = 'Aatrox'`).Error)

	result, err := orch.Sync(ctx, domain.FamilyChampions, false)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSkipped, result.Status)
	assert.Equal(t, 0, result.Synced)

	got, err := store.Repos().Champion.GetByID(ctx, "Aatrox")
	require.NoError(t, err)
	assert.Equal(t, "Tampered", got.Name, "skipped sync must not write")

	// force=true re-syncs at the same version and overwrites.
	result, err = orch.Sync(ctx, domain.FamilyChampions, true)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, result.Status)

	got, err = store.Repos().Champion.GetByID(ctx, "Aatrox")
	require.NoError(t, err)
	assert.Equal(t, "Aatrox", got.Name)
}

func TestOrchestrator_PartialFailureIsolation(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.AddChampion(testutil.ChampionDetailFixture("Aatrox", "266", "Aatrox"))
	stub.AddChampion(testutil.ChampionDetailFixture("Ahri", "103", "Ahri"))
	stub.AddChampion(testutil.ChampionDetailFixture("Akali", "84", "Akali"))
	stub.FailDetails["Ahri"] = true

	orch, store := newOrchestrator(t, testDB, stub)

	result, err := orch.Sync(ctx, domain.FamilyChampions, false)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, result.Status)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Failed)

	repos := store.Repos()
	// The version still commits: N-1 good entities beat zero.
	version, err := repos.Version.Current(ctx, domain.FamilyChampions)
	require.NoError(t, err)
	assert.Equal(t, "14.1.1", version)

	_, err = repos.Champion.GetByID(ctx, "Aatrox")
	require.NoError(t, err)
	_, err = repos.Champion.GetByID(ctx, "Ahri")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrchestrator_SyncItems_RecipeGraph(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.Items.Data = testutil.TrinityForceItems()

	orch, store := newOrchestrator(t, testDB, stub)

	result, err := orch.Sync(ctx, domain.FamilyItems, false)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, result.Status)
	assert.Equal(t, 4, result.Synced)

	repos := store.Repos()
	count, err := repos.Item.CountEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	trinity, err := repos.Item.GetByID(ctx, "3078")
	require.NoError(t, err)
	require.Len(t, trinity.BuiltFrom, 3)

	sheen, err := repos.Item.GetByID(ctx, "3057")
	require.NoError(t, err)
	require.Len(t, sheen.BuildsInto, 1)
	assert.Equal(t, "3078", sheen.BuildsInto[0].ID)

	// Re-sync at a new version rebuilds without duplicating edges.
	stub.SetVersion("14.2.1")
	result, err = orch.Sync(ctx, domain.FamilyItems, false)
	require.NoError(t, err)
	assert.Equal(t, syncer.StatusSuccess, result.Status)
	assert.Equal(t, "14.1.1", result.PreviousVersion)

	count, err = repos.Item.CountEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestOrchestrator_RecipeTreeService(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	items := testutil.TrinityForceItems()
	// Give Sheen a sub-component so depth 2 has something to find.
	dagger := testutil.ItemFixture("Dagger", 300, 1)
	dagger.Into = []string{"3057"}
	items["1042"] = dagger
	sheen := items["3057"]
	sheen.From = []string{"1042"}
	items["3057"] = sheen
	stub.Items.Data = items

	orch, store := newOrchestrator(t, testDB, stub)
	_, err := orch.Sync(ctx, domain.FamilyItems, false)
	require.NoError(t, err)

	itemService := service.NewItemService(store.Repos())

	shallow, err := itemService.RecipeTree(ctx, "3078", 1)
	require.NoError(t, err)
	require.Len(t, shallow.Components, 3)
	for _, component := range shallow.Components {
		assert.Empty(t, component.Components, "depth 1 must not expand grandchildren")
	}

	deep, err := itemService.RecipeTree(ctx, "3078", 2)
	require.NoError(t, err)
	var sheenNode *service.RecipeTree
	for _, component := range deep.Components {
		if component.Item.ID == "3057" {
			sheenNode = component
		}
	}
	require.NotNil(t, sheenNode)
	require.Len(t, sheenNode.Components, 1)
	assert.Equal(t, "1042", sheenNode.Components[0].Item.ID)
}

func TestOrchestrator_RecipeTreeSharedComponent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	// Diamond recipe: both intermediates build from the same basic item.
	product := testutil.ItemFixture("Divine Sunderer", 3300, 3)
	product.From = []string{"3057", "3044"}
	sheen := testutil.ItemFixture("Sheen", 900, 2)
	sheen.From = []string{"1028"}
	sheen.Into = []string{"6632"}
	phage := testutil.ItemFixture("Phage", 1100, 2)
	phage.From = []string{"1028"}
	phage.Into = []string{"6632"}
	ruby := testutil.ItemFixture("Ruby Crystal", 400, 1)
	ruby.Into = []string{"3057", "3044"}
	stub.Items.Data = map[string]ddragon.ItemData{
		"6632": product,
		"3057": sheen,
		"3044": phage,
		"1028": ruby,
	}

	orch, store := newOrchestrator(t, testDB, stub)
	_, err := orch.Sync(ctx, domain.FamilyItems, false)
	require.NoError(t, err)

	itemService := service.NewItemService(store.Repos())

	tree, err := itemService.RecipeTree(ctx, "6632", 2)
	require.NoError(t, err)
	require.Len(t, tree.Components, 2)

	// The shared basic component must appear under every branch, not just
	// the first one expanded.
	for _, branch := range tree.Components {
		require.Len(t, branch.Components, 1, "branch %s", branch.Item.ID)
		assert.Equal(t, "1028", branch.Components[0].Item.ID)
	}
}

func TestOrchestrator_SyncRunes(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.RunePaths = []ddragon.RunePathData{
		testutil.RunePathFixture(8100, "Domination", "Domination", 4),
		testutil.RunePathFixture(8300, "Inspiration", "Inspiration", 4),
	}

	orch, store := newOrchestrator(t, testDB, stub)

	result, err := orch.Sync(ctx, domain.FamilyRunes, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)

	paths, err := store.Repos().Rune.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, path := range paths {
		require.Len(t, path.Slots, 4)
		for i, slot := range path.Slots {
			assert.Equal(t, i, slot.SlotNumber)
			assert.Len(t, slot.Runes, 3)
		}
	}

	// Re-sync with a slot removed prunes it.
	stub.RunePaths[0] = testutil.RunePathFixture(8100, "Domination", "Domination", 3)
	stub.SetVersion("14.2.1")
	_, err = orch.Sync(ctx, domain.FamilyRunes, false)
	require.NoError(t, err)

	domination, err := store.Repos().Rune.GetPath(ctx, 8100)
	require.NoError(t, err)
	assert.Len(t, domination.Slots, 3)
}

func TestOrchestrator_SyncSummonerSpells(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.SummonerSpells.Data["SummonerFlash"] = testutil.SummonerSpellFixture("SummonerFlash", "4", "Flash")
	stub.SummonerSpells.Data["SummonerDot"] = testutil.SummonerSpellFixture("SummonerDot", "14", "Ignite")

	orch, store := newOrchestrator(t, testDB, stub)

	result, err := orch.Sync(ctx, domain.FamilySummonerSpells, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)

	flash, err := store.Repos().SummonerSpell.GetByID(ctx, "SummonerFlash")
	require.NoError(t, err)
	assert.Equal(t, "Flash", flash.Name)
}

func TestOrchestrator_SyncAll(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.AddChampion(testutil.ChampionDetailFixture("Aatrox", "266", "Aatrox"))
	stub.Items.Data = testutil.TrinityForceItems()
	stub.RunePaths = []ddragon.RunePathData{
		testutil.RunePathFixture(8100, "Domination", "Domination", 4),
	}
	stub.SummonerSpells.Data["SummonerFlash"] = testutil.SummonerSpellFixture("SummonerFlash", "4", "Flash")

	orch, _ := newOrchestrator(t, testDB, stub)

	all := orch.SyncAll(ctx, false)
	require.Empty(t, all.Errors)
	require.Len(t, all.Results, len(domain.AllFamilies))
	for i, family := range domain.AllFamilies {
		assert.Equal(t, family, all.Results[i].EntityType)
		assert.Equal(t, syncer.StatusSuccess, all.Results[i].Status)
	}
}

func TestOrchestrator_FetchFailureLeavesLedgerUntouched(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	stub.FailAll = true

	orch, store := newOrchestrator(t, testDB, stub)

	_, err := orch.Sync(ctx, domain.FamilyItems, false)
	require.Error(t, err)

	_, err = store.Repos().Version.Current(ctx, domain.FamilyItems)
	assert.ErrorIs(t, err, domain.ErrNoVersion)
}

func TestOrchestrator_ValidationReporter(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	stub := testutil.NewCDNStub(t, "14.1.1")
	detail := testutil.ChampionDetailFixture("Aatrox", "266", "Aatrox")
	detail.Skins = nil // structural gap the reporter must flag
	stub.AddChampion(detail)

	orch, store := newOrchestrator(t, testDB, stub)
	_, err := orch.Sync(ctx, domain.FamilyChampions, false)
	require.NoError(t, err)

	reporter := syncer.NewReporter(store, logger.NewNop())
	report, err := reporter.Validate(ctx, domain.FamilyChampions)
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Equal(t, 1, report.Checked)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "no skins")

	// Unsynced family surfaces the ledger sentinel.
	_, err = reporter.Validate(ctx, domain.FamilyItems)
	assert.ErrorIs(t, err, domain.ErrNoVersion)
}
