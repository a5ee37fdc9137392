package repository

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/google/uuid"
)

// VersionRepository is the version ledger: the single source of truth for
// which upstream version is live per family.
type VersionRepository interface {
	// Current returns the current version for a family, or
	// domain.ErrNoVersion when the family has never been synced.
	Current(ctx context.Context, family domain.Family) (string, error)
	// SetCurrent atomically unsets any prior current row for the family and
	// marks the target row current, creating it if absent. Must run inside
	// the same transaction as the entity writes it certifies.
	SetCurrent(ctx context.Context, family domain.Family, version string) error
	All(ctx context.Context) ([]*domain.GameVersion, error)
}

type TagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Tag, error)
}

type ChampionRepository interface {
	Upsert(ctx context.Context, champion *domain.Champion) error
	ReplaceTags(ctx context.Context, championID string, tagIDs []uuid.UUID) error
	UpsertPassive(ctx context.Context, passive *domain.ChampionPassive) error
	DeletePassive(ctx context.Context, championID string) error
	UpsertSpell(ctx context.Context, spell *domain.Spell) error
	// PruneSpells deletes the champion's spells whose slot is not in keep.
	PruneSpells(ctx context.Context, championID string, keep []domain.SpellSlot) error
	UpsertSkin(ctx context.Context, skin *domain.ChampionSkin) error
	// PruneSkins deletes the champion's skins whose skin_num is not in keep.
	PruneSkins(ctx context.Context, championID string, keep []int) error
	GetAll(ctx context.Context) ([]*domain.Champion, error)
	GetAllByVersion(ctx context.Context, version string) ([]*domain.Champion, error)
	GetByID(ctx context.Context, id string) (*domain.Champion, error)
	// FindByIDInsensitive resolves an id ignoring case, used for item
	// required-champion references.
	FindByIDInsensitive(ctx context.Context, id string) (*domain.Champion, error)
}

type ItemFilter struct {
	Tag             string
	PurchasableOnly bool
	Limit           int
	Offset          int
}

type ItemRepository interface {
	Upsert(ctx context.Context, item *domain.Item) error
	ReplaceTags(ctx context.Context, itemID string, tagIDs []uuid.UUID) error
	// ClearEdges removes every recipe edge; the graph builder rebuilds the
	// full set afterwards.
	ClearEdges(ctx context.Context) error
	InsertEdges(ctx context.Context, edges []domain.ItemRecipe) error
	CountEdges(ctx context.Context) (int64, error)
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, int64, error)
	GetAllByVersion(ctx context.Context, version string) ([]*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
}

type RuneRepository interface {
	UpsertPath(ctx context.Context, path *domain.RunePath) error
	// EnsureSlot returns the slot row for (path, slotNumber), creating it
	// when absent.
	EnsureSlot(ctx context.Context, pathID, slotNumber int) (*domain.RuneSlot, error)
	UpsertRune(ctx context.Context, rune *domain.Rune) error
	// PruneSlots deletes a path's slots (and their runes) whose slot_number
	// is not in keep.
	PruneSlots(ctx context.Context, pathID int, keep []int) error
	// PruneRunes deletes a slot's runes whose id is not in keep.
	PruneRunes(ctx context.Context, slotID uuid.UUID, keep []int) error
	GetAll(ctx context.Context) ([]*domain.RunePath, error)
	GetAllByVersion(ctx context.Context, version string) ([]*domain.RunePath, error)
	GetPath(ctx context.Context, id int) (*domain.RunePath, error)
	Search(ctx context.Context, query string) ([]*domain.Rune, error)
}

type SummonerSpellRepository interface {
	Upsert(ctx context.Context, spell *domain.SummonerSpell) error
	GetAll(ctx context.Context) ([]*domain.SummonerSpell, error)
	GetByID(ctx context.Context, id string) (*domain.SummonerSpell, error)
}

// Store hands out repositories bound to a database handle and opens
// (possibly nested) transactions over it. Nesting maps to savepoints, which
// is what gives the sync pipeline per-entity rollback inside a per-family
// transaction.
type Store interface {
	Repos() *Repositories
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type Repositories struct {
	Version       VersionRepository
	Tag           TagRepository
	Champion      ChampionRepository
	Item          ItemRepository
	Rune          RuneRepository
	SummonerSpell SummonerSpellRepository
}
