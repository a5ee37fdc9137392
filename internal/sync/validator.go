package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// APIFindingLimit caps the error/warning lists in API payloads. The full
// lists stay in memory and in the logs.
const APIFindingLimit = 100

// ValidationResult is the outcome of a read-only consistency check over one
// family's current-version rows.
type ValidationResult struct {
	Family        domain.Family `json:"entity_type"`
	Version       string        `json:"version"`
	Valid         bool          `json:"is_valid"`
	Checked       int           `json:"checked"`
	Errors        []string      `json:"errors"`
	Warnings      []string      `json:"warnings"`
	TotalErrors   int           `json:"total_errors"`
	TotalWarnings int           `json:"total_warnings"`
	DurationMS    int64         `json:"duration_ms"`
}

// Capped returns a copy whose finding lists are truncated to limit entries
// each. Totals are preserved.
func (r *ValidationResult) Capped(limit int) *ValidationResult {
	capped := *r
	if len(capped.Errors) > limit {
		capped.Errors = capped.Errors[:limit]
	}
	if len(capped.Warnings) > limit {
		capped.Warnings = capped.Warnings[:limit]
	}
	return &capped
}

// ValidateChampions checks roster completeness: identity fields, a passive,
// the full Q/W/E/R spell set and at least the base skin.
func ValidateChampions(champions []*domain.Champion) (errs, warnings []string) {
	for _, c := range champions {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("champion %s: missing name", c.ID))
		}
		if c.Key == "" {
			errs = append(errs, fmt.Sprintf("champion %s: missing key", c.ID))
		}
		if c.Passive == nil {
			errs = append(errs, fmt.Sprintf("champion %s: missing passive", c.ID))
		}

		present := make(map[domain.SpellSlot]bool, len(c.Spells))
		for _, spell := range c.Spells {
			present[spell.Slot] = true
		}
		for _, slot := range domain.SpellSlots {
			if !present[slot] {
				errs = append(errs, fmt.Sprintf("champion %s: missing %s spell", c.ID, slot))
			}
		}

		if len(c.Skins) == 0 {
			errs = append(errs, fmt.Sprintf("champion %s: no skins", c.ID))
		}
		if c.Lore == "" {
			warnings = append(warnings, fmt.Sprintf("champion %s: empty lore", c.ID))
		}
		if len(c.Tags) == 0 {
			warnings = append(warnings, fmt.Sprintf("champion %s: no tags", c.ID))
		}
	}
	return errs, warnings
}

// ValidateItems checks catalog consistency, in particular that the recipe
// graph agrees with recipe depth.
func ValidateItems(items []*domain.Item) (errs, warnings []string) {
	for _, item := range items {
		if item.Name == "" {
			errs = append(errs, fmt.Sprintf("item %s: missing name", item.ID))
		}
		if item.Depth > 1 && len(item.BuiltFrom) == 0 {
			errs = append(errs, fmt.Sprintf("item %s: depth %d but no components", item.ID, item.Depth))
		}
		if item.Depth <= 1 && len(item.BuiltFrom) > 0 {
			warnings = append(warnings, fmt.Sprintf("item %s: has components but depth %d", item.ID, item.Depth))
		}
		if item.Description == "" {
			warnings = append(warnings, fmt.Sprintf("item %s: empty description", item.ID))
		}
		if len(item.Tags) == 0 {
			warnings = append(warnings, fmt.Sprintf("item %s: no tags", item.ID))
		}
	}
	return errs, warnings
}

// ValidateRunePaths checks the strict path -> slot -> rune tree shape.
func ValidateRunePaths(paths []*domain.RunePath) (errs, warnings []string) {
	for _, path := range paths {
		if path.Name == "" {
			errs = append(errs, fmt.Sprintf("rune path %d: missing name", path.ID))
		}
		if path.Key == "" {
			errs = append(errs, fmt.Sprintf("rune path %d: missing key", path.ID))
		}
		if len(path.Slots) == 0 {
			errs = append(errs, fmt.Sprintf("rune path %d: no slots", path.ID))
			continue
		}
		for _, slot := range path.Slots {
			if len(slot.Runes) == 0 {
				errs = append(errs, fmt.Sprintf("rune path %d slot %d: no runes", path.ID, slot.SlotNumber))
			}
		}
	}
	return errs, warnings
}

// ValidateSummonerSpells checks the flat spell list.
func ValidateSummonerSpells(spells []*domain.SummonerSpell) (errs, warnings []string) {
	for _, spell := range spells {
		if spell.Name == "" {
			errs = append(errs, fmt.Sprintf("summoner spell %s: missing name", spell.ID))
		}
		if spell.Key == "" {
			errs = append(errs, fmt.Sprintf("summoner spell %s: missing key", spell.ID))
		}
		if spell.Description == "" {
			warnings = append(warnings, fmt.Sprintf("summoner spell %s: empty description", spell.ID))
		}
	}
	return errs, warnings
}

// Reporter runs validation against the current version of a family. It only
// reads; it never mutates and never blocks a sync.
type Reporter struct {
	store repository.Store
	log   *logger.Logger
}

func NewReporter(store repository.Store, log *logger.Logger) *Reporter {
	return &Reporter{store: store, log: log}
}

func (r *Reporter) Validate(ctx context.Context, family domain.Family) (*ValidationResult, error) {
	repos := r.store.Repos()
	version, err := repos.Version.Current(ctx, family)
	if err != nil {
		return nil, err
	}
	result, err := validateFamily(ctx, repos, family, version)
	if err != nil {
		return nil, err
	}
	r.log.Info("validation finished",
		"family", family,
		"version", result.Version,
		"checked", result.Checked,
		"errors", result.TotalErrors,
		"warnings", result.TotalWarnings)
	return result, nil
}

// validateFamily checks the rows carrying the given version. Callers
// resolve the version themselves: the post-sync check runs before the
// ledger flips, so "current" would point at the previous batch there.
func validateFamily(ctx context.Context, repos *repository.Repositories, family domain.Family, version string) (*ValidationResult, error) {
	started := time.Now()

	var (
		checked        int
		errs, warnings []string
	)
	switch family {
	case domain.FamilyChampions:
		champions, err := repos.Champion.GetAllByVersion(ctx, version)
		if err != nil {
			return nil, err
		}
		checked = len(champions)
		errs, warnings = ValidateChampions(champions)
	case domain.FamilyItems:
		items, err := repos.Item.GetAllByVersion(ctx, version)
		if err != nil {
			return nil, err
		}
		checked = len(items)
		errs, warnings = ValidateItems(items)
	case domain.FamilyRunes:
		paths, err := repos.Rune.GetAllByVersion(ctx, version)
		if err != nil {
			return nil, err
		}
		checked = len(paths)
		errs, warnings = ValidateRunePaths(paths)
	case domain.FamilySummonerSpells:
		spells, err := repos.SummonerSpell.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		checked = len(spells)
		errs, warnings = ValidateSummonerSpells(spells)
	default:
		return nil, domain.ErrUnknownFamily
	}

	return &ValidationResult{
		Family:        family,
		Version:       version,
		Valid:         len(errs) == 0,
		Checked:       checked,
		Errors:        errs,
		Warnings:      warnings,
		TotalErrors:   len(errs),
		TotalWarnings: len(warnings),
		DurationMS:    time.Since(started).Milliseconds(),
	}, nil
}
