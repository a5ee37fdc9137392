package sync

import (
	"context"
	"sort"
	"strings"

	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// Gold and tier thresholds for the mythic heuristic. Upstream has no
// explicit mythic flag, so classification can misfire on expensive
// non-mythic items; every inferred edge is logged at warn level.
const (
	mythicGoldThreshold = 2500
	mythicTierThreshold = 3

	// Inference attaches at most this many components, and stops early
	// once their summed cost exceeds componentCostRatio of the mythic's
	// total cost.
	maxInferredComponents = 3
	componentCostRatio    = 0.7
)

type GraphOptions struct {
	// MythicInference enables the heuristic component-inference pass for
	// orphan mythics. The direct-edge and asymmetry-repair passes always
	// run.
	MythicInference bool
}

// RepairNote records one edge added by a repair pass.
type RepairNote struct {
	ItemID      string `json:"itemId"`
	ComponentID string `json:"componentId"`
	Reason      string `json:"reason"`
}

// GraphResult is the outcome of a full recipe-graph computation.
type GraphResult struct {
	Edges         []domain.ItemRecipe
	Repaired      []RepairNote // asymmetry-repair additions
	Inferred      []RepairNote // heuristic mythic additions
	OrphanMythics []string     // mythics still without components
}

type edgeKey struct {
	itemID      string
	componentID string
}

// BuildRecipeGraph computes the complete recipe edge set for one item
// batch. records carry the upstream from/into lists; known holds the ids of
// items that were actually persisted, and edges only ever reference known
// ids. The passes run strictly in order over the whole batch:
//
//  1. direct edges from the from/into lists
//  2. asymmetry repair from the into-derived reverse index
//  3. mythic classification (tags, gold, tier)
//  4. component inference for orphan mythics (optional)
//  5. orphan report
func BuildRecipeGraph(records map[string]ddragon.ItemData, known map[string]bool, opts GraphOptions) *GraphResult {
	result := &GraphResult{}

	edges := make(map[edgeKey]struct{})
	addEdge := func(itemID, componentID string) bool {
		if !known[itemID] || !known[componentID] || itemID == componentID {
			return false
		}
		key := edgeKey{itemID: itemID, componentID: componentID}
		if _, ok := edges[key]; ok {
			return false
		}
		edges[key] = struct{}{}
		return true
	}
	componentCount := func(itemID string) int {
		n := 0
		for key := range edges {
			if key.itemID == itemID {
				n++
			}
		}
		return n
	}

	ids := sortedIDs(records)

	// Pass 1: direct edges. An edge component -> product is added whenever
	// either side names the other.
	for _, id := range ids {
		record := records[id]
		for _, componentID := range record.From {
			addEdge(id, componentID)
		}
		for _, productID := range record.Into {
			addEdge(productID, id)
		}
	}

	// Pass 2: asymmetry repair. The reverse index is built purely from
	// "into" declarations, which may disagree with the product's own
	// "from" list.
	reverse := reverseIndex(records)
	for _, productID := range sortedKeys(reverse) {
		components := reverse[productID]
		if !known[productID] {
			continue
		}
		if componentCount(productID) > 0 && !isMythicRecord(records[productID]) {
			continue
		}
		for _, componentID := range components {
			if addEdge(productID, componentID) {
				result.Repaired = append(result.Repaired, RepairNote{
					ItemID:      productID,
					ComponentID: componentID,
					Reason:      "reverse index",
				})
			}
		}
	}

	// Passes 3+4: infer components for mythics that have none and no
	// reverse-index candidates either.
	if opts.MythicInference {
		for _, id := range ids {
			record := records[id]
			if !known[id] || !isMythicRecord(record) {
				continue
			}
			if componentCount(id) > 0 || len(reverse[id]) > 0 {
				continue
			}
			for _, note := range inferComponents(id, record, records, known) {
				if addEdge(note.ItemID, note.ComponentID) {
					result.Inferred = append(result.Inferred, note)
				}
			}
		}
	}

	// Pass 5: report mythics still lacking components.
	for _, id := range ids {
		if known[id] && isMythicRecord(records[id]) && componentCount(id) == 0 {
			result.OrphanMythics = append(result.OrphanMythics, id)
		}
	}

	result.Edges = make([]domain.ItemRecipe, 0, len(edges))
	for key := range edges {
		result.Edges = append(result.Edges, domain.ItemRecipe{
			ItemID:      key.itemID,
			ComponentID: key.componentID,
		})
	}
	sort.Slice(result.Edges, func(i, j int) bool {
		if result.Edges[i].ItemID != result.Edges[j].ItemID {
			return result.Edges[i].ItemID < result.Edges[j].ItemID
		}
		return result.Edges[i].ComponentID < result.Edges[j].ComponentID
	})

	return result
}

// isMythicRecord applies the mythic/legendary heuristic: a matching tag, a
// total cost above the gold threshold, or a recipe depth at or above the
// tier threshold.
func isMythicRecord(record ddragon.ItemData) bool {
	for _, tag := range record.Tags {
		switch strings.ToLower(tag) {
		case "mythic", "legendary":
			return true
		}
	}
	if record.Gold.Total > mythicGoldThreshold {
		return true
	}
	return record.Depth >= mythicTierThreshold
}

// reverseIndex maps product id -> component ids derived from "into" lists,
// deduplicated, in deterministic order.
func reverseIndex(records map[string]ddragon.ItemData) map[string][]string {
	index := make(map[string][]string)
	seen := make(map[edgeKey]struct{})
	for _, id := range sortedIDs(records) {
		for _, productID := range records[id].Into {
			key := edgeKey{itemID: productID, componentID: id}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			index[productID] = append(index[productID], id)
		}
	}
	return index
}

// inferComponents guesses a build path for a mythic the upstream feed left
// without one: candidates are basic/intermediate items (tier <= 2) ranked
// by descending cost; the top ones cheaper than the mythic are attached
// until the cap or the cost ratio is hit.
func inferComponents(mythicID string, mythic ddragon.ItemData, records map[string]ddragon.ItemData, known map[string]bool) []RepairNote {
	type candidate struct {
		id   string
		gold int
	}

	var candidates []candidate
	for _, id := range sortedIDs(records) {
		if id == mythicID || !known[id] {
			continue
		}
		record := records[id]
		tier := record.Depth
		if tier == 0 {
			tier = 1
		}
		if tier > 2 {
			continue
		}
		candidates = append(candidates, candidate{id: id, gold: record.Gold.Total})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].gold > candidates[j].gold
	})

	var notes []RepairNote
	attachedCost := 0
	budget := float64(mythic.Gold.Total) * componentCostRatio
	for _, c := range candidates {
		if len(notes) >= maxInferredComponents {
			break
		}
		if c.gold >= mythic.Gold.Total {
			continue
		}
		notes = append(notes, RepairNote{
			ItemID:      mythicID,
			ComponentID: c.id,
			Reason:      "mythic inference",
		})
		attachedCost += c.gold
		if float64(attachedCost) > budget {
			break
		}
	}
	return notes
}

func sortedIDs(records map[string]ddragon.ItemData) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GraphBuilder persists a computed edge set: clear-and-rebuild on the
// item_recipes table, never incremental mutation.
type GraphBuilder struct {
	items repository.ItemRepository
	log   *logger.Logger
	opts  GraphOptions
}

func NewGraphBuilder(items repository.ItemRepository, log *logger.Logger, opts GraphOptions) *GraphBuilder {
	return &GraphBuilder{items: items, log: log, opts: opts}
}

// Rebuild replaces the full recipe edge set from the given records. Must
// run only after every item in the batch has been upserted; forward
// references to not-yet-created items cannot resolve earlier.
func (b *GraphBuilder) Rebuild(ctx context.Context, records map[string]ddragon.ItemData, known map[string]bool) (*GraphResult, error) {
	result := BuildRecipeGraph(records, known, b.opts)

	if err := b.items.ClearEdges(ctx); err != nil {
		return nil, err
	}
	if err := b.items.InsertEdges(ctx, result.Edges); err != nil {
		return nil, err
	}

	for _, note := range result.Repaired {
		b.log.Info("repaired missing recipe edge",
			"item", note.ItemID, "component", note.ComponentID)
	}
	for _, note := range result.Inferred {
		b.log.Warn("attached inferred component to mythic item",
			"item", note.ItemID, "component", note.ComponentID)
	}
	for _, id := range result.OrphanMythics {
		b.log.Warn("mythic item has no build components after repair", "item", id)
	}

	return result, nil
}
