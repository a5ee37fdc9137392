package service

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
)

// Recipe tree expansion bounds. Depth 3 reaches basic components from any
// finished item; deeper requests are clamped, not rejected.
const (
	DefaultRecipeDepth = 1
	MaxRecipeDepth     = 3
)

type ItemService struct {
	repos *repository.Repositories
}

func NewItemService(repos *repository.Repositories) *ItemService {
	return &ItemService{repos: repos}
}

func (s *ItemService) List(ctx context.Context, filter repository.ItemFilter) ([]*domain.Item, int64, error) {
	return s.repos.Item.List(ctx, filter)
}

func (s *ItemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.repos.Item.GetByID(ctx, id)
}

// RecipeTree is an item with its components expanded recursively and the
// items it builds into one level up.
type RecipeTree struct {
	Item       *domain.Item   `json:"item"`
	Components []*RecipeTree  `json:"components"`
	BuildsInto []*domain.Item `json:"buildsInto"`
}

// RecipeTree expands the recipe graph around an item. depth counts
// component levels below the root and is clamped to [1, MaxRecipeDepth].
// The recipe graph should be acyclic; a visited set guards traversal in
// case upstream data ever is not. The set tracks the current path only, so
// a component shared between two branches still shows up under both.
func (s *ItemService) RecipeTree(ctx context.Context, id string, depth int) (*RecipeTree, error) {
	if depth < DefaultRecipeDepth {
		depth = DefaultRecipeDepth
	}
	if depth > MaxRecipeDepth {
		depth = MaxRecipeDepth
	}
	return s.buildTree(ctx, id, depth, map[string]bool{})
}

func (s *ItemService) buildTree(ctx context.Context, id string, depth int, visited map[string]bool) (*RecipeTree, error) {
	item, err := s.repos.Item.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	visited[id] = true
	defer delete(visited, id)

	node := &RecipeTree{
		Item:       item,
		Components: []*RecipeTree{},
		BuildsInto: item.BuildsInto,
	}
	if depth == 0 {
		return node, nil
	}

	for _, component := range item.BuiltFrom {
		if visited[component.ID] {
			continue
		}
		child, err := s.buildTree(ctx, component.ID, depth-1, visited)
		if err != nil {
			return nil, err
		}
		node.Components = append(node.Components, child)
	}
	return node, nil
}
